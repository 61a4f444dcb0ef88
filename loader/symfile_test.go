package loader

import (
	"bytes"
	"testing"

	"github.com/lunixbochs/smkm/models"
)

var symfileYaml = []byte(`
image: ntoskrnl.exe
pdb: 3844dbb920174967be7aa4a2c20430fa2
symbols:
  - name: "?StStart@?$ST_STORE@USM_TRAITS@@@@SGJPAU1@PAU_SM_STORE_STARTUP@@@Z"
    rva: 0x1000
    size: 0x300
  - name: "?StDmStart@?$ST_STORE@USM_TRAITS@@@@SGJPAU1@PAU_ST_DATA_MGR@1@@Z"
    rva: 0x2000
`)

func TestParseSymbolFile(t *testing.T) {
	sf, err := ParseSymbolFile(symfileYaml)
	if err != nil {
		t.Fatal(err)
	}
	if len(sf.Symbols) != 2 || sf.Image != "ntoskrnl.exe" {
		t.Fatalf("bad parse: %+v", sf)
	}
	if !sf.Matches("3844DBB920174967BE7AA4A2C20430FA2") {
		t.Fatal("pdb id should match case-insensitively")
	}
	syms := sf.Rebase(0x400000)
	if syms[0].Start != 0x401000 || syms[0].End != 0x401300 {
		t.Fatalf("bad rebase: %#x-%#x", syms[0].Start, syms[0].End)
	}
	if syms[1].Start != 0x402000 || syms[1].End != 0 {
		t.Fatalf("unsized symbol should keep End 0: %#x-%#x", syms[1].Start, syms[1].End)
	}
}

func TestParseSymbolFileNoName(t *testing.T) {
	if _, err := ParseSymbolFile([]byte("symbols:\n  - rva: 0x10\n")); err == nil {
		t.Fatal("nameless symbol accepted")
	}
}

func TestApplySymbolFile(t *testing.T) {
	sf, err := ParseSymbolFile(symfileYaml)
	if err != nil {
		t.Fatal(err)
	}
	l := &LoaderHeader{base: 0x10000000, syms: models.Symbols{{Name: "DriverEntry", Start: 0x10000100}}}
	l.debug = &models.DebugInfo{PdbGuid: "3844DBB920174967BE7AA4A2C20430FA", PdbAge: 2}
	if err := l.ApplySymbolFile(sf); err != nil {
		t.Fatal(err)
	}
	syms, _ := l.Symbols()
	if len(syms) != 3 {
		t.Fatalf("expected 3 symbols, got %d", len(syms))
	}
	if sym, ok := syms.Find("?StStart"); !ok || sym.Start != 0x10001000 {
		t.Fatalf("StStart not rebased: %+v", sym)
	}

	l.debug.PdbAge = 3
	if err := l.ApplySymbolFile(sf); err == nil {
		t.Fatal("symbol file for a different pdb accepted")
	}
}

func TestAddSymbolsReplaces(t *testing.T) {
	l := &LoaderHeader{}
	l.AddSymbols(models.Symbols{{Name: "a", Start: 1}, {Name: "b", Start: 2}})
	l.AddSymbols(models.Symbols{{Name: "a", Start: 5}})
	syms, _ := l.Symbols()
	if len(syms) != 2 || syms[0].Start != 5 {
		t.Fatalf("bad merge: %+v", syms)
	}
}

func TestMatchPE(t *testing.T) {
	if !MatchPE(bytes.NewReader([]byte("MZ\x90\x00"))) {
		t.Fatal("MZ header not matched")
	}
	if MatchPE(bytes.NewReader([]byte("\x7fELF"))) {
		t.Fatal("ELF matched as PE")
	}
	if _, err := Load(bytes.NewReader([]byte("\x7fELF"))); err == nil {
		t.Fatal("Load() accepted an ELF")
	}
}
