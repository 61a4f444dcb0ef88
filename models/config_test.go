package models

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte("symbols: ntoskrnl.yml\nstruct_base: 0x20000000\nverbose: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.SymbolFile != "ntoskrnl.yml" || c.StructBase != 0x20000000 || !c.Verbose {
		t.Fatalf("bad parse: %+v", c)
	}
	def := DefaultConfig()
	if c.StackBase != def.StackBase || c.MaxInstructions != def.MaxInstructions {
		t.Fatal("unset fields should keep their defaults")
	}
}

func TestParseConfigBad(t *testing.T) {
	if _, err := ParseConfig([]byte("struct_base: [1, 2]\n")); err == nil {
		t.Fatal("bad yaml accepted")
	}
}

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "smkm")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, ConfigFile)
	if err := ioutil.WriteFile(path, []byte("max_instructions: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.MaxInstructions != 50 {
		t.Fatalf("MaxInstructions = %d", c.MaxInstructions)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatal("missing explicit config should fail")
	}
}
