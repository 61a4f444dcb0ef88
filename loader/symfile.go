package loader

import (
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/lunixbochs/smkm/models"
)

type SymbolFileEntry struct {
	Name string `yaml:"name"`
	Rva  uint64 `yaml:"rva"`
	Size uint64 `yaml:"size"`
}

// SymbolFile is a yaml dump of the PDB symbols for one image, e.g.
//
//	image: ntoskrnl.exe
//	pdb: 3844DBB920174967BE7AA4A2C20430FA2
//	symbols:
//	  - {name: "?StStart@?$ST_STORE@USM_TRAITS@@@@SGJPAU1@...", rva: 0x5c1d0, size: 0x2f4}
type SymbolFile struct {
	Image   string            `yaml:"image"`
	Pdb     string            `yaml:"pdb"`
	Symbols []SymbolFileEntry `yaml:"symbols"`
}

func ParseSymbolFile(data []byte) (*SymbolFile, error) {
	var sf SymbolFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, errors.Wrap(err, "parsing symbol file")
	}
	for i, s := range sf.Symbols {
		if s.Name == "" {
			return nil, errors.Errorf("symbol file entry %d has no name", i)
		}
	}
	return &sf, nil
}

func ReadSymbolFile(path string) (*SymbolFile, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading symbol file")
	}
	return ParseSymbolFile(data)
}

func (s *SymbolFile) Matches(pdbId string) bool {
	return strings.EqualFold(s.Pdb, pdbId)
}

func (s *SymbolFile) Rebase(base uint64) models.Symbols {
	ret := make(models.Symbols, len(s.Symbols))
	for i, e := range s.Symbols {
		sym := models.Symbol{Name: e.Name, Start: base + e.Rva}
		if e.Size > 0 {
			sym.End = sym.Start + e.Size
		}
		ret[i] = sym
	}
	return ret
}
