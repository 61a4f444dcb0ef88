package loader

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/models"
)

var UnknownMagic = errors.New("could not identify file magic")

func getMagic(r io.ReaderAt) []byte {
	ret := make([]byte, 2)
	r.ReadAt(ret, 0)
	return ret
}

// LoadFile loads a PE image, then overlays symbols from symfile if one is named.
func LoadFile(path, symfile string) (*PELoader, error) {
	p, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading image")
	}
	l, err := Load(bytes.NewReader(p))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	if symfile != "" {
		sf, err := ReadSymbolFile(symfile)
		if err != nil {
			return nil, err
		}
		if err := l.ApplySymbolFile(sf); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func Load(r io.ReaderAt) (*PELoader, error) {
	if MatchPE(r) {
		return NewPELoader(r)
	}
	return nil, errors.WithStack(UnknownMagic)
}

// ApplySymbolFile rebases the file's symbols onto the image. A symbol file built for a different PDB
// means a different binary version, which would produce wrong addresses.
func (l *LoaderHeader) ApplySymbolFile(sf *SymbolFile) error {
	if id := l.debug.Id(); sf.Pdb != "" && id != "" && !sf.Matches(id) {
		return errors.Errorf("symbol file is for pdb %s, image is %s", sf.Pdb, id)
	}
	l.AddSymbols(sf.Rebase(l.base))
	return nil
}

var _ models.Loader = &PELoader{}
