package loader

import (
	"github.com/lunixbochs/smkm/models"
)

// LoaderHeader holds the fields every loader computes up front.
// Symbols are merged in from extra sources (symbol files) after load.
type LoaderHeader struct {
	arch  string
	bits  int
	base  uint64
	entry uint64
	debug *models.DebugInfo
	syms  models.Symbols
}

func (l *LoaderHeader) Arch() string {
	return l.arch
}

func (l *LoaderHeader) Bits() int {
	return l.bits
}

func (l *LoaderHeader) Base() uint64 {
	return l.base
}

func (l *LoaderHeader) Entry() uint64 {
	return l.entry
}

func (l *LoaderHeader) DebugInfo() *models.DebugInfo {
	return l.debug
}

func (l *LoaderHeader) Symbols() (models.Symbols, error) {
	return l.syms, nil
}

// AddSymbols merges syms, replacing existing entries with the same name.
func (l *LoaderHeader) AddSymbols(syms models.Symbols) {
	index := make(map[string]int, len(l.syms))
	for i, s := range l.syms {
		index[s.Name] = i
	}
	for _, s := range syms {
		if i, ok := index[s.Name]; ok {
			l.syms[i] = s
		} else {
			index[s.Name] = len(l.syms)
			l.syms = append(l.syms, s)
		}
	}
}
