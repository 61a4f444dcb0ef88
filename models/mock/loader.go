package mock

import (
	"github.com/lunixbochs/smkm/models"
)

type Loader struct {
	ArchName   string
	ImageBits  int
	ImageBase  uint64
	ImageEntry uint64
	Syms       models.Symbols
	Segs       []*models.Segment
	Debug      *models.DebugInfo
}

func (l *Loader) Arch() string                         { return l.ArchName }
func (l *Loader) Bits() int                            { return l.ImageBits }
func (l *Loader) Base() uint64                         { return l.ImageBase }
func (l *Loader) Entry() uint64                        { return l.ImageEntry }
func (l *Loader) Symbols() (models.Symbols, error)     { return l.Syms, nil }
func (l *Loader) Segments() ([]*models.Segment, error) { return l.Segs, nil }
func (l *Loader) DebugInfo() *models.DebugInfo         { return l.Debug }
