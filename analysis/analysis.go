package analysis

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lunixbochs/smkm/models"
	"github.com/lunixbochs/smkm/models/cpu"
)

// Analysis answers structural questions about one loaded image: where functions are, which calls
// they make, and what registers hold when emulation reaches a given instruction.
type Analysis struct {
	Loader models.Loader
	Arch   *models.Arch
	Config *models.Config
	Log    logrus.FieldLogger

	syms     models.Symbols
	segments []*models.Segment
	// file-backed image memory, for disassembly
	image cpu.MemSim
}

func New(l models.Loader, arch *models.Arch, config *models.Config, log logrus.FieldLogger) (*Analysis, error) {
	if l.Bits() != arch.Bits {
		return nil, errors.Errorf("%d-bit image with %s arch profile", l.Bits(), arch.Name)
	}
	if config == nil {
		config = models.DefaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	syms, err := l.Symbols()
	if err != nil {
		return nil, errors.Wrap(err, "reading symbols")
	}
	segments, err := l.Segments()
	if err != nil {
		return nil, errors.Wrap(err, "reading segments")
	}
	a := &Analysis{
		Loader:   l,
		Arch:     arch,
		Config:   config,
		Log:      log,
		syms:     syms.Sorted(),
		segments: segments,
	}
	for _, seg := range segments {
		if len(seg.Data) == 0 {
			continue
		}
		page, err := a.image.Map(seg.Addr, uint64(len(seg.Data)), seg.Prot)
		if err != nil {
			return nil, errors.Wrapf(err, "segment %s", seg.Name)
		}
		page.Desc = seg.Name
		copy(page.Data, seg.Data)
	}
	return a, nil
}

func (a *Analysis) Bits() int {
	return a.Arch.Bits
}

func (a *Analysis) Symbols() models.Symbols {
	return a.syms
}

// Function resolves a function symbol and fills in its end if the symbol source had no size.
// A symbol outside the image's executable segments is not a function.
func (a *Analysis) Function(pattern string) (models.Symbol, error) {
	sym, ok := a.syms.Find(pattern)
	if !ok {
		return models.Symbol{}, errors.Wrapf(models.ErrSymbolNotFound, "function %s", pattern)
	}
	seg := a.segment(sym.Start)
	if seg == nil || !seg.Executable() {
		return models.Symbol{}, errors.Wrapf(models.ErrSymbolNotFound, "%s at %s is not in executable memory", sym.Name, hex(sym.Start))
	}
	limit := sym.Start + a.Config.MaxFuncSize
	if sym.End == 0 || sym.End > limit {
		sym.End = limit
		if next := a.syms.Next(sym.Start); next != 0 && next < sym.End {
			sym.End = next
		}
	}
	if end := seg.Addr + uint64(len(seg.Data)); sym.End > end {
		sym.End = end
	}
	return sym, nil
}

func (a *Analysis) segment(addr uint64) *models.Segment {
	for _, seg := range a.segments {
		if seg.Contains(addr) {
			return seg
		}
	}
	return nil
}

// Disas returns the instructions of a resolved function, in address order.
func (a *Analysis) Disas(fn models.Symbol) ([]models.Ins, error) {
	mem := make([]byte, fn.Size())
	if err := a.image.Read(fn.Start, mem, cpu.PROT_EXEC); err != nil {
		return nil, errors.Wrapf(models.ErrSymbolNotFound, "reading %s: %v", fn.Name, err)
	}
	dis, err := a.Arch.Dis.Dis(mem, fn.Start)
	if err != nil {
		return nil, errors.Wrapf(models.ErrEmulation, "disassembling %s: %v", fn.Name, err)
	}
	return dis, nil
}
