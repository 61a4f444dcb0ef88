package analysis

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lunixbochs/smkm/models"
)

// CallSite is a call found inside Func. Emulation runs from Start and stops at End,
// the address of the call instruction itself.
type CallSite struct {
	Func       models.Symbol
	Callee     models.Symbol
	Start, End uint64
	Ins        models.Ins
}

// LocateCallInFn finds the first direct call in fn whose target is a function matching callee.
func (a *Analysis) LocateCallInFn(fn, callee string) (CallSite, error) {
	sym, err := a.Function(fn)
	if err != nil {
		return CallSite{}, err
	}
	if _, ok := a.syms.Find(callee); !ok {
		return CallSite{}, errors.Wrapf(models.ErrSymbolNotFound, "function %s", callee)
	}
	dis, err := a.Disas(sym)
	if err != nil {
		return CallSite{}, err
	}
	for _, ins := range dis {
		if !isCall(ins) {
			continue
		}
		target, ok := directTarget(ins)
		if !ok {
			continue
		}
		tsym, ok := a.syms.Lookup(target)
		if !ok || !strings.Contains(tsym.Name, callee) {
			continue
		}
		site := CallSite{Func: sym, Callee: tsym, Start: sym.Start, End: ins.Addr(), Ins: ins}
		a.Log.WithFields(logrus.Fields{
			"func":   sym.Name,
			"callee": tsym.Name,
			"addr":   hex(site.End),
		}).Debug("located call site")
		return site, nil
	}
	return CallSite{}, errors.Wrapf(models.ErrCallSiteNotFound, "no call to %s in %s", callee, sym.Name)
}

// ArgumentWriter finds the instruction that last sets reg on the block path Iterate will emulate,
// walking back from the call without crossing an earlier one. A register argument loaded anywhere
// else can't be trusted to hold the same value on every binary version, so its absence is an error
// rather than a guess.
func (a *Analysis) ArgumentWriter(site CallSite, reg string) (models.Ins, error) {
	want := a.Arch.FullReg(reg)
	if _, err := a.Arch.Reg(want); err != nil {
		return nil, err
	}
	dis, err := a.Disas(site.Func)
	if err != nil {
		return nil, err
	}
	blocks := FindBlocks(dis)
	path := blocks.Path(site.Start, site.End)
	if path == nil {
		block := blocks.Find(site.End)
		if block == nil {
			return nil, errors.Wrapf(models.ErrCallSiteNotFound, "%s is not in %s", hex(site.End), site.Func.Name)
		}
		path = Blocks{block}
	}
	unstable := errors.Wrapf(models.ErrUnstableArgument, "%s before call at %s", reg, hex(site.End))
	for i := len(path) - 1; i >= 0; i-- {
		block := path[i]
		for j := len(block.Ins) - 1; j >= 0; j-- {
			ins := block.Ins[j]
			if ins.Addr() >= site.End {
				continue
			}
			if isCall(ins) {
				// skipped calls zero the return register, and may clobber volatile ones
				return nil, unstable
			}
			if writesDest(ins) && a.Arch.FullReg(destOperand(ins)) == want {
				return ins, nil
			}
		}
	}
	return nil, unstable
}
