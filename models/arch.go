package models

import (
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/models/cpu"
)

type Reg struct {
	Enum int
	Name string
}

type RegVal struct {
	Reg
	Val uint64
}

type regList []Reg

func (r regList) Len() int           { return len(r) }
func (r regList) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r regList) Less(i, j int) bool { return sortorder.NaturalLess(r[i].Name, r[j].Name) }

type regMap map[string]int

func (r regMap) Items() regList {
	ret := make(regList, 0, len(r))
	for n, e := range r {
		ret = append(ret, Reg{e, n})
	}
	return ret
}

type Arch struct {
	Name string
	Bits int

	Cpu cpu.Builder
	Dis Disassembler

	PC  int
	SP  int
	Ret int
	// registers carrying the first N call arguments, in order
	Args []int
	// sub-register names that alias a full-width register, e.g. "edx" -> "rdx"
	Alias map[string]string
	Regs  regMap

	// sorted for RegDump
	regList regList
}

func (a *Arch) Reg(name string) (int, error) {
	if enum, ok := a.Regs[name]; ok {
		return enum, nil
	}
	return 0, errors.Errorf("unknown %s register: %s", a.Name, name)
}

// Widens an alias to the register it is part of. Unknown names are returned unchanged.
func (a *Arch) FullReg(name string) string {
	if full, ok := a.Alias[name]; ok {
		return full
	}
	return name
}

func (a *Arch) RegList() []Reg {
	if a.regList == nil {
		rl := a.Regs.Items()
		sort.Sort(rl)
		a.regList = rl
	}
	return a.regList
}

func (a *Arch) RegDump(c cpu.Cpu) ([]RegVal, error) {
	rl := a.RegList()
	ret := make([]RegVal, len(rl))
	for i, r := range rl {
		val, err := c.RegRead(r.Enum)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", r.Name)
		}
		ret[i] = RegVal{r, val}
	}
	return ret, nil
}
