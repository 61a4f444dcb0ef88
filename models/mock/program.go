package mock

import (
	"github.com/lunixbochs/smkm/models"
)

// Ins is a scripted instruction. Exec returns the next pc, or 0 to fall through.
type Ins struct {
	Address uint64
	Size    int
	Mne     string
	Ops     string
	Exec    func(c *Cpu) (uint64, error)
}

func (i *Ins) Addr() uint64     { return i.Address }
func (i *Ins) Bytes() []byte    { return make([]byte, i.Size) }
func (i *Ins) Mnemonic() string { return i.Mne }
func (i *Ins) OpStr() string    { return i.Ops }

func Nop(c *Cpu) (uint64, error) { return 0, nil }

type Program []*Ins

func (p Program) Find(addr uint64) *Ins {
	for _, ins := range p {
		if ins.Address == addr {
			return ins
		}
	}
	return nil
}

// Dis "disassembles" by walking the program from addr until it runs off the end of mem or the script.
type Dis struct {
	Prog Program
}

func (d *Dis) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	var ret []models.Ins
	end := addr + uint64(len(mem))
	for pc := addr; pc < end; {
		ins := d.Prog.Find(pc)
		if ins == nil {
			break
		}
		ret = append(ret, ins)
		pc += uint64(ins.Size)
	}
	return ret, nil
}
