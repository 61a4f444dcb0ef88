package mock

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/models"
	"github.com/lunixbochs/smkm/models/cpu"
)

// register enums of the X86 profile
const (
	EIP = iota + 1
	ESP
	EAX
	ECX
	EDX
	ESI
)

// Cpu steps through a Program, dispatching hooks the way Unicorn does:
// code hooks run before each instruction and may redirect by writing pc.
type Cpu struct {
	*cpu.Regs
	*cpu.Hooks
	Mem  cpu.MemSim
	Prog Program

	Stopped bool
	Closed  bool
}

func NewCpu(prog Program) *Cpu {
	c := &Cpu{
		Regs: cpu.NewRegs(32, []int{EIP, ESP, EAX, ECX, EDX, ESI}),
		Prog: prog,
	}
	c.Hooks = cpu.NewHooks(c)
	return c
}

func (c *Cpu) Reg(enum int) uint64 {
	val, _ := c.RegRead(enum)
	return val
}

func (c *Cpu) Set(enum int, val uint64) {
	c.RegWrite(enum, val)
}

func (c *Cpu) MemMapProt(addr, size uint64, prot int) error {
	_, err := c.Mem.Map(addr, size, prot)
	return err
}

func (c *Cpu) MemRead(addr, size uint64) ([]byte, error) {
	p := make([]byte, size)
	if err := c.Mem.Read(addr, p, 0); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Cpu) MemWrite(addr uint64, p []byte) error {
	return c.Mem.Write(addr, p, 0)
}

func unmapped(err error) bool {
	merr, ok := err.(*cpu.MemError)
	return ok && (merr.Enum == cpu.MEM_READ_UNMAPPED || merr.Enum == cpu.MEM_WRITE_UNMAPPED)
}

// Load is a guest data read. Unmapped reads go through the fault hooks once, then retry.
func (c *Cpu) Load(addr, size uint64) ([]byte, error) {
	p := make([]byte, size)
	err := c.Mem.Read(addr, p, cpu.PROT_READ)
	if unmapped(err) && c.OnFault(cpu.MEM_READ_UNMAPPED, addr, int(size), 0) {
		err = c.Mem.Read(addr, p, cpu.PROT_READ)
	}
	return p, err
}

// Store is a guest data write, faulting like Load.
func (c *Cpu) Store(addr uint64, p []byte) error {
	err := c.Mem.Write(addr, p, cpu.PROT_WRITE)
	if unmapped(err) && c.OnFault(cpu.MEM_WRITE_UNMAPPED, addr, len(p), 0) {
		err = c.Mem.Write(addr, p, cpu.PROT_WRITE)
	}
	return err
}

func (c *Cpu) Start(begin, until uint64) error {
	c.Stopped = false
	pc := begin
	for i := 0; i < 10000 && pc != until; i++ {
		ins := c.Prog.Find(pc)
		if ins == nil {
			return errors.Errorf("no instruction at %#x", pc)
		}
		if err := c.Mem.Read(pc, make([]byte, ins.Size), cpu.PROT_EXEC); err != nil {
			return err
		}
		c.Set(EIP, pc)
		c.OnCode(pc, uint32(ins.Size))
		if c.Stopped {
			return nil
		}
		if next := c.Reg(EIP); next != pc {
			pc = next
			continue
		}
		next := pc + uint64(ins.Size)
		if ins.Exec != nil {
			to, err := ins.Exec(c)
			if err != nil {
				return err
			}
			if to != 0 {
				next = to
			}
		}
		pc = next
	}
	if pc == until {
		return nil
	}
	return errors.New("mock cpu ran too long")
}

func (c *Cpu) Stop() error {
	c.Stopped = true
	return nil
}

func (c *Cpu) Close() error {
	c.Closed = true
	return nil
}

// Builder hands out a fresh Cpu per New, keeping the last one for inspection.
type Builder struct {
	Prog Program
	Last *Cpu
	Runs int
}

func (b *Builder) New() (cpu.Cpu, error) {
	b.Last = NewCpu(b.Prog)
	b.Runs++
	return b.Last, nil
}

// X86 is a 32-bit profile over the mock Cpu registers.
func X86(b *Builder) *models.Arch {
	return &models.Arch{
		Name: "x86",
		Bits: 32,
		Cpu:  b,
		Dis:  &Dis{b.Prog},
		PC:   EIP,
		SP:   ESP,
		Ret:  EAX,
		Args: []int{ECX, EDX},
		Alias: map[string]string{
			"dx": "edx", "dl": "edx", "dh": "edx",
			"cx": "ecx", "cl": "ecx",
		},
		Regs: map[string]int{
			"eip": EIP, "esp": ESP, "eax": EAX,
			"ecx": ECX, "edx": EDX, "esi": ESI,
		},
	}
}
