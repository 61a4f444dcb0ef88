package analysis

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lunixbochs/smkm/models"
	"github.com/lunixbochs/smkm/models/cpu"
)

// emulation of one function up to a target instruction
type run struct {
	a      *Analysis
	cpu    cpu.Cpu
	target uint64
	ins    map[uint64]models.Ins

	// conditional branch address -> the next block on the path
	forced map[uint64]uint64
	mapped map[uint64]bool

	count int
	state *RegState
	err   error
}

// Iterate emulates site.Func from its start along the shortest block path to the call at site.End,
// and returns the registers as they are immediately before the call executes.
//
// Other calls are stepped over with a zero return value, conditional branches are forced onto the
// path, and unmapped data accesses are backed with zero pages.
func (a *Analysis) Iterate(site CallSite) (*RegState, error) {
	dis, err := a.Disas(site.Func)
	if err != nil {
		return nil, err
	}
	blocks := FindBlocks(dis)
	path := blocks.Path(site.Start, site.End)
	if path == nil {
		return nil, errors.Wrapf(models.ErrEmulation, "no path from %s to %s", hex(site.Start), hex(site.End))
	}
	r := &run{
		a:      a,
		target: site.End,
		ins:    make(map[uint64]models.Ins, len(dis)),
		forced: make(map[uint64]uint64),
		mapped: make(map[uint64]bool),
	}
	for _, ins := range dis {
		r.ins[ins.Addr()] = ins
	}
	for i, b := range path[:len(path)-1] {
		last := b.Last()
		if isCondJump(last) || isJmp(last) {
			r.forced[last.Addr()] = path[i+1].Start
		}
	}
	a.Log.WithFields(logrus.Fields{
		"func":   site.Func.Name,
		"blocks": len(path),
		"target": hex(site.End),
	}).Debug("emulating path")

	c, err := a.Arch.Cpu.New()
	if err != nil {
		return nil, errors.Wrap(err, "creating cpu")
	}
	defer c.Close()
	r.cpu = c
	if err := r.setup(); err != nil {
		return nil, err
	}
	if _, err := c.HookAdd(cpu.HOOK_CODE, r.onCode, site.Func.Start, site.Func.End-1); err != nil {
		return nil, err
	}
	if _, err := c.HookAdd(cpu.HOOK_MEM_UNMAPPED, r.onFault, 1, 0); err != nil {
		return nil, err
	}
	startErr := c.Start(site.Start, 0)
	switch {
	case r.err != nil:
		return nil, r.err
	case r.state == nil && startErr != nil:
		return nil, errors.Wrapf(models.ErrEmulation, "%s before reaching %s: %v", site.Func.Name, hex(site.End), startErr)
	case r.state == nil:
		return nil, errors.Wrapf(models.ErrEmulation, "%s stopped before reaching %s", site.Func.Name, hex(site.End))
	}
	a.Log.WithField("state", r.state.String()).Debug("reached target")
	return r.state, nil
}

// mapRange maps the pages covering addr-addr+size that aren't mapped yet.
func (r *run) mapRange(addr, size uint64, prot int) error {
	start, size := cpu.PageAlign(addr, size)
	for page := start; page < start+size; page += cpu.PAGE_SIZE {
		if r.mapped[page] {
			continue
		}
		if err := r.cpu.MemMapProt(page, cpu.PAGE_SIZE, prot); err != nil {
			return errors.Wrapf(err, "mapping %s", hex(page))
		}
		r.mapped[page] = true
	}
	return nil
}

func (r *run) setup() error {
	a, c := r.a, r.cpu
	for _, seg := range a.segments {
		if len(seg.Data) == 0 {
			continue
		}
		if err := r.mapRange(seg.Addr, uint64(len(seg.Data)), seg.Prot); err != nil {
			return err
		}
		if err := c.MemWrite(seg.Addr, seg.Data); err != nil {
			return errors.Wrapf(err, "writing segment %s", seg.Name)
		}
	}
	conf := a.Config
	if err := r.mapRange(conf.StackBase, conf.StackSize, cpu.PROT_READ|cpu.PROT_WRITE); err != nil {
		return err
	}
	// leave room above sp for stack arguments and the return address
	if err := c.RegWrite(a.Arch.SP, conf.StackBase+conf.StackSize/2); err != nil {
		return errors.Wrap(err, "setting stack pointer")
	}
	if len(a.Arch.Args) > 0 {
		if err := c.RegWrite(a.Arch.Args[0], conf.StructBase); err != nil {
			return errors.Wrap(err, "seeding first argument")
		}
	}
	return nil
}

func (r *run) fail(err error) {
	r.err = err
	r.cpu.Stop()
}

func (r *run) onCode(c cpu.Cpu, addr uint64, size uint32) {
	r.count++
	if max := r.a.Config.MaxInstructions; max > 0 && r.count > max {
		r.fail(errors.Wrapf(models.ErrEmulation, "instruction limit (%d) hit at %s", max, hex(addr)))
		return
	}
	if addr == r.target {
		regs, err := r.a.Arch.RegDump(c)
		if err != nil {
			r.fail(errors.Wrap(err, "capturing registers"))
			return
		}
		r.state = &RegState{Addr: addr, Regs: regs}
		c.Stop()
		return
	}
	ins, ok := r.ins[addr]
	if !ok {
		return
	}
	next := addr + uint64(size)
	switch {
	case isCall(ins):
		r.redirect(c, next)
		if err := c.RegWrite(r.a.Arch.Ret, 0); err != nil {
			r.fail(errors.Wrap(err, "clearing return value"))
		}
	case isRet(ins):
		r.fail(errors.Wrapf(models.ErrEmulation, "returned at %s before reaching %s", hex(addr), hex(r.target)))
	default:
		if to, ok := r.forced[addr]; ok {
			r.redirect(c, to)
		}
	}
}

func (r *run) redirect(c cpu.Cpu, pc uint64) {
	if err := c.RegWrite(r.a.Arch.PC, pc); err != nil {
		r.fail(errors.Wrap(err, "setting pc"))
	}
}

func (r *run) onFault(c cpu.Cpu, access int, addr uint64, size int, val int64) bool {
	if err := r.mapRange(addr, uint64(size), cpu.PROT_READ|cpu.PROT_WRITE); err != nil {
		r.a.Log.WithError(err).Debug("could not back unmapped access")
		return false
	}
	r.a.Log.WithField("addr", hex(addr)).Debug("mapped zero page")
	return true
}
