package unicorn

import (
	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/smkm/models/cpu"
)

type Builder struct {
	Arch, Mode int
}

func (b *Builder) New() (cpu.Cpu, error) {
	u, err := uc.NewUnicorn(b.Arch, b.Mode)
	if err != nil {
		return nil, errors.Wrap(err, "NewUnicorn() failed")
	}
	return &UnicornCpu{u}, nil
}

type UnicornCpu struct {
	uc.Unicorn
}

func (u *UnicornCpu) HookAdd(htype int, cb interface{}, start uint64, end uint64) (cpu.Hook, error) {
	// hooks are wrapped so callbacks see the cpu.Cpu rather than the raw binding
	var wrap interface{}
	switch htype {
	case cpu.HOOK_CODE:
		cbc, ok := cb.(func(cpu.Cpu, uint64, uint32))
		if !ok {
			return nil, errors.New("bad HOOK_CODE callback type")
		}
		wrap = func(_ uc.Unicorn, addr uint64, size uint32) { cbc(u, addr, size) }

	case cpu.HOOK_MEM_READ_UNMAPPED, cpu.HOOK_MEM_WRITE_UNMAPPED, cpu.HOOK_MEM_UNMAPPED:
		cbc, ok := cb.(func(cpu.Cpu, int, uint64, int, int64) bool)
		if !ok {
			return nil, errors.New("bad HOOK_MEM_UNMAPPED callback type")
		}
		wrap = func(_ uc.Unicorn, access int, addr uint64, size int, val int64) bool {
			return cbc(u, access, addr, size, val)
		}

	default:
		return nil, errors.Errorf("unknown hook type: %d", htype)
	}
	hh, err := u.Unicorn.HookAdd(htype, wrap, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "unicorn HookAdd() failed")
	}
	return hh, nil
}

func (u *UnicornCpu) HookDel(hh cpu.Hook) error {
	h, ok := hh.(uc.Hook)
	if !ok {
		return errors.New("not a unicorn hook")
	}
	return u.Unicorn.HookDel(h)
}
