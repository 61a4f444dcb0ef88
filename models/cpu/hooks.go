package cpu

import (
	"github.com/pkg/errors"
)

type hookInfo struct {
	htype int
	start uint64
	end   uint64
}

func (h *hookInfo) Type() int {
	return h.htype
}

// a range with start > end covers all of memory, same as Unicorn
func (h *hookInfo) Contains(addr uint64) bool {
	return h.start > h.end || addr >= h.start && addr <= h.end
}

type codeHook struct {
	hookInfo
	cb func(Cpu, uint64, uint32)
}

type faultHook struct {
	hookInfo
	cb func(Cpu, int, uint64, int, int64) bool
}

// Hooks dispatches callbacks for pure-Go Cpu implementations.
type Hooks struct {
	cpu Cpu

	code  []*codeHook
	fault []*faultHook
}

func NewHooks(cpu Cpu) *Hooks {
	return &Hooks{cpu: cpu}
}

func (h *Hooks) HookAdd(htype int, cb interface{}, start uint64, end uint64) (Hook, error) {
	info := hookInfo{htype, start, end}
	switch htype {
	case HOOK_CODE:
		fn, ok := cb.(func(Cpu, uint64, uint32))
		if !ok {
			return nil, errors.New("bad HOOK_CODE callback type")
		}
		hh := &codeHook{info, fn}
		h.code = append(h.code, hh)
		return hh, nil
	case HOOK_MEM_READ_UNMAPPED, HOOK_MEM_WRITE_UNMAPPED, HOOK_MEM_UNMAPPED:
		fn, ok := cb.(func(Cpu, int, uint64, int, int64) bool)
		if !ok {
			return nil, errors.New("bad HOOK_MEM_UNMAPPED callback type")
		}
		hh := &faultHook{info, fn}
		h.fault = append(h.fault, hh)
		return hh, nil
	}
	return nil, errors.Errorf("unknown hook type: %d", htype)
}

func (h *Hooks) HookDel(hh Hook) error {
	switch v := hh.(type) {
	case *codeHook:
		var tmp []*codeHook
		for _, c := range h.code {
			if c != v {
				tmp = append(tmp, c)
			}
		}
		h.code = tmp
	case *faultHook:
		var tmp []*faultHook
		for _, f := range h.fault {
			if f != v {
				tmp = append(tmp, f)
			}
		}
		h.fault = tmp
	default:
		return errors.New("not a hook from this cpu")
	}
	return nil
}

func (h *Hooks) OnCode(addr uint64, size uint32) {
	for _, v := range h.code {
		if v.Contains(addr) {
			v.cb(h.cpu, addr, size)
		}
	}
}

// OnFault returns true if any callback handled the fault.
func (h *Hooks) OnFault(access int, addr uint64, size int, val int64) bool {
	for _, v := range h.fault {
		if v.Contains(addr) && v.cb(h.cpu, access, addr, size, val) {
			return true
		}
	}
	return false
}
