package cpu

import (
	"fmt"
	"testing"
)

func TestHooksEmpty(t *testing.T) {
	h := NewHooks(nil)
	h.OnCode(0x1000, 1)
	if h.OnFault(MEM_READ_UNMAPPED, 0x1000, 4, 0) {
		t.Fatal("empty hooks handled a fault")
	}
}

func TestHooks(t *testing.T) {
	h := NewHooks(nil)
	var results []string
	codeCb := func(_ Cpu, addr uint64, size uint32) {
		results = append(results, fmt.Sprintf("code(%#x, %#x)", addr, size))
	}
	faultCb := func(_ Cpu, access int, addr uint64, size int, val int64) bool {
		results = append(results, fmt.Sprintf("fault(%d, %#x, %d)", access, addr, size))
		return true
	}
	all, err := h.HookAdd(HOOK_CODE, codeCb, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.HookAdd(HOOK_CODE, codeCb, 0x2000, 0x2fff); err != nil {
		t.Fatal(err)
	}
	if _, err := h.HookAdd(HOOK_MEM_UNMAPPED, faultCb, 1, 0); err != nil {
		t.Fatal(err)
	}
	h.OnCode(0x1000, 2)
	h.OnCode(0x2000, 3)
	if !h.OnFault(MEM_WRITE_UNMAPPED, 0x3000, 8, 0) {
		t.Fatal("fault not handled")
	}
	if err := h.HookDel(all); err != nil {
		t.Fatal(err)
	}
	h.OnCode(0x1000, 2)

	expected := []string{"code(0x1000, 0x2)", "code(0x2000, 0x3)", "code(0x2000, 0x3)", "fault(20, 0x3000, 8)"}
	if len(results) != len(expected) {
		t.Fatalf("hook results mismatch: %v", results)
	}
	for i, v := range expected {
		if results[i] != v {
			t.Fatalf("hook result %d: %s != %s", i, results[i], v)
		}
	}
}

func TestHooksBadCallback(t *testing.T) {
	h := NewHooks(nil)
	if _, err := h.HookAdd(HOOK_CODE, func() {}, 1, 0); err == nil {
		t.Fatal("HookAdd() accepted a mistyped callback")
	}
	if _, err := h.HookAdd(12345, func() {}, 1, 0); err == nil {
		t.Fatal("HookAdd() accepted an unknown hook type")
	}
}
