package cpu

import (
	"testing"
)

func TestPageFind(t *testing.T) {
	mem := Pages{
		&Page{Addr: 0x1000, Size: 0x1000},
		&Page{Addr: 0x2000, Size: 0x1000},
		&Page{Addr: 0x4000, Size: 0x2000},
		&Page{Addr: 0x6000, Size: 0x2000},
	}
	if mem.Find(0x1000) != mem[0] ||
		mem.Find(0x1001) != mem[0] ||
		mem.Find(0x1fff) != mem[0] ||
		mem.Find(0x5000) != mem[2] {
		t.Error("Find() failed")
	}
	if mem.Find(0x3000) != nil ||
		mem.Find(0x1) != nil ||
		mem.Find(0x10000) != nil {
		t.Error("Find() negative failed")
	}
}

func TestPageString(t *testing.T) {
	p := &Page{Addr: 0x401000, Size: 0x1000, Prot: PROT_READ | PROT_EXEC, Desc: ".text"}
	if s := p.String(); s != "0x401000-0x402000 r-x [.text]" {
		t.Fatalf("String() = %q", s)
	}
}
