package cpu

import (
	"testing"
)

func makeRegs(bits uint) ([]int, *Regs) {
	enums := make([]int, 100)
	for i := range enums {
		enums[i] = 100 - i
	}
	return enums, NewRegs(bits, enums)
}

func BenchmarkRegsRead(b *testing.B) {
	enums, regs := makeRegs(64)
	for i := 0; i < b.N; i++ {
		regs.RegRead(enums[i%len(enums)])
	}
}

func TestRegs(t *testing.T) {
	enums, regs := makeRegs(64)
	for i, e := range enums {
		if err := regs.RegWrite(e, uint64(i*2)); err != nil {
			t.Fatal(err, "RegWrite() failed")
		}
	}
	for i, e := range enums {
		if val, err := regs.RegRead(e); err != nil {
			t.Fatal(err, "RegRead() failed")
		} else if val != uint64(i*2) {
			t.Fatalf("RegRead() returned %d, expecting %d", val, i*2)
		}
	}
}

func TestRegsInvalid(t *testing.T) {
	_, regs := makeRegs(64)
	if _, err := regs.RegRead(1000); err == nil {
		t.Fatal("RegRead() of unknown register should fail")
	}
	if err := regs.RegWrite(1000, 1); err == nil {
		t.Fatal("RegWrite() of unknown register should fail")
	}
}

func TestRegs32(t *testing.T) {
	enums, regs := makeRegs(32)
	if err := regs.RegWrite(enums[0], 0x1122334455667788); err != nil {
		t.Fatal("RegWrite() failed")
	}
	if val, err := regs.RegRead(enums[0]); err != nil {
		t.Fatal("RegRead() failed")
	} else if val != 0x55667788 {
		t.Fatalf("RegRead() returned %#x, expecting 0x55667788", val)
	}
}

func TestPageAlign(t *testing.T) {
	addr, size := PageAlign(0x1234, 0x10)
	if addr != 0x1000 || size != 0x1000 {
		t.Fatalf("PageAlign(0x1234, 0x10) = %#x, %#x", addr, size)
	}
	addr, size = PageAlign(0x1ff0, 0x20)
	if addr != 0x1000 || size != 0x2000 {
		t.Fatalf("PageAlign(0x1ff0, 0x20) = %#x, %#x", addr, size)
	}
	addr, size = PageAlign(0x2000, 0)
	if addr != 0x2000 || size != 0x1000 {
		t.Fatalf("PageAlign(0x2000, 0) = %#x, %#x", addr, size)
	}
}
