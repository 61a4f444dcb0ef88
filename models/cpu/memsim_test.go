package cpu

import (
	"bytes"
	"testing"
)

func pattern(len int) []byte {
	p := make([]byte, len)
	for i := range p {
		p[i] = byte(i*7 + i/8)
	}
	return p
}

func TestMemSim(t *testing.T) {
	m := &MemSim{}
	if _, err := m.Map(0x1000, 0x1000, PROT_READ|PROT_WRITE); err != nil {
		t.Fatal(err)
	}
	b := pattern(0x1000)
	c := make([]byte, len(b))
	if err := m.Write(0x1000, b, 0); err != nil {
		t.Fatal(err, "write failed")
	} else if err := m.Read(0x1000, c, 0); err != nil {
		t.Fatal(err, "read failed")
	} else if !bytes.Equal(b, c) {
		t.Fatal("read/write inconsistent")
	}
	if err := m.Read(0x1ff0, make([]byte, 0x20), 0); err == nil {
		t.Fatal("read past the mapping succeeded")
	}
	if err, ok := m.Read(0x3000, c[:4], 0).(*MemError); !ok || err.Enum != MEM_READ_UNMAPPED {
		t.Fatalf("expected unmapped read, got %v", err)
	}
	if err, ok := m.Write(0x3000, c[:4], 0).(*MemError); !ok || err.Enum != MEM_WRITE_UNMAPPED {
		t.Fatalf("expected unmapped write, got %v", err)
	}
}

func TestMemSimSpan(t *testing.T) {
	m := &MemSim{}
	// mapped out of order to check sorting
	if _, err := m.Map(0x2000, 0x1000, PROT_ALL); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Map(0x1000, 0x1000, PROT_ALL); err != nil {
		t.Fatal(err)
	}
	b := pattern(0x20)
	if err := m.Write(0x1ff0, b, 0); err != nil {
		t.Fatal(err)
	}
	c := make([]byte, len(b))
	if err := m.Read(0x1ff0, c, 0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, c) {
		t.Fatal("read across adjacent mappings inconsistent")
	}
	if m.Mem[0].Addr != 0x1000 {
		t.Fatal("mappings not sorted")
	}
}

func TestMemSimOverlap(t *testing.T) {
	m := &MemSim{}
	if _, err := m.Map(0x1100, 0x100, PROT_ALL); err != nil {
		t.Fatal(err)
	}
	// {start, end, should_error}
	table := [][]uint64{
		{0x1000, 0x1100, 0},
		{0x1000, 0x1200, 1},
		{0x1150, 0x1250, 1},
		{0x1200, 0x1250, 0},
	}
	for _, region := range table {
		tmp := &MemSim{Mem: append(Pages(nil), m.Mem...)}
		_, err := tmp.Map(region[0], region[1]-region[0], PROT_ALL)
		if (err != nil) != (region[2] == 1) {
			t.Errorf("Map(%#x, %#x) error: %v", region[0], region[1], err)
		}
	}
	if _, err := m.Map(0x5000, 0, PROT_ALL); err == nil {
		t.Error("zero-size map succeeded")
	}
}

func TestMemSimProt(t *testing.T) {
	m := &MemSim{}
	if _, err := m.Map(0x1000, 0x1000, PROT_READ|PROT_EXEC); err != nil {
		t.Fatal(err)
	}
	p := make([]byte, 4)
	if err := m.Read(0x1000, p, PROT_EXEC); err != nil {
		t.Fatal(err)
	}
	if err, ok := m.Write(0x1000, p, PROT_WRITE).(*MemError); !ok || err.Enum != MEM_WRITE_PROT {
		t.Fatalf("expected protected write, got %v", err)
	}
	if err := m.Write(0x1000, p, 0); err != nil {
		t.Fatalf("unchecked write should ignore protections: %v", err)
	}
	if err, ok := m.Read(0x3000, p, PROT_EXEC).(*MemError); !ok || err.Enum != MEM_FETCH_UNMAPPED {
		t.Fatalf("expected unmapped fetch, got %v", err)
	}
}
