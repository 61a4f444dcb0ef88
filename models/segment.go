package models

import (
	"github.com/lunixbochs/smkm/models/cpu"
)

type Segment struct {
	Name string
	Addr uint64
	Data []byte
	Prot int
}

func (s *Segment) Contains(addr uint64) bool {
	return addr >= s.Addr && addr < s.Addr+uint64(len(s.Data))
}

func (s *Segment) Executable() bool {
	return s.Prot&cpu.PROT_EXEC != 0
}
