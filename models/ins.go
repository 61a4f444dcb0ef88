package models

type Ins interface {
	Addr() uint64
	Bytes() []byte
	Mnemonic() string
	OpStr() string
}

type Disassembler interface {
	Dis(mem []byte, addr uint64) ([]Ins, error)
}
