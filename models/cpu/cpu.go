package cpu

type Hook interface{}

// Cpu is the subset of an emulator the analysis needs: flat memory, registers, and code/fault hooks.
type Cpu interface {
	// memory
	MemMapProt(addr, size uint64, prot int) error
	MemRead(addr, size uint64) ([]byte, error)
	MemWrite(addr uint64, p []byte) error

	// registers
	RegRead(reg int) (uint64, error)
	RegWrite(reg int, val uint64) error

	// execution
	Start(begin, until uint64) error
	Stop() error

	// hooks
	// HOOK_CODE callbacks are func(Cpu, uint64, uint32)
	// HOOK_MEM_UNMAPPED callbacks are func(Cpu, int, uint64, int, int64) bool
	HookAdd(htype int, cb interface{}, begin, end uint64) (Hook, error)
	HookDel(hook Hook) error

	Close() error
}

type Builder interface {
	New() (Cpu, error)
}
