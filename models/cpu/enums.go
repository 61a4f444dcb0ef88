package cpu

// hook enums match Unicorn's so they pass straight through
// https://github.com/unicorn-engine/unicorn/blob/master/bindings/go/unicorn/unicorn_const.go
const (
	// hook each executed instruction
	HOOK_CODE = 4

	// hook unmapped data reads and writes (instruction fetches still fault)
	HOOK_MEM_READ_UNMAPPED  = 16
	HOOK_MEM_WRITE_UNMAPPED = 32
	HOOK_MEM_UNMAPPED       = HOOK_MEM_READ_UNMAPPED | HOOK_MEM_WRITE_UNMAPPED
)

// memory access kinds, as passed to HOOK_MEM_UNMAPPED callbacks
const (
	MEM_READ_UNMAPPED  = 19
	MEM_WRITE_UNMAPPED = 20
	MEM_FETCH_UNMAPPED = 21
	MEM_WRITE_PROT     = 22
	MEM_READ_PROT      = 23
	MEM_FETCH_PROT     = 24
)

const (
	PROT_NONE  = 0
	PROT_READ  = 1
	PROT_WRITE = 2
	PROT_EXEC  = 4
	PROT_ALL   = 7
)

const PAGE_SIZE = 0x1000

// rounds addr down and addr+size up to page boundaries
func PageAlign(addr, size uint64) (uint64, uint64) {
	start := addr &^ (PAGE_SIZE - 1)
	end := (addr + size + PAGE_SIZE - 1) &^ (PAGE_SIZE - 1)
	if end == start {
		end += PAGE_SIZE
	}
	return start, end - start
}
