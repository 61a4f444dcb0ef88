package mock

import (
	"github.com/lunixbochs/smkm/models"
	"github.com/lunixbochs/smkm/models/cpu"
)

// StStart is ST_STORE::StStart from an x86 1809 kernel, trimmed down. The jne has to be forced:
// the scripted flags always fall through to the early return.
func StStart() Program {
	return Program{
		{0x401000, 1, "push", "esi", Nop},
		{0x401001, 2, "mov", "esi, ecx", func(c *Cpu) (uint64, error) { c.Set(ESI, c.Reg(ECX)); return 0, nil }},
		{0x401003, 5, "call", "0x401500", func(c *Cpu) (uint64, error) { c.Set(ESI, 0xdead); return 0x401500, nil }},
		{0x401008, 2, "cmp", "byte ptr [esi + 0x10], 0", func(c *Cpu) (uint64, error) {
			_, err := c.Load(c.Reg(ESI)+0x10, 1)
			return 0, err
		}},
		{0x40100a, 2, "jne", "0x40100e", Nop},
		{0x40100c, 1, "pop", "esi", Nop},
		{0x40100d, 1, "ret", "", func(c *Cpu) (uint64, error) { return 0xbad, nil }},
		{0x40100e, 3, "lea", "edx, [esi + 0x38]", func(c *Cpu) (uint64, error) { c.Set(EDX, c.Reg(ESI)+0x38); return 0, nil }},
		{0x401011, 2, "mov", "ecx, esi", func(c *Cpu) (uint64, error) { c.Set(ECX, c.Reg(ESI)); return 0, nil }},
		{0x401013, 5, "call", "0x402000", func(c *Cpu) (uint64, error) { return 0x402000, nil }},
		{0x401018, 1, "pop", "esi", Nop},
		{0x401019, 1, "ret", "", func(c *Cpu) (uint64, error) { return 0xbad, nil }},
	}
}

func StStartSymbols() models.Symbols {
	return models.Symbols{
		{Name: "?StDmStart@?$ST_STORE@USM_TRAITS@@@@SGJPAU1@PAU_ST_DATA_MGR@1@@Z", Start: 0x402000, End: 0x402100},
		{Name: "?StStart@?$ST_STORE@USM_TRAITS@@@@SGJPAU1@PAU_SM_STORE_STARTUP@@@Z", Start: 0x401000, End: 0x40101a},
		{Name: "?SmFeAllocateStore@?$SMKM_STORE_MGR@USM_TRAITS@@@@SGJPAU1@@Z", Start: 0x401500, End: 0x401600},
		{Name: "?StDmStop@?$ST_STORE@USM_TRAITS@@@@SGXPAU1@@Z", Start: 0x403000, End: 0x403100},
	}
}

// Image is a 32-bit image with an executable .text at 0x401000.
func Image(syms models.Symbols) *Loader {
	return &Loader{
		ArchName:   "x86",
		ImageBits:  32,
		ImageBase:  0x400000,
		ImageEntry: 0x401000,
		Syms:       syms,
		Segs: []*models.Segment{
			{Name: ".text", Addr: 0x401000, Data: make([]byte, 0x3000), Prot: cpu.PROT_READ | cpu.PROT_EXEC},
		},
	}
}
