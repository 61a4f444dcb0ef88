package x86

import (
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/smkm/cpu"
	"github.com/lunixbochs/smkm/cpu/unicorn"
	"github.com/lunixbochs/smkm/models"
)

var Arch = &models.Arch{
	Name: "x86",
	Bits: 32,

	Cpu: &unicorn.Builder{Arch: uc.ARCH_X86, Mode: uc.MODE_32},
	Dis: &cpu.Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_32},

	PC:  uc.X86_REG_EIP,
	SP:  uc.X86_REG_ESP,
	Ret: uc.X86_REG_EAX,
	// __fastcall / __thiscall register arguments
	Args: []int{uc.X86_REG_ECX, uc.X86_REG_EDX},
	Alias: map[string]string{
		"ax": "eax", "al": "eax", "ah": "eax",
		"bx": "ebx", "bl": "ebx", "bh": "ebx",
		"cx": "ecx", "cl": "ecx", "ch": "ecx",
		"dx": "edx", "dl": "edx", "dh": "edx",
		"si": "esi", "di": "edi", "bp": "ebp", "sp": "esp",
	},
	Regs: map[string]int{
		"eip": uc.X86_REG_EIP,
		"esp": uc.X86_REG_ESP,
		"ebp": uc.X86_REG_EBP,
		"eax": uc.X86_REG_EAX,
		"ebx": uc.X86_REG_EBX,
		"ecx": uc.X86_REG_ECX,
		"edx": uc.X86_REG_EDX,
		"esi": uc.X86_REG_ESI,
		"edi": uc.X86_REG_EDI,

		"eflags": uc.X86_REG_EFLAGS,
	},
}
