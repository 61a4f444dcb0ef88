package x86_64

import (
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/smkm/cpu"
	"github.com/lunixbochs/smkm/cpu/unicorn"
	"github.com/lunixbochs/smkm/models"
)

var Arch = &models.Arch{
	Name: "x86_64",
	Bits: 64,

	Cpu: &unicorn.Builder{Arch: uc.ARCH_X86, Mode: uc.MODE_64},
	Dis: &cpu.Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_64},

	PC:  uc.X86_REG_RIP,
	SP:  uc.X86_REG_RSP,
	Ret: uc.X86_REG_RAX,
	// Microsoft x64 calling convention
	Args: []int{uc.X86_REG_RCX, uc.X86_REG_RDX, uc.X86_REG_R8, uc.X86_REG_R9},
	Alias: map[string]string{
		"eax": "rax", "ax": "rax", "al": "rax", "ah": "rax",
		"ebx": "rbx", "bx": "rbx", "bl": "rbx", "bh": "rbx",
		"ecx": "rcx", "cx": "rcx", "cl": "rcx", "ch": "rcx",
		"edx": "rdx", "dx": "rdx", "dl": "rdx", "dh": "rdx",
		"esi": "rsi", "si": "rsi", "sil": "rsi",
		"edi": "rdi", "di": "rdi", "dil": "rdi",
		"ebp": "rbp", "esp": "rsp",
		"r8d": "r8", "r9d": "r9", "r10d": "r10", "r11d": "r11",
		"r12d": "r12", "r13d": "r13", "r14d": "r14", "r15d": "r15",
	},
	Regs: map[string]int{
		"rip": uc.X86_REG_RIP,
		"rsp": uc.X86_REG_RSP,
		"rbp": uc.X86_REG_RBP,
		"rax": uc.X86_REG_RAX,
		"rbx": uc.X86_REG_RBX,
		"rcx": uc.X86_REG_RCX,
		"rdx": uc.X86_REG_RDX,
		"rsi": uc.X86_REG_RSI,
		"rdi": uc.X86_REG_RDI,
		"r8":  uc.X86_REG_R8,
		"r9":  uc.X86_REG_R9,
		"r10": uc.X86_REG_R10,
		"r11": uc.X86_REG_R11,
		"r12": uc.X86_REG_R12,
		"r13": uc.X86_REG_R13,
		"r14": uc.X86_REG_R14,
		"r15": uc.X86_REG_R15,

		"rflags": uc.X86_REG_EFLAGS,
	},
}
