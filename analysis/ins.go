package analysis

import (
	"strconv"
	"strings"

	"github.com/lunixbochs/smkm/models"
)

func isCall(ins models.Ins) bool {
	return ins.Mnemonic() == "call"
}

func isRet(ins models.Ins) bool {
	switch ins.Mnemonic() {
	case "ret", "retn", "retf", "iret", "iretd", "iretq":
		return true
	}
	return false
}

func isJmp(ins models.Ins) bool {
	return ins.Mnemonic() == "jmp"
}

func isCondJump(ins models.Ins) bool {
	m := ins.Mnemonic()
	if strings.HasPrefix(m, "loop") {
		return true
	}
	return strings.HasPrefix(m, "j") && m != "jmp"
}

// ends a basic block; calls don't, since emulation steps over them
func isBranch(ins models.Ins) bool {
	return isJmp(ins) || isCondJump(ins) || isRet(ins)
}

// directTarget parses an immediate branch or call target, e.g. "0x401200".
// Register and memory operands return false.
func directTarget(ins models.Ins) (uint64, bool) {
	target, err := strconv.ParseUint(strings.TrimSpace(ins.OpStr()), 0, 64)
	if err != nil {
		return 0, false
	}
	return target, true
}

// destOperand returns the first operand, which is the destination in Intel syntax.
func destOperand(ins models.Ins) string {
	op := ins.OpStr()
	if i := strings.Index(op, ","); i >= 0 {
		op = op[:i]
	}
	return strings.TrimSpace(op)
}

// writesDest reports whether ins stores to its first operand.
func writesDest(ins models.Ins) bool {
	switch ins.Mnemonic() {
	case "cmp", "test", "push", "call", "bt", "nop":
		return false
	case "pop", "inc", "dec", "neg", "not":
		return true
	}
	return !isBranch(ins) && strings.Contains(ins.OpStr(), ",")
}

func insEnd(ins models.Ins) uint64 {
	return ins.Addr() + uint64(len(ins.Bytes()))
}
