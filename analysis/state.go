package analysis

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/models"
)

func hex(addr uint64) string {
	return fmt.Sprintf("%#x", addr)
}

// RegState is the register file captured when emulation reached Addr.
type RegState struct {
	Addr uint64
	Regs []models.RegVal
}

func (r *RegState) Get(name string) (uint64, error) {
	for _, reg := range r.Regs {
		if reg.Name == name {
			return reg.Val, nil
		}
	}
	return 0, errors.Errorf("register %s not captured", name)
}

func (r *RegState) String() string {
	parts := make([]string, len(r.Regs))
	for i, reg := range r.Regs {
		parts[i] = fmt.Sprintf("%s=%#x", reg.Name, reg.Val)
	}
	return fmt.Sprintf("@%#x %s", r.Addr, strings.Join(parts, " "))
}
