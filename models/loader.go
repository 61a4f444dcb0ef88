package models

import (
	"fmt"
)

type DebugInfo struct {
	PdbGuid string
	PdbAge  uint32
	PdbPath string
}

// Id formats the debug info the way symbol servers key PDBs: GUID followed by the age in hex.
func (d *DebugInfo) Id() string {
	if d == nil || d.PdbGuid == "" {
		return ""
	}
	return fmt.Sprintf("%s%X", d.PdbGuid, d.PdbAge)
}

type Loader interface {
	Arch() string
	Bits() int
	Base() uint64
	Entry() uint64
	Symbols() (Symbols, error)
	Segments() ([]*Segment, error)
	DebugInfo() *DebugInfo
}
