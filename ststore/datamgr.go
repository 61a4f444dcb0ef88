package ststore

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/models"
)

const (
	fnStStart   = "?StStart"
	fnStDmStart = "StDmStart"
)

// StDmStart takes the ST_DATA_MGR as its second argument. Disassembly from Windows 10 1809 x86:
//
//	StStart+27A     lea     edx, [esi+38h]
//	StStart+27D     mov     ecx, esi
//	StStart+27F     call    ?StDmStart@?$ST_STORE@USM_TRAITS@@@@SGJPAU1@PAU_ST_DATA_MGR@1@...
//
// so emulating StStart up to the call leaves the address in the second argument register.
func dataMgr(h Host, reg string) (uint64, error) {
	site, err := h.LocateCallInFn(fnStStart, fnStDmStart)
	if err != nil {
		return 0, err
	}
	if _, err := h.ArgumentWriter(site, reg); err != nil {
		return 0, err
	}
	state, err := h.Iterate(site)
	if err != nil {
		return 0, err
	}
	addr, err := state.Get(reg)
	if err != nil {
		return 0, errors.Wrap(models.ErrEmulation, err.Error())
	}
	if addr == 0 {
		return 0, errors.Wrapf(models.ErrEmulation, "%s is null at %#x", reg, site.End)
	}
	return addr, nil
}

type x86Locator struct{}

func (x86Locator) StDataMgr(h Host) (uint64, error) {
	return dataMgr(h, "edx")
}

type x64Locator struct{}

func (x64Locator) StDataMgr(h Host) (uint64, error) {
	return dataMgr(h, "rdx")
}
