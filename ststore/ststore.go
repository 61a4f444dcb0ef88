// Package ststore locates fields of the Windows 10 ST_STORE structure. ST_STORE is nested in
// SMKM_STORE and describes a single store; its nested ST_DATA_MGR correlates an SM_PAGE_KEY with
// a chunk key, from which a compressed page's location inside MemCompression.exe is derived.
package ststore

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lunixbochs/smkm/analysis"
	"github.com/lunixbochs/smkm/models"
)

const LoggerName = "ST_STORE"

// Host is what the locators need from an analyzed image. *analysis.Analysis implements it.
type Host interface {
	Bits() int
	LocateCallInFn(fn, callee string) (analysis.CallSite, error)
	ArgumentWriter(site analysis.CallSite, reg string) (models.Ins, error)
	Iterate(site analysis.CallSite) (*analysis.RegState, error)
}

type Profile int

const (
	X86 Profile = iota
	X64
)

func ProfileFor(bits int) (Profile, error) {
	switch bits {
	case 32:
		return X86, nil
	case 64:
		return X64, nil
	}
	return 0, errors.Errorf("no ST_STORE profile for %d-bit images", bits)
}

func (p Profile) String() string {
	if p == X64 {
		return "x64"
	}
	return "x86"
}

var _ Host = &analysis.Analysis{}

// one implementation per profile
type locator interface {
	StDataMgr(h Host) (uint64, error)
}

type StStore struct {
	host    Host
	profile Profile
	loc     locator
	log     *logrus.Entry
}

// New fixes the profile from the host's bit-width; every lookup made through the returned
// StStore uses it.
func New(host Host, log logrus.FieldLogger) (*StStore, error) {
	profile, err := ProfileFor(host.Bits())
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &StStore{
		host:    host,
		profile: profile,
		log:     log.WithFields(logrus.Fields{"logger": LoggerName, "arch": profile.String()}),
	}
	switch profile {
	case X86:
		s.loc = x86Locator{}
	case X64:
		s.loc = x64Locator{}
	}
	return s, nil
}

func (s *StStore) Profile() Profile {
	return s.profile
}

// StDataMgr returns the address of the ST_DATA_MGR nested in the emulated ST_STORE.
func (s *StStore) StDataMgr() (uint64, error) {
	return s.loc.StDataMgr(s.host)
}

// Dump logs every located field, and returns them by name.
func (s *StStore) Dump() (map[string]uint64, error) {
	dataMgr, err := s.StDataMgr()
	if err != nil {
		return nil, err
	}
	s.log.Infof("StDataMgr: %#x", dataMgr)
	return map[string]uint64{"StDataMgr": dataMgr}, nil
}
