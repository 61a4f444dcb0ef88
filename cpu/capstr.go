package cpu

import (
	"bytes"
	"sync"

	cs "github.com/lunixbochs/capstr"
	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/models"
)

type discacheEntry struct {
	mem []byte
	dis []models.Ins
}

type discache struct {
	sync.RWMutex
	cache map[uint64]*discacheEntry
}

func (d *discache) Get(addr uint64, mem []byte) *discacheEntry {
	d.RLock()
	defer d.RUnlock()
	if ent, ok := d.cache[addr]; ok && bytes.Equal(mem, ent.mem) {
		return ent
	}
	return nil
}

func (d *discache) Put(addr uint64, mem []byte, dis []models.Ins) {
	d.Lock()
	defer d.Unlock()
	if d.cache == nil {
		d.cache = make(map[uint64]*discacheEntry)
	}
	d.cache[addr] = &discacheEntry{mem: mem, dis: dis}
}

// Capstr disassembles with capstone. Function bodies get disassembled more than once
// (call site search, then block discovery), so results are cached by address and bytes.
type Capstr struct {
	Arch, Mode int

	cs *cs.Engine
	dc discache
}

func (c *Capstr) Open() error {
	engine, err := cs.New(c.Arch, c.Mode)
	if err != nil {
		return errors.Wrap(err, "cs.New() failed")
	}
	c.cs = engine
	return nil
}

func (c *Capstr) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	if c.cs == nil {
		if err := c.Open(); err != nil {
			return nil, err
		}
	}
	if ent := c.dc.Get(addr, mem); ent != nil {
		return ent.dis, nil
	}
	dis, err := c.cs.Dis(mem, addr, 0)
	if err != nil {
		return nil, errors.Wrap(err, "capstone disassembly failed")
	}
	ret := make([]models.Ins, len(dis))
	for i, v := range dis {
		ret[i] = v
	}
	c.dc.Put(addr, mem, ret)
	return ret, nil
}
