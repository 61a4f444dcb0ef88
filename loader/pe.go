package loader

import (
	"bytes"
	"io"

	"github.com/Binject/debug/pe"
	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/models"
	"github.com/lunixbochs/smkm/models/cpu"
)

var machineMap = map[uint16]struct {
	arch string
	bits int
}{
	pe.IMAGE_FILE_MACHINE_I386:  {"x86", 32},
	pe.IMAGE_FILE_MACHINE_AMD64: {"x86_64", 64},
}

// section characteristics
const (
	scnMemExecute = 0x20000000
	scnMemRead    = 0x40000000
	scnMemWrite   = 0x80000000
)

const dirEntryDebug = 6

var peMagic = []byte{'M', 'Z'}

func MatchPE(r io.ReaderAt) bool {
	return bytes.Equal(getMagic(r), peMagic)
}

type PELoader struct {
	LoaderHeader
	file     *pe.File
	segments []*models.Segment
}

func NewPELoader(r io.ReaderAt) (*PELoader, error) {
	file, err := pe.NewFile(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing PE")
	}
	machine, ok := machineMap[file.FileHeader.Machine]
	if !ok {
		return nil, errors.Errorf("unsupported machine: %#x", file.FileHeader.Machine)
	}
	var base, entry uint64
	var debugDir pe.DataDirectory
	switch oh := file.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		base, entry = uint64(oh.ImageBase), uint64(oh.AddressOfEntryPoint)
		if oh.NumberOfRvaAndSizes > dirEntryDebug {
			debugDir = oh.DataDirectory[dirEntryDebug]
		}
	case *pe.OptionalHeader64:
		base, entry = oh.ImageBase, uint64(oh.AddressOfEntryPoint)
		if oh.NumberOfRvaAndSizes > dirEntryDebug {
			debugDir = oh.DataDirectory[dirEntryDebug]
		}
	default:
		return nil, errors.New("PE has no optional header")
	}
	l := &PELoader{
		LoaderHeader: LoaderHeader{
			arch:  machine.arch,
			bits:  machine.bits,
			base:  base,
			entry: base + entry,
		},
		file: file,
	}
	if err := l.loadSegments(); err != nil {
		return nil, err
	}
	l.syms = l.coffSymbols()
	if debugDir.Size > 0 {
		// a broken debug directory only costs us symbol file validation
		if data, err := l.ReadRVA(debugDir.VirtualAddress, debugDir.Size); err == nil {
			l.debug, _ = ParseDebugDirectory(data, l.ReadRVA)
		}
	}
	return l, nil
}

func (p *PELoader) loadSegments() error {
	for _, sec := range p.file.Sections {
		data, err := sec.Data()
		if err != nil {
			return errors.Wrapf(err, "reading section %s", sec.Name)
		}
		size := sec.VirtualSize
		if size == 0 {
			size = sec.Size
		}
		if uint32(len(data)) > size {
			data = data[:size]
		} else if uint32(len(data)) < size {
			data = append(data, make([]byte, size-uint32(len(data)))...)
		}
		prot := 0
		if sec.Characteristics&scnMemRead != 0 {
			prot |= cpu.PROT_READ
		}
		if sec.Characteristics&scnMemWrite != 0 {
			prot |= cpu.PROT_WRITE
		}
		if sec.Characteristics&scnMemExecute != 0 {
			prot |= cpu.PROT_EXEC
		}
		p.segments = append(p.segments, &models.Segment{
			Name: sec.Name,
			Addr: p.base + uint64(sec.VirtualAddress),
			Data: data,
			Prot: prot,
		})
	}
	return nil
}

// only function symbols defined in a section are useful; kernel images rarely carry any
func (p *PELoader) coffSymbols() models.Symbols {
	var syms models.Symbols
	for _, s := range p.file.Symbols {
		if s.SectionNumber <= 0 || int(s.SectionNumber) > len(p.file.Sections) {
			continue
		}
		sec := p.file.Sections[s.SectionNumber-1]
		syms = append(syms, models.Symbol{
			Name:  s.Name,
			Start: p.base + uint64(sec.VirtualAddress) + uint64(s.Value),
		})
	}
	return syms
}

func (p *PELoader) Segments() ([]*models.Segment, error) {
	return p.segments, nil
}

// ReadRVA reads size bytes at an image-relative address from the mapped sections.
func (p *PELoader) ReadRVA(rva, size uint32) ([]byte, error) {
	addr := p.base + uint64(rva)
	for _, seg := range p.segments {
		if seg.Contains(addr) {
			off := addr - seg.Addr
			if off+uint64(size) > uint64(len(seg.Data)) {
				break
			}
			return seg.Data[off : off+uint64(size)], nil
		}
	}
	return nil, errors.Errorf("rva %#x+%#x not in any section", rva, size)
}
