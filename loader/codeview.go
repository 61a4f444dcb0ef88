package loader

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/models"
)

const debugTypeCodeView = 2

// IMAGE_DEBUG_DIRECTORY
type debugDirectory struct {
	Characteristics  uint32
	TimeDateStamp    uint32
	MajorVersion     uint16
	MinorVersion     uint16
	Type             uint32
	SizeOfData       uint32
	AddressOfRawData uint32
	PointerToRawData uint32
}

const debugDirectorySize = 28

// CV_INFO_PDB70, minus the trailing NUL-terminated path
type rsdsHeader struct {
	Signature [4]byte
	Data1     uint32
	Data2     uint16
	Data3     uint16
	Data4     [8]byte
	Age       uint32
}

const rsdsHeaderSize = 24

var leOptions = &struc.Options{Order: binary.LittleEndian}

// ParseDebugDirectory walks the debug directory entries in data and decodes the first CodeView
// record. readRVA resolves each entry's raw data.
func ParseDebugDirectory(data []byte, readRVA func(rva, size uint32) ([]byte, error)) (*models.DebugInfo, error) {
	r := bytes.NewReader(data)
	for r.Len() >= debugDirectorySize {
		var dir debugDirectory
		if err := struc.UnpackWithOptions(r, &dir, leOptions); err != nil {
			return nil, errors.Wrap(err, "unpacking debug directory")
		}
		if dir.Type != debugTypeCodeView {
			continue
		}
		raw, err := readRVA(dir.AddressOfRawData, dir.SizeOfData)
		if err != nil {
			return nil, err
		}
		return ParseCodeView(raw)
	}
	return nil, errors.New("no CodeView debug entry")
}

func ParseCodeView(raw []byte) (*models.DebugInfo, error) {
	if len(raw) < rsdsHeaderSize {
		return nil, errors.Errorf("CodeView record too short: %d bytes", len(raw))
	}
	var hdr rsdsHeader
	if err := struc.UnpackWithOptions(bytes.NewReader(raw), &hdr, leOptions); err != nil {
		return nil, errors.Wrap(err, "unpacking CodeView record")
	}
	if string(hdr.Signature[:]) != "RSDS" {
		return nil, errors.Errorf("unsupported CodeView signature: %q", hdr.Signature[:])
	}
	path := raw[rsdsHeaderSize:]
	if i := bytes.IndexByte(path, 0); i >= 0 {
		path = path[:i]
	}
	return &models.DebugInfo{
		PdbGuid: fmt.Sprintf("%08X%04X%04X%X", hdr.Data1, hdr.Data2, hdr.Data3, hdr.Data4[:]),
		PdbAge:  hdr.Age,
		PdbPath: string(path),
	}, nil
}
