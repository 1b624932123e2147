// Package cfb implements a read-only decoder for the Microsoft Compound
// File Binary format (OLE/CFB) — the container Altium uses for its
// binary .SchDoc schematic documents (spec §4.1, C1).
//
// The reader loads the whole file into memory and reconstructs the FAT,
// DIFAT, mini-FAT and directory chains well enough to extract named
// streams; it does not support writing or in-place editing, neither of
// which any SPEC_FULL component needs.
//
// Grounded on other_examples/richardlehane-mscfb/header.go (header field
// layout and DIFAT-chain reconstruction) and
// other_examples/TalentFormula-msdoc/ole2-reader.go (directory-entry
// parsing and stream extraction), generalized to also walk the mini-FAT
// for small streams as spec §4.1 requires.
package cfb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Magic is the 8-byte signature every CFB file begins with.
var Magic = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

const (
	headerSize = 512

	offMinorVersion     = 24
	offMajorVersion     = 26
	offByteOrder        = 28
	offSectorShift      = 30
	offMiniSectorShift  = 32
	offNumDirSectors    = 40
	offNumFATSectors    = 44
	offDirStartSector   = 48
	offMiniStreamCutoff = 56
	offMiniFATStart     = 60
	offNumMiniFATSect   = 64
	offDIFATStart       = 68
	offNumDIFATSect     = 72
	offEmbeddedDIFAT    = 76

	numEmbeddedDIFAT = 109

	// Sentinel sector/chain values (ECMA-CFB §2.1 FAT markers).
	secFREESECT = 0xFFFFFFFF
	secENDOFCHAIN = 0xFFFFFFFE
	secFATSECT    = 0xFFFFFFFD
	secDIFSECT    = 0xFFFFFFFC

	// maxChainLen guards against cyclic or corrupt chains (spec §5:
	// "bounded by the FAT-chain safety cap (~10^6 sectors)").
	maxChainLen = 1_000_000

	dirEntrySize = 128

	dirOffNameLen       = 64
	dirOffObjectType    = 66
	dirOffStartSector   = 116
	dirOffStreamSize    = 120

	objTypeEmpty   = 0
	objTypeStorage = 1
	objTypeStream  = 2
	objTypeRoot    = 5
)

// Reader provides random-access stream extraction from a CFB container.
type Reader struct {
	data []byte

	sectorSize     int
	miniSectorSize int
	miniCutoff     int

	fat     []uint32
	miniFAT []uint32

	dir       []dirEntry
	miniRoot  dirEntry // the root storage entry, whose stream is the mini-stream
	haveMini  bool
}

type dirEntry struct {
	name           string
	objectType     byte
	startSector    uint32
	streamSize     uint64
}

// Open parses the CFB structure of data, the whole file already held in
// memory (OpenFile reads it from a path).
func Open(data []byte) (*Reader, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("cfb: file too short to hold a header (%d bytes)", len(data))
	}
	if !bytes.Equal(data[:8], Magic[:]) {
		return nil, fmt.Errorf("cfb: bad magic %x, not a compound file", data[:8])
	}
	if byteOrder := binary.LittleEndian.Uint16(data[offByteOrder : offByteOrder+2]); byteOrder != 0xFFFE {
		return nil, fmt.Errorf("cfb: unexpected byte-order marker %#04x", byteOrder)
	}

	sectorShift := binary.LittleEndian.Uint16(data[offSectorShift : offSectorShift+2])
	miniSectorShift := binary.LittleEndian.Uint16(data[offMiniSectorShift : offMiniSectorShift+2])

	r := &Reader{
		data:           data,
		sectorSize:     1 << sectorShift,
		miniSectorSize: 1 << miniSectorShift,
		miniCutoff:     int(binary.LittleEndian.Uint32(data[offMiniStreamCutoff : offMiniStreamCutoff+4])),
	}

	if err := r.buildFAT(); err != nil {
		return nil, err
	}
	if err := r.buildDirectory(); err != nil {
		return nil, err
	}
	if err := r.buildMiniFAT(); err != nil {
		return nil, err
	}

	return r, nil
}

// sectorOffset returns the file offset of sector index n. Sector 0 is
// the first sector after the 512-byte header.
func (r *Reader) sectorOffset(n uint32) int64 {
	return int64(headerSize) + int64(n)*int64(r.sectorSize)
}

func (r *Reader) readSector(n uint32) ([]byte, error) {
	start := r.sectorOffset(n)
	end := start + int64(r.sectorSize)
	if start < 0 || end > int64(len(r.data)) {
		return nil, fmt.Errorf("cfb: sector %d out of range", n)
	}
	return r.data[start:end], nil
}

// buildFAT reconstructs the FAT by concatenating sectors named in the
// embedded DIFAT, then following the DIFAT sector chain (spec §4.1).
func (r *Reader) buildFAT() error {
	numFATSectors := binary.LittleEndian.Uint32(r.data[offNumFATSectors : offNumFATSectors+4])
	difatStart := binary.LittleEndian.Uint32(r.data[offDIFATStart : offDIFATStart+4])
	numDIFATSectors := binary.LittleEndian.Uint32(r.data[offNumDIFATSect : offNumDIFATSect+4])

	fatSectorNums := make([]uint32, 0, numEmbeddedDIFAT)
	for i := 0; i < numEmbeddedDIFAT; i++ {
		off := offEmbeddedDIFAT + i*4
		v := binary.LittleEndian.Uint32(r.data[off : off+4])
		if v == secFREESECT {
			continue
		}
		fatSectorNums = append(fatSectorNums, v)
	}

	entriesPerDIFATSector := r.sectorSize/4 - 1
	sector := difatStart
	for i := uint32(0); i < numDIFATSectors; i++ {
		if sector == secENDOFCHAIN || sector == secFREESECT {
			break
		}
		if i >= maxChainLen {
			return fmt.Errorf("cfb: DIFAT chain exceeds safety cap")
		}
		buf, err := r.readSector(sector)
		if err != nil {
			return fmt.Errorf("cfb: reading DIFAT sector: %w", err)
		}
		for j := 0; j < entriesPerDIFATSector; j++ {
			v := binary.LittleEndian.Uint32(buf[j*4 : j*4+4])
			if v != secFREESECT {
				fatSectorNums = append(fatSectorNums, v)
			}
		}
		sector = binary.LittleEndian.Uint32(buf[len(buf)-4:])
	}

	if uint32(len(fatSectorNums)) > numFATSectors {
		fatSectorNums = fatSectorNums[:numFATSectors]
	}

	fat := make([]uint32, 0, len(fatSectorNums)*r.sectorSize/4)
	for _, secNum := range fatSectorNums {
		buf, err := r.readSector(secNum)
		if err != nil {
			return fmt.Errorf("cfb: reading FAT sector %d: %w", secNum, err)
		}
		for off := 0; off < len(buf); off += 4 {
			fat = append(fat, binary.LittleEndian.Uint32(buf[off:off+4]))
		}
	}
	r.fat = fat
	return nil
}

// chain follows the FAT starting at start until ENDOFCHAIN, returning
// the visited sector numbers in order.
func (r *Reader) chain(fat []uint32, start uint32) ([]uint32, error) {
	var sectors []uint32
	seen := make(map[uint32]bool)
	sector := start
	for sector != secENDOFCHAIN && sector != secFREESECT {
		switch sector {
		case secFATSECT, secDIFSECT:
			return sectors, nil
		}
		if seen[sector] {
			return nil, fmt.Errorf("cfb: cyclic sector chain at %d", sector)
		}
		if len(sectors) >= maxChainLen {
			return nil, fmt.Errorf("cfb: sector chain exceeds safety cap of %d", maxChainLen)
		}
		seen[sector] = true
		sectors = append(sectors, sector)
		if int(sector) >= len(fat) {
			return nil, fmt.Errorf("cfb: chain references sector %d beyond FAT length %d", sector, len(fat))
		}
		sector = fat[sector]
	}
	return sectors, nil
}

// buildDirectory walks the directory sector chain and parses every
// 128-byte entry.
func (r *Reader) buildDirectory() error {
	dirStart := binary.LittleEndian.Uint32(r.data[offDirStartSector : offDirStartSector+4])
	sectors, err := r.chain(r.fat, dirStart)
	if err != nil {
		return fmt.Errorf("cfb: directory chain: %w", err)
	}

	var raw []byte
	for _, s := range sectors {
		buf, err := r.readSector(s)
		if err != nil {
			return fmt.Errorf("cfb: reading directory sector %d: %w", s, err)
		}
		raw = append(raw, buf...)
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

	n := len(raw) / dirEntrySize
	r.dir = make([]dirEntry, 0, n)
	for i := 0; i < n; i++ {
		e := raw[i*dirEntrySize : (i+1)*dirEntrySize]
		objType := e[dirOffObjectType]
		if objType == objTypeEmpty {
			r.dir = append(r.dir, dirEntry{objectType: objType})
			continue
		}

		nameLen := int(binary.LittleEndian.Uint16(e[dirOffNameLen : dirOffNameLen+2]))
		if nameLen > 64 {
			nameLen = 64
		}
		rawName := e[:nameLen]
		if nameLen >= 2 {
			rawName = e[:nameLen-2] // drop the UTF-16 null terminator
		}
		name, err := decoder.Bytes(rawName)
		if err != nil {
			name = rawName // best-effort: keep going on odd encodings
		}

		entry := dirEntry{
			name:        string(name),
			objectType:  objType,
			startSector: binary.LittleEndian.Uint32(e[dirOffStartSector : dirOffStartSector+4]),
			streamSize:  binary.LittleEndian.Uint64(e[dirOffStreamSize : dirOffStreamSize+8]),
		}
		r.dir = append(r.dir, entry)

		if objType == objTypeRoot {
			r.miniRoot = entry
			r.haveMini = true
		}
	}
	return nil
}

// buildMiniFAT walks the mini-FAT sector chain, if the header names one.
func (r *Reader) buildMiniFAT() error {
	miniFATStart := binary.LittleEndian.Uint32(r.data[offMiniFATStart : offMiniFATStart+4])
	numMiniFATSectors := binary.LittleEndian.Uint32(r.data[offNumMiniFATSect : offNumMiniFATSect+4])
	if numMiniFATSectors == 0 || miniFATStart == secENDOFCHAIN {
		return nil
	}

	sectors, err := r.chain(r.fat, miniFATStart)
	if err != nil {
		return fmt.Errorf("cfb: mini-FAT chain: %w", err)
	}

	miniFAT := make([]uint32, 0, len(sectors)*r.sectorSize/4)
	for _, s := range sectors {
		buf, err := r.readSector(s)
		if err != nil {
			return fmt.Errorf("cfb: reading mini-FAT sector %d: %w", s, err)
		}
		for off := 0; off < len(buf); off += 4 {
			miniFAT = append(miniFAT, binary.LittleEndian.Uint32(buf[off:off+4]))
		}
	}
	r.miniFAT = miniFAT
	return nil
}

// miniStreamData returns the full bytes of the mini-stream (the root
// entry's own stream, addressed through the ordinary FAT).
func (r *Reader) miniStreamData() ([]byte, error) {
	sectors, err := r.chain(r.fat, r.miniRoot.startSector)
	if err != nil {
		return nil, fmt.Errorf("cfb: mini-stream chain: %w", err)
	}
	var data []byte
	for _, s := range sectors {
		buf, err := r.readSector(s)
		if err != nil {
			return nil, err
		}
		data = append(data, buf...)
	}
	if uint64(len(data)) > r.miniRoot.streamSize {
		data = data[:r.miniRoot.streamSize]
	}
	return data, nil
}

// readMiniChain follows the mini-FAT starting at start, returning the
// raw bytes truncated to size.
func (r *Reader) readMiniChain(start uint32, size uint64) ([]byte, error) {
	miniData, err := r.miniStreamData()
	if err != nil {
		return nil, err
	}

	sectors, err := r.chain(r.miniFAT, start)
	if err != nil {
		return nil, fmt.Errorf("cfb: mini stream chain: %w", err)
	}

	var out []byte
	for _, s := range sectors {
		off := int(s) * r.miniSectorSize
		end := off + r.miniSectorSize
		if end > len(miniData) {
			end = len(miniData)
		}
		if off > len(miniData) {
			break
		}
		out = append(out, miniData[off:end]...)
	}
	if uint64(len(out)) > size {
		out = out[:size]
	}
	return out, nil
}

// ListStreams returns every stream name in the container.
func (r *Reader) ListStreams() []string {
	var names []string
	for _, e := range r.dir {
		if e.objectType == objTypeStream {
			names = append(names, e.name)
		}
	}
	return names
}

// ReadStream returns the raw bytes of the named stream. Matching is
// case-insensitive, per spec §4.1.
func (r *Reader) ReadStream(name string) ([]byte, error) {
	for _, e := range r.dir {
		if e.objectType != objTypeStream {
			continue
		}
		if !strings.EqualFold(e.name, name) {
			continue
		}
		if e.streamSize < uint64(r.miniCutoff) {
			if !r.haveMini {
				return nil, fmt.Errorf("cfb: stream %q is mini-sized but no mini-stream root exists", name)
			}
			return r.readMiniChain(e.startSector, e.streamSize)
		}
		sectors, err := r.chain(r.fat, e.startSector)
		if err != nil {
			return nil, fmt.Errorf("cfb: stream %q chain: %w", name, err)
		}
		var data []byte
		for _, s := range sectors {
			buf, rerr := r.readSector(s)
			if rerr != nil {
				return nil, rerr
			}
			data = append(data, buf...)
		}
		if uint64(len(data)) > e.streamSize {
			data = data[:e.streamSize]
		}
		return data, nil
	}
	return nil, fmt.Errorf("cfb: stream %q not found", name)
}
