package cfb

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildSynthetic assembles a minimal, valid CFB blob by hand: one FAT
// sector, one directory sector (root + a "FileHeader" stream entry) and
// enough data sectors to hold streamData. No mini-stream is used, so
// streamData must be at least miniCutoff (4096) bytes.
func buildSynthetic(t *testing.T, streamData []byte) []byte {
	t.Helper()
	if len(streamData) < 4096 {
		t.Fatalf("test fixture requires streamData >= 4096 bytes, got %d", len(streamData))
	}

	const sectorSize = 512
	numDataSectors := (len(streamData) + sectorSize - 1) / sectorSize
	// sector 0: FAT, sector 1: directory, sectors 2..: stream data
	totalSectors := 2 + numDataSectors

	buf := make([]byte, headerSize+totalSectors*sectorSize)

	copy(buf[0:8], Magic[:])
	binary.LittleEndian.PutUint16(buf[offByteOrder:], 0xFFFE)
	binary.LittleEndian.PutUint16(buf[offSectorShift:], 9)  // 512
	binary.LittleEndian.PutUint16(buf[offMiniSectorShift:], 6) // 64
	binary.LittleEndian.PutUint32(buf[offNumFATSectors:], 1)
	binary.LittleEndian.PutUint32(buf[offDirStartSector:], 1)
	binary.LittleEndian.PutUint32(buf[offMiniStreamCutoff:], 4096)
	binary.LittleEndian.PutUint32(buf[offMiniFATStart:], secENDOFCHAIN)
	binary.LittleEndian.PutUint32(buf[offNumMiniFATSect:], 0)
	binary.LittleEndian.PutUint32(buf[offDIFATStart:], secENDOFCHAIN)
	binary.LittleEndian.PutUint32(buf[offNumDIFATSect:], 0)
	// embedded DIFAT entry 0 names FAT sector 0; the rest are free.
	binary.LittleEndian.PutUint32(buf[offEmbeddedDIFAT:], 0)
	for i := 1; i < numEmbeddedDIFAT; i++ {
		binary.LittleEndian.PutUint32(buf[offEmbeddedDIFAT+i*4:], secFREESECT)
	}

	sectorAt := func(n int) []byte {
		start := headerSize + n*sectorSize
		return buf[start : start+sectorSize]
	}

	// Sector 0: the FAT itself.
	fatSector := sectorAt(0)
	binary.LittleEndian.PutUint32(fatSector[0*4:], secFATSECT) // sector 0 is a FAT sector
	binary.LittleEndian.PutUint32(fatSector[1*4:], secENDOFCHAIN) // directory is one sector
	for i := 0; i < numDataSectors; i++ {
		secNum := 2 + i
		entryOff := secNum * 4
		if i == numDataSectors-1 {
			binary.LittleEndian.PutUint32(fatSector[entryOff:], secENDOFCHAIN)
		} else {
			binary.LittleEndian.PutUint32(fatSector[entryOff:], uint32(secNum+1))
		}
	}
	for i := 2 + numDataSectors; i < sectorSize/4; i++ {
		binary.LittleEndian.PutUint32(fatSector[i*4:], secFREESECT)
	}

	// Sector 1: directory, 4 entries of 128 bytes each.
	dirSector := sectorAt(1)
	writeDirEntry(dirSector[0*dirEntrySize:], "Root Entry", objTypeRoot, 0, 0)
	writeDirEntry(dirSector[1*dirEntrySize:], "FileHeader", objTypeStream, 2, uint64(len(streamData)))
	// remaining two entries default to objectType 0 (empty), already zeroed.

	// Sectors 2..: stream data.
	remaining := streamData
	for i := 0; i < numDataSectors; i++ {
		dst := sectorAt(2 + i)
		n := copy(dst, remaining)
		remaining = remaining[n:]
	}

	return buf
}

func writeDirEntry(dst []byte, name string, objType byte, startSector uint32, size uint64) {
	nameUTF16 := utf16Encode(name)
	copy(dst[:len(nameUTF16)], nameUTF16)
	binary.LittleEndian.PutUint16(dst[dirOffNameLen:], uint16(len(nameUTF16)+2)) // include null terminator
	dst[dirOffObjectType] = objType
	binary.LittleEndian.PutUint32(dst[dirOffStartSector:], startSector)
	binary.LittleEndian.PutUint64(dst[dirOffStreamSize:], size)
}

func utf16Encode(s string) []byte {
	var out []byte
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}

func TestOpenAndReadStream(t *testing.T) {
	want := bytes.Repeat([]byte("ABCDEFGH"), 600) // 4800 bytes
	blob := buildSynthetic(t, want)

	r, err := Open(blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	got, err := r.ReadStream("fileheader") // case-insensitive
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("stream content mismatch: got %d bytes, want %d bytes", len(got), len(want))
	}
}

func TestListStreams(t *testing.T) {
	blob := buildSynthetic(t, bytes.Repeat([]byte{0xAA}, 4096))
	r, err := Open(blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	names := r.ListStreams()
	if len(names) != 1 || names[0] != "FileHeader" {
		t.Fatalf("ListStreams() = %v, want [FileHeader]", names)
	}
}

func TestReadStreamMissing(t *testing.T) {
	blob := buildSynthetic(t, bytes.Repeat([]byte{0}, 4096))
	r, err := Open(blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := r.ReadStream("NoSuchStream"); err == nil {
		t.Fatalf("expected error for missing stream")
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	blob := buildSynthetic(t, bytes.Repeat([]byte{0}, 4096))
	blob[0] = 0x00
	if _, err := Open(blob); err == nil {
		t.Fatalf("expected error for bad magic")
	}
}

func TestOpenRejectsBadByteOrder(t *testing.T) {
	blob := buildSynthetic(t, bytes.Repeat([]byte{0}, 4096))
	binary.LittleEndian.PutUint16(blob[offByteOrder:], 0x1234)
	if _, err := Open(blob); err == nil {
		t.Fatalf("expected error for bad byte-order marker")
	}
}

func TestOpenRejectsShortFile(t *testing.T) {
	if _, err := Open(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for too-short file")
	}
}
