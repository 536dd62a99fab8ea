package symbol

import (
	"bytes"
	"encoding/binary"
)

// Binary table builders shared by the loader tests.

func putU16(b *bytes.Buffer, v uint16) { binary.Write(b, binary.LittleEndian, v) }
func putU32(b *bytes.Buffer, v uint32) { binary.Write(b, binary.LittleEndian, v) }
func putU64(b *bytes.Buffer, v uint64) { binary.Write(b, binary.LittleEndian, v) }

type testPosition struct {
	fileID, line, parent uint32
}

func buildPositionMap(files []string, entries []testPosition) []byte {
	var b bytes.Buffer
	putU32(&b, positionMapMagic)
	putU32(&b, positionMapVersion)
	putU32(&b, uint32(len(files)))
	for _, f := range files {
		putU32(&b, uint32(len(f)))
		b.WriteString(f)
	}
	putU32(&b, uint32(len(entries)))
	for _, e := range entries {
		putU32(&b, e.fileID)
		putU32(&b, e.line)
		putU32(&b, e.parent)
	}
	return b.Bytes()
}

type testMethodLines struct {
	id      uint64
	entries [][2]uint32 // raw, line
}

func buildDebugLineMap(methods []testMethodLines) []byte {
	var b bytes.Buffer
	putU32(&b, debugLineMapMagic)
	putU32(&b, debugLineMapVersion)
	putU32(&b, uint32(len(methods)))
	for _, m := range methods {
		putU64(&b, m.id)
		putU32(&b, uint32(len(m.entries)))
		for _, e := range m.entries {
			putU32(&b, e[0])
			putU32(&b, e[1])
		}
	}
	return b.Bytes()
}

type testIODIEntry struct {
	name string
	id   uint64
}

func buildIODIMetadata(entries []testIODIEntry) []byte {
	var b bytes.Buffer
	putU32(&b, iodiMagic)
	putU32(&b, iodiVersion)
	putU32(&b, uint32(len(entries)))
	putU32(&b, 0) // reserved
	for _, e := range entries {
		putU16(&b, uint16(len(e.name)))
		putU64(&b, e.id)
		b.WriteString(e.name)
	}
	return b.Bytes()
}
