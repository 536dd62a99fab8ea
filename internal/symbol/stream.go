// Package symbol loads the symbol tables emitted alongside an optimized
// Android build: the class rename map, the position (line-number) map, and
// the optional instruction-offset debug tables. All tables are immutable
// after load and safe to share across readers.
package symbol

import (
	"encoding/binary"
	"errors"
)

var (
	ErrTableEOF   = errors.New("symbol: unexpected end of table data")
	ErrTableMagic = errors.New("symbol: bad table magic")
)

// stream reads little-endian table data from a byte slice.
type stream struct {
	data []byte
	pos  int
}

func newStream(data []byte) *stream {
	return &stream{data: data}
}

func (s *stream) readUint16() (uint16, error) {
	if s.pos+2 > len(s.data) {
		return 0, ErrTableEOF
	}
	v := binary.LittleEndian.Uint16(s.data[s.pos:])
	s.pos += 2
	return v, nil
}

func (s *stream) readUint32() (uint32, error) {
	if s.pos+4 > len(s.data) {
		return 0, ErrTableEOF
	}
	v := binary.LittleEndian.Uint32(s.data[s.pos:])
	s.pos += 4
	return v, nil
}

func (s *stream) readUint64() (uint64, error) {
	if s.pos+8 > len(s.data) {
		return 0, ErrTableEOF
	}
	v := binary.LittleEndian.Uint64(s.data[s.pos:])
	s.pos += 8
	return v, nil
}

// readString reads n bytes as a string.
func (s *stream) readString(n int) (string, error) {
	if n < 0 || s.pos+n > len(s.data) {
		return "", ErrTableEOF
	}
	str := string(s.data[s.pos : s.pos+n])
	s.pos += n
	return str, nil
}

// expectHeader consumes and checks a magic/version pair.
func (s *stream) expectHeader(magic, version uint32) error {
	m, err := s.readUint32()
	if err != nil {
		return err
	}
	v, err := s.readUint32()
	if err != nil {
		return err
	}
	if m != magic || v != version {
		return ErrTableMagic
	}
	return nil
}
