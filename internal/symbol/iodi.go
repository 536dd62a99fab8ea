package symbol

import (
	"fmt"
	"os"
)

// IODIMetadata maps qualified method names (`class.method`, dotted) to
// the numeric method ids used by the instruction-offset debug encoding.
// Only collision-free names are mapped: a qualified name shared by
// several methods cannot identify one of them, so those entries are
// dropped at load time and their methods stay unsymbolicated.
type IODIMetadata struct {
	collisionFree map[string]int64
	total         int
}

const (
	iodiMagic   = 0xfaceb002
	iodiVersion = 1
)

// ParseIODIMetadata decodes the binary metadata table.
//
// Layout: magic u32, version u32, entry count u32, reserved u32; entries
// are (name length u16, method id u64, name bytes).
func ParseIODIMetadata(data []byte) (*IODIMetadata, error) {
	s := newStream(data)
	if err := s.expectHeader(iodiMagic, iodiVersion); err != nil {
		return nil, fmt.Errorf("symbol: iodi metadata: %w", err)
	}
	count, err := s.readUint32()
	if err != nil {
		return nil, fmt.Errorf("symbol: iodi metadata: %w", err)
	}
	if _, err := s.readUint32(); err != nil { // reserved
		return nil, fmt.Errorf("symbol: iodi metadata: %w", err)
	}

	ids := make(map[string]int64, count)
	seen := make(map[string]int, count)
	for i := uint32(0); i < count; i++ {
		nameLen, err := s.readUint16()
		if err != nil {
			return nil, fmt.Errorf("symbol: iodi metadata: %w", err)
		}
		id, err := s.readUint64()
		if err != nil {
			return nil, fmt.Errorf("symbol: iodi metadata: %w", err)
		}
		name, err := s.readString(int(nameLen))
		if err != nil {
			return nil, fmt.Errorf("symbol: iodi metadata: %w", err)
		}
		seen[name]++
		ids[name] = int64(id)
	}

	m := &IODIMetadata{collisionFree: make(map[string]int64, len(ids)), total: int(count)}
	for name, n := range seen {
		if n == 1 {
			m.collisionFree[name] = ids[name]
		}
	}
	return m, nil
}

// LoadIODIMetadata reads and decodes the table at path.
func LoadIODIMetadata(path string) (*IODIMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("symbol: open iodi metadata: %w", err)
	}
	return ParseIODIMetadata(data)
}

// MethodID resolves a qualified method name to its id. Names dropped for
// collisions report no mapping.
func (m *IODIMetadata) MethodID(qualified string) (int64, bool) {
	id, ok := m.collisionFree[qualified]
	return id, ok
}

// CollisionFree returns the number of uniquely named methods.
func (m *IODIMetadata) CollisionFree() int { return len(m.collisionFree) }

// Total returns the number of entries in the table, collisions included.
func (m *IODIMetadata) Total() int { return m.total }
