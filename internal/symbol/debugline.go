package symbol

import (
	"fmt"
	"os"
	"sort"
)

// DebugLineMap recovers true debug lines from the instruction-offset
// line encoding. Keyed by method id; within a method, entries map the
// raw encoded line (an instruction offset) to the real source line.
type DebugLineMap struct {
	methods map[uint64][]debugLineEntry
}

type debugLineEntry struct {
	raw  uint32
	line uint32
}

const (
	debugLineMapMagic   = 0xfaceb001
	debugLineMapVersion = 1
)

// ParseDebugLineMap decodes the binary debug-line map.
//
// Layout: magic u32, version u32, method count u32; per method an id u64,
// an entry count u32 and (raw u32, line u32) pairs with raw ascending.
func ParseDebugLineMap(data []byte) (*DebugLineMap, error) {
	s := newStream(data)
	if err := s.expectHeader(debugLineMapMagic, debugLineMapVersion); err != nil {
		return nil, fmt.Errorf("symbol: debug line map: %w", err)
	}

	nmethods, err := s.readUint32()
	if err != nil {
		return nil, fmt.Errorf("symbol: debug line map: %w", err)
	}
	m := &DebugLineMap{methods: make(map[uint64][]debugLineEntry, nmethods)}
	for i := uint32(0); i < nmethods; i++ {
		id, err := s.readUint64()
		if err != nil {
			return nil, fmt.Errorf("symbol: debug line map: %w", err)
		}
		nentries, err := s.readUint32()
		if err != nil {
			return nil, fmt.Errorf("symbol: debug line map: %w", err)
		}
		entries := make([]debugLineEntry, 0, nentries)
		for j := uint32(0); j < nentries; j++ {
			var e debugLineEntry
			if e.raw, err = s.readUint32(); err != nil {
				return nil, fmt.Errorf("symbol: debug line map: %w", err)
			}
			if e.line, err = s.readUint32(); err != nil {
				return nil, fmt.Errorf("symbol: debug line map: %w", err)
			}
			entries = append(entries, e)
		}
		// Writers emit raw ascending; sort anyway so lookup can rely on it.
		sort.Slice(entries, func(a, b int) bool { return entries[a].raw < entries[b].raw })
		m.methods[id] = entries
	}
	return m, nil
}

// LoadDebugLineMap reads and decodes the map at path.
func LoadDebugLineMap(path string) (*DebugLineMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("symbol: open debug line map: %w", err)
	}
	return ParseDebugLineMap(data)
}

// DebugLine resolves (method id, raw encoded line) to the true debug
// line. Raw values between entries floor to the previous entry, since
// the table only records offsets where the line changes. Unknown methods
// or raw values before the first entry report no mapping.
func (m *DebugLineMap) DebugLine(methodID int64, raw int32) (int32, bool) {
	entries, ok := m.methods[uint64(methodID)]
	if !ok || raw < 0 {
		return 0, false
	}
	i := sort.Search(len(entries), func(i int) bool { return entries[i].raw > uint32(raw) })
	if i == 0 {
		return 0, false
	}
	return int32(entries[i-1].line), true
}

// Len returns the number of methods with line entries.
func (m *DebugLineMap) Len() int { return len(m.methods) }
