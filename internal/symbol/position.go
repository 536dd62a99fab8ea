package symbol

import (
	"fmt"
	"os"
)

// Position is one original source location. Line is 1-based.
type Position struct {
	File string
	Line int32
}

// PositionMap recovers original source positions from renamed line
// numbers. Each entry chains to the position it was inlined into, so a
// single renamed line can expand to a stack of positions.
type PositionMap struct {
	files   []string
	entries []positionEntry
}

type positionEntry struct {
	fileID uint32
	line   uint32
	parent uint32 // 1-based index of the caller entry; 0 terminates
}

const (
	positionMapMagic   = 0xfaceb000
	positionMapVersion = 1
)

// ParsePositionMap decodes the binary line-number map.
//
// Layout, all little-endian: magic u32, version u32, string pool count
// u32 followed by (length u32, bytes) file names, entry count u32
// followed by (file u32, line u32, parent u32) triples.
func ParsePositionMap(data []byte) (*PositionMap, error) {
	s := newStream(data)
	if err := s.expectHeader(positionMapMagic, positionMapVersion); err != nil {
		return nil, fmt.Errorf("symbol: position map: %w", err)
	}

	nfiles, err := s.readUint32()
	if err != nil {
		return nil, fmt.Errorf("symbol: position map: %w", err)
	}
	m := &PositionMap{files: make([]string, 0, nfiles)}
	for i := uint32(0); i < nfiles; i++ {
		n, err := s.readUint32()
		if err != nil {
			return nil, fmt.Errorf("symbol: position map: %w", err)
		}
		name, err := s.readString(int(n))
		if err != nil {
			return nil, fmt.Errorf("symbol: position map: %w", err)
		}
		m.files = append(m.files, name)
	}

	nentries, err := s.readUint32()
	if err != nil {
		return nil, fmt.Errorf("symbol: position map: %w", err)
	}
	m.entries = make([]positionEntry, 0, nentries)
	for i := uint32(0); i < nentries; i++ {
		var e positionEntry
		if e.fileID, err = s.readUint32(); err != nil {
			return nil, fmt.Errorf("symbol: position map: %w", err)
		}
		if e.line, err = s.readUint32(); err != nil {
			return nil, fmt.Errorf("symbol: position map: %w", err)
		}
		if e.parent, err = s.readUint32(); err != nil {
			return nil, fmt.Errorf("symbol: position map: %w", err)
		}
		m.entries = append(m.entries, e)
	}
	return m, nil
}

// LoadPositionMap reads and decodes the map at path.
func LoadPositionMap(path string) (*PositionMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("symbol: open position map: %w", err)
	}
	return ParsePositionMap(data)
}

// Stack expands a zero-based renamed line number into its inline position
// stack, innermost first. An unknown line yields an empty stack.
func (m *PositionMap) Stack(line int32) []Position {
	var stack []Position
	idx := int(line)
	// The parent chain in a well-formed map is acyclic; cap the walk so a
	// corrupt map cannot loop.
	for steps := 0; steps <= len(m.entries); steps++ {
		if idx < 0 || idx >= len(m.entries) {
			break
		}
		e := m.entries[idx]
		file := "?"
		if int(e.fileID) < len(m.files) {
			file = m.files[e.fileID]
		}
		stack = append(stack, Position{File: file, Line: int32(e.line)})
		if e.parent == 0 {
			break
		}
		idx = int(e.parent) - 1
	}
	return stack
}
