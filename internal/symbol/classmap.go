package symbol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ClassMap maps renamed fully qualified class names back to their
// originals. Names use dot-separated form on both sides.
type ClassMap struct {
	byRenamed map[string]string
}

// ParseClassMap reads a rename map in the mapping-file format: class
// entries are unindented `original -> renamed:` lines. Indented member
// lines and anything else are skipped.
func ParseClassMap(r io.Reader) (*ClassMap, error) {
	m := &ClassMap{byRenamed: make(map[string]string)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		original, renamed, ok := strings.Cut(line, " -> ")
		if !ok {
			continue
		}
		renamed = strings.TrimSuffix(strings.TrimSpace(renamed), ":")
		if renamed == "" || original == "" {
			continue
		}
		m.byRenamed[renamed] = original
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("symbol: read class map: %w", err)
	}
	return m, nil
}

// LoadClassMap parses the rename map at path.
func LoadClassMap(path string) (*ClassMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("symbol: open class map: %w", err)
	}
	defer f.Close()
	return ParseClassMap(f)
}

// LookupClass resolves a renamed dotted class name to its original name.
func (m *ClassMap) LookupClass(renamed string) (string, bool) {
	original, ok := m.byRenamed[renamed]
	return original, ok
}

// Len returns the number of class entries.
func (m *ClassMap) Len() int { return len(m.byRenamed) }
