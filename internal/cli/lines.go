package cli

import "strings"

// classLookup resolves a renamed dotted class name to its original name.
type classLookup interface {
	LookupClass(renamed string) (string, bool)
}

// LinesSymbolicator handles newline-separated lists of `.class` entries,
// e.g. the output of unzipping a dex container. Each mapped entry is
// replaced by its original dotted class name; everything else passes
// through unchanged.
type LinesSymbolicator struct {
	classes classLookup
}

// NewLinesSymbolicator returns a class-list symbolicator.
func NewLinesSymbolicator(classes classLookup) *LinesSymbolicator {
	return &LinesSymbolicator{classes: classes}
}

// Symbolicate transforms one line, trailing newline included.
func (s *LinesSymbolicator) Symbolicate(line string) (string, bool) {
	name := strings.TrimRight(line, "\n")
	name, ok := strings.CutSuffix(name, ".class")
	if !ok {
		return line, true
	}
	name = strings.ReplaceAll(name, "/", ".")
	if original, found := s.classes.LookupClass(name); found {
		return original + "\n", true
	}
	return line, true
}
