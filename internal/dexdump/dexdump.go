// Package dexdump rewrites dexdump disassembly back into original source
// terms: renamed class descriptors become their original names and
// bytecode line annotations expand into their inline position stacks.
//
// The symbolicator is a single-pass line filter. It never fails a line;
// anything it cannot resolve passes through unchanged.
package dexdump

import (
	"fmt"
	"strings"

	"github.com/MedRedha/redex/internal/symbol"
)

// ClassLookup resolves a renamed dotted class name to its original name.
type ClassLookup interface {
	LookupClass(renamed string) (string, bool)
}

// PositionResolver expands a zero-based renamed line number into its
// inline position stack. An empty stack means no mapping.
type PositionResolver interface {
	Stack(line int32) []symbol.Position
}

// MethodIDLookup resolves a qualified method name (`class.method`,
// dotted) to its numeric method id.
type MethodIDLookup interface {
	MethodID(qualified string) (int64, bool)
}

// DebugLineLookup resolves (method id, raw encoded line) to the true
// debug line.
type DebugLineLookup interface {
	DebugLine(methodID int64, raw int32) (int32, bool)
}

// Tables holds the lookup tables the symbolicator reads. Classes and
// Positions are required. MethodIDs and DebugLines are set together and
// only for builds using the instruction-offset debug encoding; their
// presence activates the method-tracking path.
type Tables struct {
	Classes    ClassLookup
	Positions  PositionResolver
	MethodIDs  MethodIDLookup
	DebugLines DebugLineLookup
}

func (t Tables) iodiActive() bool { return t.MethodIDs != nil && t.DebugLines != nil }

// section is the method-dump tracking state. It is replaced wholesale on
// every reset so no field can go stale on its own.
type section struct {
	class      string // slash-separated renamed class, "" when unknown
	methodID   int64
	haveMethod bool
	lastLine   int32 // last emitted true debug line, for dedup only
	haveLast   bool
}

// Symbolicator transforms one dexdump output stream. Not safe for
// concurrent use; make one per stream.
type Symbolicator struct {
	tables Tables
	st     section
}

// New returns a symbolicator over the given tables.
func New(tables Tables) *Symbolicator {
	return &Symbolicator{tables: tables}
}

// Indentation for rebuilt positions-table lines, matching dexdump's own.
const instructionIndent = "        "

// Symbolicate transforms one physical input line, trailing newline
// included. ok=false suppresses the line entirely; otherwise the returned
// string replaces it verbatim.
func (s *Symbolicator) Symbolicate(line string) (string, bool) {
	if s.tables.iodiActive() {
		if out, consumed, suppress := s.track(line); consumed {
			if suppress {
				return "", false
			}
			return out, true
		}
	}
	line = s.rewriteClasses(line)
	line = s.rewriteLines(line)
	return line, true
}

// track advances the method-dump state machine. consumed reports that
// the line was fully handled; otherwise the line falls through to the
// stateless rewriters with state already updated.
func (s *Symbolicator) track(line string) (out string, consumed, suppress bool) {
	if cls, ok := matchClassHeader(line); ok {
		s.st = section{class: cls}
	} else if s.st.class != "" {
		if name, ok := matchMethodName(line); ok {
			// New method: drop any id and dedup state from the previous one
			// before the lookup, so a collision miss cannot inherit them.
			s.st = section{class: s.st.class}
			qualified := strings.ReplaceAll(s.st.class, "/", ".") + "." + name
			if id, ok := s.tables.MethodIDs.MethodID(qualified); ok {
				s.st.methodID = id
				s.st.haveMethod = true
			}
		} else if s.st.haveMethod {
			if prefix, raw, ok := matchInstructionLine(line); ok {
				if mapped, ok := s.tables.DebugLines.DebugLine(s.st.methodID, raw); ok {
					if s.st.haveLast && s.st.lastLine == mapped {
						// Several instructions collapsed to one source line.
						return "", true, true
					}
					s.st.lastLine = mapped
					s.st.haveLast = true
					return instructionIndent + prefix + s.joinStack(mapped-1) + "\n", true, false
				}
				// No remap entry: the raw number stands, handled below.
			}
		}
	}

	// Section boundaries, independent of the transitions above. A
	// non-methods subsection (fields, annotations) invalidates tracking
	// until a methods listing starts again.
	if isSubsectionHeader(line) {
		if !strings.Contains(line, "Direct methods") && !strings.Contains(line, "Virtual methods") {
			s.st = section{}
		}
	} else if isClassBoundary(line) {
		s.st = section{}
	}
	return "", false, false
}

// rewriteClasses replaces every mapped class descriptor in the line.
func (s *Symbolicator) rewriteClasses(line string) string {
	return classRe.ReplaceAllStringFunc(line, func(m string) string {
		slashed := m[1 : len(m)-1] // inside L...;
		dotted := strings.ReplaceAll(slashed, "/", ".")
		if original, ok := s.tables.Classes.LookupClass(dotted); ok {
			return "L" + strings.ReplaceAll(original, ".", "/") + ";"
		}
		return m
	})
}

// rewriteLines replaces every `0x... line=N` annotation with the inline
// position stack for N.
func (s *Symbolicator) rewriteLines(line string) string {
	return lineRe.ReplaceAllStringFunc(line, func(m string) string {
		prefix, raw, ok := matchInstructionLine(m)
		if !ok {
			// Overflowing line number: unmappable, expansion is empty.
			return prefix
		}
		return prefix + s.joinStack(raw-1)
	})
}

func (s *Symbolicator) joinStack(line int32) string {
	frames := s.tables.Positions.Stack(line)
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = fmt.Sprintf("%s:%d", f.File, f.Line)
	}
	return strings.Join(parts, ", ")
}
