// Package logcat rewrites device log output: renamed class names in
// Java stack traces and log messages are mapped back to their originals,
// and trace-frame line numbers expand into their inline call chains.
package logcat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MedRedha/redex/internal/symbol"
)

// ClassLookup resolves a renamed dotted class name to its original name.
type ClassLookup interface {
	LookupClass(renamed string) (string, bool)
}

// PositionResolver expands a zero-based renamed line number into its
// inline position stack.
type PositionResolver interface {
	Stack(line int32) []symbol.Position
}

var (
	// Java stack trace frame: `    at com.foo.a.b(SourceFile:42)`,
	// with whatever logcat prefix precedes the `at`.
	traceFrameRe = regexp.MustCompile(`^(.*\bat )([A-Za-z][0-9A-Za-z_$.]*)\.([0-9A-Za-z_$]+|<init>|<clinit>)\(([^:()]*):(\d+)\)\s*$`)

	// Dotted class name candidate anywhere in a line.
	dottedClassRe = regexp.MustCompile(`\b[A-Za-z][0-9A-Za-z_$]*(\.[0-9A-Za-z_$]+)+\b`)

	// Leading `MM-DD HH:MM:SS` logcat timestamp.
	timestampRe = regexp.MustCompile(`^\d\d-\d\d\s+\d\d:\d\d:\d\d`)
)

// Symbolicator is a line filter for logcat streams. Stateless; safe to
// reuse across streams.
type Symbolicator struct {
	classes   ClassLookup
	positions PositionResolver
}

// New returns a logcat symbolicator over the given tables.
func New(classes ClassLookup, positions PositionResolver) *Symbolicator {
	return &Symbolicator{classes: classes, positions: positions}
}

// Symbolicate transforms one log line, trailing newline included. A
// trace frame whose line expands to several inline positions becomes one
// output frame per position. ok is always true; logcat lines are never
// suppressed.
func (s *Symbolicator) Symbolicate(line string) (string, bool) {
	if m := traceFrameRe.FindStringSubmatch(strings.TrimRight(line, "\n")); m != nil {
		if out, ok := s.rewriteFrame(m); ok {
			return out, true
		}
	}
	return s.rewriteClasses(line), true
}

// rewriteFrame rebuilds a trace frame from the rename and position maps.
// Reports false when the class is unmapped, so the line falls back to
// plain class-name rewriting.
func (s *Symbolicator) rewriteFrame(m []string) (string, bool) {
	prefix, cls, method, file, lineno := m[1], m[2], m[3], m[4], m[5]
	original, ok := s.classes.LookupClass(cls)
	if !ok {
		return "", false
	}
	n, err := strconv.ParseInt(lineno, 10, 32)
	if err != nil {
		return "", false
	}
	frames := s.positions.Stack(int32(n) - 1)
	if len(frames) == 0 {
		return fmt.Sprintf("%s%s.%s(%s:%s)\n", prefix, original, method, file, lineno), true
	}
	var b strings.Builder
	for _, f := range frames {
		fmt.Fprintf(&b, "%s%s.%s(%s:%d)\n", prefix, original, method, f.File, f.Line)
	}
	return b.String(), true
}

// rewriteClasses replaces every mapped dotted class name in the line.
func (s *Symbolicator) rewriteClasses(line string) string {
	return dottedClassRe.ReplaceAllStringFunc(line, func(name string) string {
		if original, ok := s.classes.LookupClass(name); ok {
			return original
		}
		return name
	})
}

// IsLikelyLogcat reports whether a line looks like device log output:
// a buffer banner or a leading timestamp.
func IsLikelyLogcat(line string) bool {
	return strings.HasPrefix(line, "--------- beginning of") || timestampRe.MatchString(line)
}
