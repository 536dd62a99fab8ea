package dexdump

import (
	"regexp"
	"strconv"
)

// The dexdump grammar, as much of it as symbolication needs. Matchers
// are consulted by the state machine in a fixed priority order: method
// class header, method name declaration, instruction line annotation,
// then the two section boundaries.
var (
	// Type descriptor embedded anywhere in a line, e.g. `Lcom/foo/Bar;`.
	classRe = regexp.MustCompile(`\bL([A-Za-z][0-9A-Za-z_$]*/[0-9A-Za-z_$/]+);`)

	// Bytecode offset/line annotation, e.g. `0x0010 line=5`.
	lineRe = regexp.MustCompile(`(0x[0-9a-f]+ line=)(\d+)`)

	// Method listing header naming the enclosing class,
	// e.g. `    #0              : (in Lcom/foo/Bar;)`.
	methodClassHeaderRe = regexp.MustCompile(`#\d+\s+:\s+\(in L([A-Za-z][0-9A-Za-z]*/[0-9A-Za-z_$/]+);\)`)

	// Method name declaration, e.g. `      name          : '<init>'`.
	methodNameRe = regexp.MustCompile(`name\s+:\s+'([<A-Za-z][>A-Za-z0-9_$]*)'`)

	// Two-space-indented capitalized subsection header,
	// e.g. `  Direct methods    -` or `  Instance fields   -`.
	subsectionRe = regexp.MustCompile(`^  [A-Z]`)

	// Top-level class header, e.g. `Class #12            -`.
	classBoundaryRe = regexp.MustCompile(`^Class #`)

	processingRe  = regexp.MustCompile(`^Processing '.*\.dex'`)
	likelyClassRe = regexp.MustCompile(`Class #\d+`)
)

// matchClassHeader extracts the slash-separated class name from a method
// listing header.
func matchClassHeader(line string) (string, bool) {
	m := methodClassHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchMethodName extracts the method name from a declaration line.
func matchMethodName(line string) (string, bool) {
	m := methodNameRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchInstructionLine extracts the `0x... line=` prefix and the raw line
// number from an instruction annotation. A line number past int32 reports
// ok=false but still returns the prefix: no mapping can exist for it, and
// the rewriter emits the prefix with an empty expansion.
func matchInstructionLine(line string) (prefix string, raw int32, ok bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.ParseInt(m[2], 10, 32)
	if err != nil {
		return m[1], 0, false
	}
	return m[1], int32(n), true
}

func isSubsectionHeader(line string) bool { return subsectionRe.MatchString(line) }

func isClassBoundary(line string) bool { return classBoundaryRe.MatchString(line) }

// IsLikelyDexdump reports whether a line looks like dexdump output:
// a dex-processing banner or a class header.
func IsLikelyDexdump(line string) bool {
	return processingRe.MatchString(line) || likelyClassRe.MatchString(line)
}
