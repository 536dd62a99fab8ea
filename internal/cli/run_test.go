package cli

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/MedRedha/redex/internal/symbol"
)

// testPositionMap builds the binary position map format so the stream
// tests can exercise real loaded tables.
func testPositionMap(t *testing.T, files []string, entries [][3]uint32) *symbol.PositionMap {
	t.Helper()
	var b bytes.Buffer
	put := func(v uint32) { binary.Write(&b, binary.LittleEndian, v) }
	put(0xfaceb000) // magic
	put(1)          // version
	put(uint32(len(files)))
	for _, f := range files {
		put(uint32(len(f)))
		b.WriteString(f)
	}
	put(uint32(len(entries)))
	for _, e := range entries {
		put(e[0])
		put(e[1])
		put(e[2])
	}
	m, err := symbol.ParsePositionMap(b.Bytes())
	if err != nil {
		t.Fatalf("ParsePositionMap: %v", err)
	}
	return m
}

func testMaps(t *testing.T) *symbol.Maps {
	t.Helper()
	classes, err := symbol.ParseClassMap(strings.NewReader("com.example.Foo -> a.b.C:\n"))
	if err != nil {
		t.Fatalf("ParseClassMap: %v", err)
	}
	positions := testPositionMap(t, []string{"Foo.java"}, [][3]uint32{{0, 10, 0}})
	return &symbol.Maps{Classes: classes, Positions: positions}
}

func TestSymbolicateStreamDexdump(t *testing.T) {
	in := "Processing 'classes.dex'...\n" +
		"type: La/b/C;\n" +
		"        0x0010 line=1\n"
	want := "Processing 'classes.dex'...\n" +
		"type: Lcom/example/Foo;\n" +
		"        0x0010 line=Foo.java:10\n"

	var out bytes.Buffer
	err := symbolicateStream("", testMaps(t), strings.NewReader(in), &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("symbolicateStream: %v", err)
	}
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestSymbolicateStreamForcedLines(t *testing.T) {
	in := "a/b/C.class\nother/Thing.class\n"
	want := "com.example.Foo\nother/Thing.class\n"

	var out bytes.Buffer
	err := symbolicateStream("lines", testMaps(t), strings.NewReader(in), &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("symbolicateStream: %v", err)
	}
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestSymbolicateStreamUnknownKindFallsBackToLogcat(t *testing.T) {
	in := "something unrecognizable about a.b.C\n"
	want := "something unrecognizable about com.example.Foo\n"

	var out bytes.Buffer
	err := symbolicateStream("", testMaps(t), strings.NewReader(in), &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("symbolicateStream: %v", err)
	}
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestSymbolicateStreamEmptyInput(t *testing.T) {
	var out bytes.Buffer
	err := symbolicateStream("", testMaps(t), strings.NewReader(""), &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("symbolicateStream: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
}

// Input not ending in a newline must still be symbolicated.
func TestSymbolicateStreamNoTrailingNewline(t *testing.T) {
	var out bytes.Buffer
	err := symbolicateStream("lines", testMaps(t), strings.NewReader("a/b/C.class"), &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("symbolicateStream: %v", err)
	}
	if got := out.String(); got != "com.example.Foo\n" {
		t.Errorf("output = %q, want %q", got, "com.example.Foo\n")
	}
}

func TestResolveFilesRequiresBothMaps(t *testing.T) {
	// No sources at all.
	if _, err := resolveFiles(options{}); err == nil {
		t.Error("resolveFiles with no sources: want error")
	}

	// Config naming only the class map must fail up front, not at load.
	dir := t.TempDir()
	path := filepath.Join(dir, "symbols.yaml")
	if err := os.WriteFile(path, []byte("class_map: mapping.txt\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveFiles(options{configPath: path}); err == nil {
		t.Error("resolveFiles without a position map: want error")
	}

	// Artifact dir fills in everything the config leaves out.
	files, err := resolveFiles(options{artifacts: "/artifacts", configPath: path})
	if err != nil {
		t.Fatalf("resolveFiles: %v", err)
	}
	if files.ClassMap != filepath.Join(dir, "mapping.txt") {
		t.Errorf("ClassMap = %q, want config override", files.ClassMap)
	}
	if files.PositionMap == "" {
		t.Error("PositionMap empty, want artifact-dir default")
	}
}

type suppressEven struct{ n int }

func (s *suppressEven) Symbolicate(line string) (string, bool) {
	s.n++
	if s.n%2 == 0 {
		return "", false
	}
	return line, true
}

func TestPumpSuppression(t *testing.T) {
	r := strings.NewReader("one\ntwo\nthree\n")
	var out bytes.Buffer

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(&out)
	if err := pump(br, bw, &suppressEven{}); err != nil {
		t.Fatalf("pump: %v", err)
	}
	bw.Flush()
	if got := out.String(); got != "one\nthree\n" {
		t.Errorf("output = %q, want %q", got, "one\nthree\n")
	}
}

func TestLinesSymbolicator(t *testing.T) {
	s := NewLinesSymbolicator(mustClassMap(t, "com.example.Foo -> a.b.C:\n"))
	tests := []struct {
		in   string
		want string
	}{
		{"a/b/C.class\n", "com.example.Foo\n"},
		{"a.b.C.class\n", "com.example.Foo\n"},
		{"un/mapped/X.class\n", "un/mapped/X.class\n"},
		{"not-a-class-entry\n", "not-a-class-entry\n"},
	}
	for _, tt := range tests {
		got, ok := s.Symbolicate(tt.in)
		if !ok || got != tt.want {
			t.Errorf("Symbolicate(%q) = %q, %v; want %q", tt.in, got, ok, tt.want)
		}
	}
}

func mustClassMap(t *testing.T, mapping string) *symbol.ClassMap {
	t.Helper()
	m, err := symbol.ParseClassMap(strings.NewReader(mapping))
	if err != nil {
		t.Fatalf("ParseClassMap: %v", err)
	}
	return m
}
