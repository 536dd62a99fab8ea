package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/MedRedha/redex/internal/config"
	"github.com/MedRedha/redex/internal/dexdump"
	"github.com/MedRedha/redex/internal/logcat"
	"github.com/MedRedha/redex/internal/symbol"
)

// Symbolicator transforms one input line, trailing newline included.
// ok=false suppresses the line.
type Symbolicator interface {
	Symbolicate(line string) (string, bool)
}

func run(opts options, log zerolog.Logger) error {
	files, err := resolveFiles(opts)
	if err != nil {
		return err
	}
	maps, err := symbol.Load(files)
	if err != nil {
		return err
	}
	log.Info().Int("classes", maps.Classes.Len()).Msg("loaded class rename map")
	if maps.IODI != nil {
		log.Info().
			Int("collision_free", maps.IODI.CollisionFree()).
			Int("total", maps.IODI.Total()).
			Msg("unpacked methods from iodi metadata")
	}

	// Keep running when the downstream pager is interrupted; only a tty
	// reader should be able to kill the filter with ctrl-C.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		signal.Ignore(os.Interrupt)
	}

	return symbolicateStream(opts.inputType, maps, os.Stdin, os.Stdout, log)
}

func resolveFiles(opts options) (symbol.Files, error) {
	var files symbol.Files
	if opts.artifacts != "" {
		files = symbol.FilesFromArtifactDir(opts.artifacts)
	}
	if opts.configPath != "" {
		fromConfig, err := config.Load(opts.configPath)
		if err != nil {
			return symbol.Files{}, err
		}
		files = files.Merge(fromConfig)
	}
	if files.ClassMap == "" || files.PositionMap == "" {
		return symbol.Files{}, errors.New("cli: class and position maps are required; pass --artifacts or name them in --config")
	}
	return files, nil
}

// symbolicateStream pumps r to w one line at a time through the
// symbolicator selected by kind, or sniffed from the first non-empty
// line when kind is empty.
func symbolicateStream(kind string, maps *symbol.Maps, r io.Reader, w io.Writer, log zerolog.Logger) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	first, rerr := br.ReadString('\n')
	if first == "" && rerr == io.EOF {
		log.Warn().Msg("empty input")
		return nil
	}
	if rerr != nil && rerr != io.EOF {
		return rerr
	}

	sym, name := selectSymbolicator(kind, first, maps, log)
	log.Info().Str("symbolicator", name).Msg("selected input kind")

	if out, ok := sym.Symbolicate(first); ok {
		if _, err := bw.WriteString(out); err != nil {
			return err
		}
	}
	if rerr == io.EOF {
		return nil
	}
	return pump(br, bw, sym)
}

func selectSymbolicator(kind, firstLine string, maps *symbol.Maps, log zerolog.Logger) (Symbolicator, string) {
	switch {
	case kind == "lines":
		return NewLinesSymbolicator(maps.Classes), "lines"
	case kind == "logcat" || logcat.IsLikelyLogcat(firstLine):
		return logcat.New(maps.Classes, maps.Positions), "logcat"
	case kind == "dexdump" || dexdump.IsLikelyDexdump(firstLine):
		return dexdump.New(dexdumpTables(maps)), "dexdump"
	default:
		log.Warn().Msg("could not figure out input kind, assuming logcat")
		return logcat.New(maps.Classes, maps.Positions), "logcat"
	}
}

func dexdumpTables(maps *symbol.Maps) dexdump.Tables {
	t := dexdump.Tables{Classes: maps.Classes, Positions: maps.Positions}
	// Assign only when present: a nil *IODIMetadata inside a non-nil
	// interface would look active to the symbolicator.
	if maps.IODI != nil {
		t.MethodIDs = maps.IODI
		t.DebugLines = maps.DebugLines
	}
	return t
}

func pump(r *bufio.Reader, w *bufio.Writer, sym Symbolicator) error {
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if out, ok := sym.Symbolicate(line); ok {
				if _, werr := w.WriteString(out); werr != nil {
					return werr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
