package symbol

import (
	"errors"
	"fmt"
	"os"
)

// ErrIODIWithoutDebugLines reports iodi metadata present without the
// debug line map it depends on.
var ErrIODIWithoutDebugLines = errors.New("symbol: iodi metadata requires a debug line map")

// Maps is the loaded table set for one build. DebugLines and IODI are
// nil unless the build used the instruction-offset debug encoding; IODI
// is never non-nil without DebugLines.
type Maps struct {
	Classes    *ClassMap
	Positions  *PositionMap
	DebugLines *DebugLineMap
	IODI       *IODIMetadata
}

// Load reads all tables named by files. The class and position maps must
// exist; the debug-line map and iodi metadata are loaded when present.
func Load(files Files) (*Maps, error) {
	classes, err := LoadClassMap(files.ClassMap)
	if err != nil {
		return nil, err
	}
	positions, err := LoadPositionMap(files.PositionMap)
	if err != nil {
		return nil, err
	}
	m := &Maps{Classes: classes, Positions: positions}

	if exists(files.DebugLineMap) {
		if m.DebugLines, err = LoadDebugLineMap(files.DebugLineMap); err != nil {
			return nil, err
		}
	}
	if exists(files.IODIMetadata) {
		if m.DebugLines == nil {
			return nil, fmt.Errorf("%w (%s missing)", ErrIODIWithoutDebugLines, DebugLineMapName)
		}
		if m.IODI, err = LoadIODIMetadata(files.IODIMetadata); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
