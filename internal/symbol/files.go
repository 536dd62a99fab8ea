package symbol

import "path/filepath"

// Canonical file names as emitted into the build artifact directory.
const (
	ClassMapName     = "redex-class-rename-map.txt"
	PositionMapName  = "redex-line-number-map-v2"
	DebugLineMapName = "redex-debug-line-map-v2"
	IODIMetadataName = "iodi-metadata"
)

// Files names the symbol table files for one build. The class and
// position maps are required; the other two are present only for builds
// using the instruction-offset debug encoding.
type Files struct {
	ClassMap     string
	PositionMap  string
	DebugLineMap string
	IODIMetadata string
}

// FilesFromArtifactDir returns the canonical table paths under dir.
func FilesFromArtifactDir(dir string) Files {
	return Files{
		ClassMap:     filepath.Join(dir, ClassMapName),
		PositionMap:  filepath.Join(dir, PositionMapName),
		DebugLineMap: filepath.Join(dir, DebugLineMapName),
		IODIMetadata: filepath.Join(dir, IODIMetadataName),
	}
}

// Merge overlays non-empty paths from other onto f.
func (f Files) Merge(other Files) Files {
	if other.ClassMap != "" {
		f.ClassMap = other.ClassMap
	}
	if other.PositionMap != "" {
		f.PositionMap = other.PositionMap
	}
	if other.DebugLineMap != "" {
		f.DebugLineMap = other.DebugLineMap
	}
	if other.IODIMetadata != "" {
		f.IODIMetadata = other.IODIMetadata
	}
	return f
}
