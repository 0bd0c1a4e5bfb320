package classpath

import (
	_ "embed"
	"fmt"

	"onion/internal/decl"
	"onion/internal/source"
)

//go:embed core.toml
var coreMetadata string

// Core returns a loader for the embedded core library: the root class, the
// string class, Number, Comparable and the eight primitive wrappers.
func Core() *Sources {
	classes, err := ParseMetadata(source.NoFileID, coreMetadata, decl.OriginLibrary)
	if err != nil {
		panic(fmt.Errorf("classpath: embedded core metadata: %w", err))
	}
	s, err := NewSources(classes...)
	if err != nil {
		panic(fmt.Errorf("classpath: embedded core metadata: %w", err))
	}
	return s
}
