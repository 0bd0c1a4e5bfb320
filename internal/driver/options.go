package driver

import (
	"fmt"
	"os"

	"onion/internal/classpath"
	"onion/internal/conv"
	"onion/internal/decl"
	"onion/internal/observ"
	"onion/internal/source"
	"onion/internal/trace"
)

// Options configures a Compilation.
type Options struct {
	// Classpath supplies library classes. Unit declarations always shadow it.
	Classpath classpath.Loader
	// Root is the implicit superclass; "" means java.lang.Object.
	Root   string
	Boxing conv.BoxingTable
	// Jobs bounds parallel unit checking; <=0 uses GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	CacheSize      int
	Tracer         trace.Tracer
	Timer          *observ.Timer
}

// Unit is one compilation unit: the declarations of one source file.
type Unit struct {
	Name    string
	File    source.FileID
	Classes []*decl.Class
}

// LoadUnits reads every declaration file under dirs; each file becomes a
// unit. Units come back in path order.
func LoadUnits(files *source.FileSet, dirs ...string) ([]Unit, error) {
	if files == nil {
		files = source.NewFileSet()
	}
	var units []Unit
	for _, dir := range dirs {
		paths, err := classpath.ListMetadataFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("driver: list %s: %w", dir, err)
		}
		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("driver: %w", err)
			}
			id := files.Add(path)
			classes, err := classpath.ParseMetadata(id, string(data), decl.OriginSource)
			if err != nil {
				return nil, fmt.Errorf("driver: %s: %w", path, err)
			}
			units = append(units, Unit{Name: path, File: id, Classes: classes})
		}
	}
	return units, nil
}
