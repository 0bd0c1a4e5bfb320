package classpath

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"onion/internal/decl"
	"onion/internal/source"
)

// Dir serves library metadata from *.toml files below a list of directories.
// Directories are searched in order and the first definition of a name wins,
// like a JVM classpath. Files are read once, on the first lookup.
type Dir struct {
	roots  []string
	files  *source.FileSet
	origin decl.Origin

	once    sync.Once
	classes map[string]*decl.Class
	err     error
}

// NewDir creates a metadata loader. files may be nil.
func NewDir(files *source.FileSet, roots ...string) *Dir {
	if files == nil {
		files = source.NewFileSet()
	}
	return &Dir{roots: roots, files: files, origin: decl.OriginLibrary}
}

func (d *Dir) Find(name string) (*decl.Class, bool, error) {
	d.once.Do(d.index)
	if d.err != nil {
		return nil, false, d.err
	}
	c, ok := d.classes[decl.Canonical(name)]
	return c, ok, nil
}

// Classes returns every indexed declaration sorted by name.
func (d *Dir) Classes() ([]*decl.Class, error) {
	d.once.Do(d.index)
	if d.err != nil {
		return nil, d.err
	}
	out := make([]*decl.Class, 0, len(d.classes))
	for _, c := range d.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (d *Dir) index() {
	d.classes = make(map[string]*decl.Class)
	for _, root := range d.roots {
		paths, err := ListMetadataFiles(root)
		if err != nil {
			d.err = err
			return
		}
		for _, p := range paths {
			// #nosec G304 -- path comes from the configured classpath
			data, err := os.ReadFile(p)
			if err != nil {
				d.err = fmt.Errorf("classpath: %w", err)
				return
			}
			classes, err := ParseMetadata(d.files.Add(p), string(data), d.origin)
			if err != nil {
				d.err = fmt.Errorf("%s: %w", p, err)
				return
			}
			for _, c := range classes {
				key := decl.Canonical(c.Name)
				if _, seen := d.classes[key]; seen {
					continue
				}
				d.classes[key] = c
			}
		}
	}
}

// ListMetadataFiles returns the sorted list of *.toml files under root.
func ListMetadataFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(path, ".toml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("classpath: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
