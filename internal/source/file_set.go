package source

import (
	"fmt"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileID uniquely identifies a declaration file within a FileSet.
type FileID uint32

// NoFileID marks spans that do not come from a file (embedded metadata, tests).
const NoFileID FileID = 0

// FileSet registers the paths of declaration and metadata files so spans can
// refer to them by ID.
type FileSet struct {
	mu    sync.RWMutex
	paths []string
	index map[string]FileID
}

// NewFileSet creates an empty set with the NoFileID slot reserved.
func NewFileSet() *FileSet {
	return &FileSet{
		paths: []string{""},
		index: make(map[string]FileID),
	}
}

// Add registers path and returns its ID; adding the same path twice returns
// the first ID.
func (fs *FileSet) Add(path string) FileID {
	p := filepath.ToSlash(filepath.Clean(path))
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if id, ok := fs.index[p]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(fs.paths))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	fs.paths = append(fs.paths, p)
	fs.index[p] = id
	return id
}

// Path returns the registered path for id, or "" for NoFileID.
func (fs *FileSet) Path(id FileID) string {
	if fs == nil {
		return ""
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if int(id) >= len(fs.paths) {
		return ""
	}
	return fs.paths[id]
}

// Len reports the number of registered files.
func (fs *FileSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.paths) - 1
}
