// Package classpath provides the declaration providers the symbol table
// loads classes from: parser output for the unit being compiled, library
// metadata directories and the embedded core library.
package classpath

import (
	"fmt"
	"sort"
	"sync"

	"onion/internal/decl"
)

// Loader locates the declaration of a fully qualified class name.
// ok is false when the name is unknown to this loader; err reports a broken
// provider (unreadable or malformed metadata), not absence.
type Loader interface {
	Find(name string) (cls *decl.Class, ok bool, err error)
}

// Sources exposes declarations produced by the parser.
type Sources struct {
	mu      sync.RWMutex
	classes map[string]*decl.Class
}

// NewSources indexes classes by name. Declaring the same name twice is an
// error.
func NewSources(classes ...*decl.Class) (*Sources, error) {
	s := &Sources{classes: make(map[string]*decl.Class, len(classes))}
	for _, c := range classes {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers one more declaration.
func (s *Sources) Add(c *decl.Class) error {
	if c == nil {
		return fmt.Errorf("classpath: declaration without a name")
	}
	key := decl.Canonical(c.Name)
	if key == "" {
		return fmt.Errorf("classpath: declaration without a name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.classes[key]; dup {
		return fmt.Errorf("classpath: class %s declared twice", key)
	}
	s.classes[key] = c
	return nil
}

func (s *Sources) Find(name string) (*decl.Class, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.classes[decl.Canonical(name)]
	return c, ok, nil
}

// Names returns declared names in sorted order.
func (s *Sources) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.classes))
	for n := range s.classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Chain consults loaders in order; the first that knows a name wins.
type Chain []Loader

func (c Chain) Find(name string) (*decl.Class, bool, error) {
	for _, l := range c {
		if l == nil {
			continue
		}
		cls, ok, err := l.Find(name)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return cls, true, nil
		}
	}
	return nil, false, nil
}
