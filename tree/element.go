// Package tree implements the in-memory repository namespace: directories
// holding artifacts plus the metadata they generate
package tree

import "sync"

// Kind tags the concrete variant behind an [Element]
type Kind uint8

const (
	KindDirectory Kind = iota + 1
	KindArtifact
	KindMetadata
	KindChecksum
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "dir"
	case KindArtifact:
		return "artifact"
	case KindMetadata:
		return "metadata"
	case KindChecksum:
		return "checksum"
	default:
		return "unknown"
	}
}

// Element is anything placed in the tree. The set of implementations is
// closed: [Directory], [Artifact], [Metadata] and [Checksum]. Switch on the
// concrete type (or Kind) instead of asserting blindly.
type Element interface {
	// Name returns the element's immutable name (last path component)
	Name() string

	// Kind returns the variant tag
	Kind() Kind

	// Parent returns the directory currently holding the element; nil for
	// the root or an element not yet added anywhere
	Parent() *Directory

	// Path returns the slash delimited path from the root. The root path is ""
	Path() string

	setParent(d *Directory)
}

// element holds the fields common to every [Element].
// The parent is a non-owning back reference: ownership flows from a
// directory's children map down, never up.
type element struct {
	name   string
	parent *Directory   // Protected by mu
	mu     sync.RWMutex // Protects parent
}

func (e *element) Name() string {
	return e.name
}

func (e *element) Parent() *Directory {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

func (e *element) setParent(d *Directory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.parent = d
}

// Path walks the parent chain on every call so it always reflects where the
// element currently lives
func (e *element) Path() string {
	p := e.Parent()
	if p == nil {
		return e.name
	}
	return joinPath(p.Path(), e.name)
}

// joinPath appends name to dir, treating "" as the root
func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
