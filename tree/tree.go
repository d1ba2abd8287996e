package tree

import (
	"sync"

	"github.com/brettbedarf/repotree/internal/util"
)

// Tree owns a root [Directory] and guards the whole hierarchy with one lock:
// Insert takes it exclusively, Lookup and Walk share it. Use the root
// directly only when a single goroutine owns the tree.
type Tree struct {
	root *Directory
	mu   sync.RWMutex
}

// Stats counts the elements of a tree by kind
type Stats struct {
	Directories int
	Artifacts   int
	Metadata    int
	Checksums   int
}

// NewTree creates an empty tree. spec sets the name and digest of generated metadata
func NewTree(spec MetadataSpec) *Tree {
	return &Tree{root: NewRoot(spec)}
}

// Root returns the root directory
func (t *Tree) Root() *Directory {
	return t.root
}

// Insert places content at path under the root. See [Directory.Insert]
func (t *Tree) Insert(content Element, path string, allowOverwrite bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.root.Insert(content, path, allowOverwrite); err != nil {
		return err
	}
	logger := util.GetLogger("Tree.Insert")
	logger.Debug().Str("path", path).Stringer("kind", content.Kind()).Msg("Inserted element")
	return nil
}

// Lookup resolves path under the root. See [Directory.Lookup]
func (t *Tree) Lookup(path string) (Element, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root.Lookup(path)
}

// Walk visits every element under the root. fn must not call Insert on t.
// See [Directory.Walk]
func (t *Tree) Walk(fn WalkFunc) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root.Walk(fn)
}

// Stats counts every element under the root
func (t *Tree) Stats() Stats {
	var s Stats
	t.Walk(func(e Element) error { // nolint:errcheck
		switch e.Kind() {
		case KindDirectory:
			s.Directories++
		case KindArtifact:
			s.Artifacts++
		case KindMetadata:
			s.Metadata++
		case KindChecksum:
			s.Checksums++
		}
		return nil
	})
	return s
}
