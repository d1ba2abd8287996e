package tree

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/brettbedarf/repotree/internal/util"
	"github.com/puzpuzpuz/xsync/v4"
)

// Directory is a named container of child elements.
//
// Lookups are lock-free. Add and Insert serialise per directory so that a
// directory only ever creates one [Metadata] and one [Checksum].
type Directory struct {
	element
	children *xsync.Map[string, Element] // thread-safe map of children by name
	addMu    sync.Mutex                  // Serialises mutations of children
	metadata *Metadata                   // Protected by addMu; nil until the first artifact
	spec     *MetadataSpec               // Only set on roots; see [Directory.metadataSpec]
}

// NewDirectory creates a detached, empty directory
func NewDirectory(name string) *Directory {
	return &Directory{
		element:  element{name: name},
		children: xsync.NewMap[string, Element](),
	}
}

// NewRoot creates an unnamed root directory whose descendants name and
// checksum their generated metadata according to spec
func NewRoot(spec MetadataSpec) *Directory {
	d := NewDirectory("")
	d.spec = &spec
	return d
}

func (d *Directory) Kind() Kind {
	return KindDirectory
}

// Insert places content at path relative to d. Every segment before the last
// "/" is a directory that is looked up or created on the way down; the
// content itself is registered under its own name in the final directory.
//
// Segments are not validated: empty segments, "." and ".." are treated as
// ordinary names. If a segment resolves to an existing element that is not a
// directory a [*PathError] wrapping [ErrNotADirectory] is returned and
// nothing below that segment is created.
//
// A name clash at the leaf without allowOverwrite is not an error; see
// [Directory.Add].
func (d *Directory) Insert(content Element, path string, allowOverwrite bool) error {
	dirName, rest, found := strings.Cut(path, "/")
	if !found {
		d.Add(content, allowOverwrite)
		return nil
	}

	sub, err := d.subdirectory(dirName, allowOverwrite)
	if err != nil {
		logger := util.GetLogger("Directory.Insert")
		logger.Debug().Err(err).Str("dir", d.Path()).Str("path", path).Msg("Failed to descend")
		return err
	}
	return sub.Insert(content, rest, allowOverwrite)
}

// subdirectory returns the child directory called name, creating it if absent
func (d *Directory) subdirectory(name string, allowOverwrite bool) (*Directory, error) {
	d.addMu.Lock()
	defer d.addMu.Unlock()

	child, ok := d.children.Load(name)
	if !ok {
		child = d.addLocked(NewDirectory(name), allowOverwrite)
	}
	sub, ok := child.(*Directory)
	if !ok {
		return nil, &PathError{Op: "insert", Path: joinPath(d.Path(), name), Err: ErrNotADirectory}
	}
	return sub, nil
}

// Add registers e as a child of d under e's name and returns the element
// that is registered under that name afterwards.
//
// If the name is taken and allowOverwrite is false nothing changes and the
// EXISTING element is returned; callers that need to know whether e went in
// must compare the result with e. With allowOverwrite the entry is replaced
// and e is re-parented; the replaced element is dropped from the map but
// otherwise left as is.
//
// Adding an [*Artifact] records it in the directory's metadata, creating the
// metadata and its checksum on the first artifact.
func (d *Directory) Add(e Element, allowOverwrite bool) Element {
	d.addMu.Lock()
	defer d.addMu.Unlock()
	return d.addLocked(e, allowOverwrite)
}

// addLocked implements [Directory.Add]. Caller must hold d.addMu
func (d *Directory) addLocked(e Element, allowOverwrite bool) Element {
	logger := util.GetLogger("Directory.Add")

	name := e.Name()
	if existing, ok := d.children.Load(name); ok {
		if !allowOverwrite {
			logger.Trace().Str("dir", d.Path()).Str("name", name).Msg("Element exists; keeping existing")
			return existing
		}
		logger.Debug().Str("dir", d.Path()).Str("name", name).Stringer("kind", e.Kind()).Msg("Overwriting element")
	}

	d.children.Store(name, e)
	e.setParent(d)
	if a, ok := e.(*Artifact); ok {
		d.addToMetadataLocked(a)
	}
	return e
}

// addToMetadataLocked records a in the directory metadata, creating the
// metadata and checksum elements first if this is the first artifact.
// Caller must hold d.addMu
func (d *Directory) addToMetadataLocked(a *Artifact) {
	logger := util.GetLogger("Directory.addToMetadata")

	if d.metadata == nil {
		spec := d.metadataSpec()
		md := newMetadata(spec.Name, a.Build())
		d.metadata = md
		d.addLocked(md, true)
		// sibling of the metadata, not its child
		d.addLocked(newChecksum(spec.ChecksumName(), md, spec.Algorithm), true)
		logger.Debug().Str("name", md.Name()).Str("dir", d.Path()).Msg("Added metadata")
	}
	logger.Trace().Str("name", a.Name()).Str("metadata", d.metadata.Path()).Msg("Adding artifact to metadata")
	d.metadata.addArtifact(a)
}

// metadataSpec returns the spec of the nearest ancestor root, or the default
func (d *Directory) metadataSpec() MetadataSpec {
	for cur := d; cur != nil; cur = cur.Parent() {
		if cur.spec != nil {
			return *cur.spec
		}
	}
	return DefaultMetadataSpec()
}

// GetChild returns the child registered under name
func (d *Directory) GetChild(name string) (Element, bool) {
	return d.children.Load(name)
}

// Children returns a snapshot of the directory's children sorted by name.
// Later mutations of d do not affect the returned slice
func (d *Directory) Children() []Element {
	children := make([]Element, 0, d.children.Size())
	d.children.Range(func(_ string, e Element) bool {
		children = append(children, e)
		return true
	})
	slices.SortFunc(children, func(a, b Element) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return children
}

// Len returns the number of children
func (d *Directory) Len() int {
	return d.children.Size()
}

// Metadata returns the directory's generated metadata; ok is false until an
// artifact has been added directly to d
func (d *Directory) Metadata() (md *Metadata, ok bool) {
	d.addMu.Lock()
	defer d.addMu.Unlock()
	return d.metadata, d.metadata != nil
}

// Lookup resolves a slash delimited path relative to d using the same
// segment rules as [Directory.Insert]. It never creates anything
func (d *Directory) Lookup(path string) (Element, error) {
	cur, rest := d, path
	for {
		name, remainder, found := strings.Cut(rest, "/")
		child, ok := cur.GetChild(name)
		if !ok {
			return nil, &PathError{Op: "lookup", Path: path, Err: ErrNotFound}
		}
		if !found {
			return child, nil
		}
		sub, ok := child.(*Directory)
		if !ok {
			return nil, &PathError{Op: "lookup", Path: path, Err: ErrNotADirectory}
		}
		cur, rest = sub, remainder
	}
}

// WalkFunc is called for each element visited by [Directory.Walk].
// Returning [fs.SkipDir] for a directory skips its children; any other
// error stops the walk and is returned
type WalkFunc func(e Element) error

// Walk visits every descendant of d depth-first, parents before children,
// siblings in name order. d itself is not visited
func (d *Directory) Walk(fn WalkFunc) error {
	for _, child := range d.Children() {
		if err := fn(child); err != nil {
			if errors.Is(err, fs.SkipDir) {
				continue
			}
			return err
		}
		if sub, ok := child.(*Directory); ok {
			if err := sub.Walk(fn); err != nil {
				return err
			}
		}
	}
	return nil
}
