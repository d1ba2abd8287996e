package tree

import "github.com/brettbedarf/repotree"

// Artifact is a leaf holding a build output file
type Artifact struct {
	element
	build repotree.Build
	size  int64
}

// NewArtifact creates a detached artifact; add it to a [Directory] to place it
func NewArtifact(name string, build repotree.Build, size int64) *Artifact {
	return &Artifact{
		element: element{name: name},
		build:   build,
		size:    size,
	}
}

func (a *Artifact) Kind() Kind {
	return KindArtifact
}

// Build returns the build that produced the artifact
func (a *Artifact) Build() repotree.Build {
	return a.build
}

// Size returns the artifact size in bytes; 0 if unknown
func (a *Artifact) Size() int64 {
	return a.size
}
