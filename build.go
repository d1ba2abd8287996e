// Package repotree contains core domain types shared by the repository tree,
// its manifest loaders and its consumers
package repotree

import "time"

// Build is the host's reference to the build that produced an artifact.
// The tree only stores it; metadata rendering reads Number and Timestamp.
type Build interface {
	// ID returns a stable identifier for the build (used for logging)
	ID() string

	// Number returns the sequential build number
	Number() int

	// Timestamp returns when the build ran
	Timestamp() time.Time
}

// BuildInfo is a plain value [Build]
type BuildInfo struct {
	BuildID   string
	BuildNum  int
	StartedAt time.Time
}

func (b *BuildInfo) ID() string {
	return b.BuildID
}

func (b *BuildInfo) Number() int {
	return b.BuildNum
}

func (b *BuildInfo) Timestamp() time.Time {
	return b.StartedAt
}
