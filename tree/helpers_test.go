package tree

import (
	"testing"
	"time"

	"github.com/brettbedarf/repotree"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, time.October, 19, 12, 30, 45, 0, time.UTC)

// newTestBuild returns a plain build with a fixed timestamp
func newTestBuild(number int) *repotree.BuildInfo {
	return &repotree.BuildInfo{BuildID: "build-test", BuildNum: number, StartedAt: testTime}
}

// newTestArtifact creates a detached artifact produced by build #1
func newTestArtifact(name string) *Artifact {
	return NewArtifact(name, newTestBuild(1), 1024)
}

// requireDir asserts e is a directory and returns it
func requireDir(t *testing.T, e Element) *Directory {
	t.Helper()
	d, ok := e.(*Directory)
	require.True(t, ok, "expected directory, got %T", e)
	return d
}

// requireChild fetches name from d, failing the test if absent
func requireChild(t *testing.T, d *Directory, name string) Element {
	t.Helper()
	child, ok := d.GetChild(name)
	require.True(t, ok, "expected child %q in %q", name, d.Path())
	return child
}
