package repotree

// ArtifactRequest describes one artifact to place in the repository tree.
// It should be passed from entrypoints (cli, manifest files, etc) to the
// repository Add methods
type ArtifactRequest struct {
	Path      string // Slash delimited location relative to the root; last segment is the file name
	Build     Build
	Size      int64
	Overwrite bool // Replace an existing element of the same name
}
