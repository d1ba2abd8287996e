// Package repository wires the repository tree to configuration and the
// request types produced by manifests
package repository

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brettbedarf/repotree"
	"github.com/brettbedarf/repotree/config"
	"github.com/brettbedarf/repotree/internal/util"
	"github.com/brettbedarf/repotree/tree"
)

// Repository contains the tree state plus the config it was built with
type Repository struct {
	*tree.Tree
	cfg *config.Config
}

// LoadResult counts the outcome of [Repository.Load]
type LoadResult struct {
	Added   int // Artifacts now registered at their path
	Skipped int // Name already taken and overwrite not allowed
	Failed  int
}

// New creates an empty Repository given your config.
func New(cfg *config.Config) *Repository {
	return &Repository{
		Tree: tree.NewTree(cfg.MetadataSpec()),
		cfg:  cfg,
	}
}

// Config returns the repository config
func (r *Repository) Config() *config.Config {
	return r.cfg
}

// AddArtifact creates an artifact named after the last segment of req.Path
// and inserts it. added is false when an element of that name already
// existed and req.Overwrite was not set; the existing element is kept
func (r *Repository) AddArtifact(req *repotree.ArtifactRequest) (added bool, err error) {
	logger := util.GetLogger("Repository.AddArtifact")

	name := req.Path[strings.LastIndex(req.Path, "/")+1:]
	if name == "" {
		return false, fmt.Errorf("artifact path %q does not name a file", req.Path)
	}

	art := tree.NewArtifact(name, req.Build, req.Size)
	if err := r.Insert(art, req.Path, req.Overwrite); err != nil {
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to insert artifact")
		return false, err
	}

	// Insert keeps an existing element silently; compare identity to find out
	got, err := r.Lookup(req.Path)
	if err != nil {
		return false, err
	}
	if got != tree.Element(art) {
		logger.Warn().Str("path", req.Path).Stringer("existing", got.Kind()).Msg("Element already exists; skipped")
		return false, nil
	}
	if req.Build != nil {
		logger.Debug().Str("path", req.Path).Str("build", req.Build.ID()).Msg("Added artifact")
	}
	return true, nil
}

// Load adds every request in order, continuing past failures. The returned
// error joins all failures
func (r *Repository) Load(reqs []*repotree.ArtifactRequest) (LoadResult, error) {
	logger := util.GetLogger("Repository.Load")

	var (
		res  LoadResult
		errs []error
	)
	for _, req := range reqs {
		added, err := r.AddArtifact(req)
		switch {
		case err != nil:
			res.Failed++
			errs = append(errs, err)
		case added:
			res.Added++
		default:
			res.Skipped++
		}
	}
	logger.Info().Int("added", res.Added).Int("skipped", res.Skipped).Int("failed", res.Failed).Msg("Loaded artifacts")
	return res, errors.Join(errs...)
}

// Listing writes one line per element: kind, path (directories end in "/"),
// and the size for artifacts. withChecksums also prints checksum values
func (r *Repository) Listing(w io.Writer, withChecksums bool) error {
	return r.Walk(func(e tree.Element) error {
		var err error
		switch el := e.(type) {
		case *tree.Directory:
			_, err = fmt.Fprintf(w, "%-8s %s/\n", el.Kind(), el.Path())
		case *tree.Artifact:
			_, err = fmt.Fprintf(w, "%-8s %s %d\n", el.Kind(), el.Path(), el.Size())
		case *tree.Checksum:
			if !withChecksums {
				_, err = fmt.Fprintf(w, "%-8s %s\n", el.Kind(), el.Path())
				break
			}
			value, sumErr := el.Value()
			if sumErr != nil {
				return sumErr
			}
			_, err = fmt.Fprintf(w, "%-8s %s %s\n", el.Kind(), el.Path(), value)
		default:
			_, err = fmt.Fprintf(w, "%-8s %s\n", el.Kind(), el.Path())
		}
		return err
	})
}
