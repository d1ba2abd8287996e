package manifest

import "time"

// DocumentDTO is the file representation of a manifest.
//
// Ex. (YAML):
//
//	build:
//	  id: nightly-42
//	  number: 42
//	  timestamp: 2026-10-19T12:30:45Z
//	artifacts:
//	  - path: com/example/core/1.0-SNAPSHOT/core-1.0-SNAPSHOT.jar
//	    size: 2048
//	  - path: com/example/core/1.0-SNAPSHOT/core-1.0-SNAPSHOT.pom
//	    overwrite: true
type DocumentDTO struct {
	Build     *BuildDTO     `json:"build,omitempty" yaml:"build,omitempty"` // Default build for every artifact
	Artifacts []ArtifactDTO `json:"artifacts" yaml:"artifacts"`
}

// ArtifactDTO is the file representation of [repotree.ArtifactRequest]
type ArtifactDTO struct {
	Path      string    `json:"path" yaml:"path"`
	Size      *int64    `json:"size,omitempty" yaml:"size,omitempty"`           // Size in bytes if known
	Overwrite *bool     `json:"overwrite,omitempty" yaml:"overwrite,omitempty"` // Default from config
	Build     *BuildDTO `json:"build,omitempty" yaml:"build,omitempty"`         // Overrides the document build
}

// BuildDTO is the file representation of [repotree.BuildInfo]
type BuildDTO struct {
	ID        *string    `json:"id,omitempty" yaml:"id,omitempty"`               // Default random UUID
	Number    *int       `json:"number,omitempty" yaml:"number,omitempty"`       // Default 0
	Timestamp *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"` // Default load time
}
