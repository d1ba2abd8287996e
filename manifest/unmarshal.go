// Package manifest loads artifact manifests (JSON or YAML) into core
// [repotree.ArtifactRequest] values
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/repotree"
)

// Format is a manifest encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown manifest file extension: %s", path)
	}
}

// Defaults fill in values a manifest entry leaves unset
type Defaults struct {
	Overwrite bool
}

// LoadFile reads and converts the manifest at path
func LoadFile(path string, defaults Defaults) ([]*repotree.ArtifactRequest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reqs, err := Unmarshal(data, format, defaults)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return reqs, nil
}

// Unmarshal decodes a manifest document and converts every entry to a core
// request with defaults applied
func Unmarshal(data []byte, format Format, defaults Defaults) ([]*repotree.ArtifactRequest, error) {
	var doc DocumentDTO
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown manifest format: %q", format)
	}
	return convertDocument(doc, defaults, time.Now())
}

// Conversion logic with defaults in the unmarshaling layer.
// Artifacts without their own build share the single document build value
func convertDocument(doc DocumentDTO, defaults Defaults, now time.Time) ([]*repotree.ArtifactRequest, error) {
	var docBuild *repotree.BuildInfo
	if doc.Build != nil {
		docBuild = convertBuildDTO(*doc.Build, now)
	}

	reqs := make([]*repotree.ArtifactRequest, 0, len(doc.Artifacts))
	for i, dto := range doc.Artifacts {
		if dto.Path == "" {
			return nil, fmt.Errorf("artifact %d: missing path", i)
		}
		if strings.HasSuffix(dto.Path, "/") {
			return nil, fmt.Errorf("artifact %d: path %q does not name a file", i, dto.Path)
		}

		var build repotree.Build
		switch {
		case dto.Build != nil:
			build = convertBuildDTO(*dto.Build, now)
		case docBuild != nil:
			build = docBuild
		default:
			// every artifact needs a build; share one per document
			docBuild = convertBuildDTO(BuildDTO{}, now)
			build = docBuild
		}

		reqs = append(reqs, &repotree.ArtifactRequest{
			Path:      dto.Path,
			Build:     build,
			Size:      valueOrDefault(dto.Size, 0),
			Overwrite: valueOrDefault(dto.Overwrite, defaults.Overwrite),
		})
	}
	return reqs, nil
}

func convertBuildDTO(dto BuildDTO, now time.Time) *repotree.BuildInfo {
	return &repotree.BuildInfo{
		BuildID:   valueOrDefault(dto.ID, uuid.New().String()),
		BuildNum:  valueOrDefault(dto.Number, 0),
		StartedAt: valueOrDefault(dto.Timestamp, now),
	}
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
