package tree

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/brettbedarf/repotree"
	"github.com/brettbedarf/repotree/checksum"
)

// DefaultMetadataName is the name given to generated metadata elements
const DefaultMetadataName = "maven-metadata.xml"

// Timestamp layouts used by Maven snapshot metadata
const (
	snapshotTimestampLayout = "20060102.150405"
	lastUpdatedLayout       = "20060102150405"
)

// MetadataSpec controls how directories name and checksum their metadata
type MetadataSpec struct {
	Name      string             // Metadata element name (Default maven-metadata.xml)
	Algorithm checksum.Algorithm // Checksum digest (Default md5)
}

// DefaultMetadataSpec returns maven-metadata.xml checksummed with md5
func DefaultMetadataSpec() MetadataSpec {
	return MetadataSpec{Name: DefaultMetadataName, Algorithm: checksum.Default}
}

// ChecksumName returns the name of the checksum element, i.e. maven-metadata.xml.md5
func (s MetadataSpec) ChecksumName() string {
	return s.Name + "." + s.Algorithm.Extension()
}

// Metadata is generated by a directory on its first artifact and lists every
// artifact later added to that directory, in insertion order. The list is
// append-only: an artifact overwritten by a same-named one stays listed.
type Metadata struct {
	element
	build       repotree.Build // Build of the artifact that created the metadata
	artifactsMu sync.RWMutex
	artifacts   []*Artifact // Protected by artifactsMu
}

func newMetadata(name string, build repotree.Build) *Metadata {
	return &Metadata{
		element: element{name: name},
		build:   build,
	}
}

func (m *Metadata) Kind() Kind {
	return KindMetadata
}

// Build returns the build of the artifact that caused the metadata to be created
func (m *Metadata) Build() repotree.Build {
	return m.build
}

func (m *Metadata) addArtifact(a *Artifact) {
	m.artifactsMu.Lock()
	defer m.artifactsMu.Unlock()
	m.artifacts = append(m.artifacts, a)
}

// Artifacts returns a snapshot of the recorded artifacts in insertion order
func (m *Metadata) Artifacts() []*Artifact {
	m.artifactsMu.RLock()
	defer m.artifactsMu.RUnlock()
	out := make([]*Artifact, len(m.artifacts))
	copy(out, m.artifacts)
	return out
}

// XML document shape of maven-metadata.xml
type (
	mavenMetadata struct {
		XMLName    xml.Name   `xml:"metadata"`
		GroupID    string     `xml:"groupId,omitempty"`
		ArtifactID string     `xml:"artifactId,omitempty"`
		Version    string     `xml:"version,omitempty"`
		Versioning versioning `xml:"versioning"`
	}
	versioning struct {
		Snapshot         *snapshot         `xml:"snapshot,omitempty"`
		LastUpdated      string            `xml:"lastUpdated,omitempty"`
		SnapshotVersions []snapshotVersion `xml:"snapshotVersions>snapshotVersion"`
	}
	snapshot struct {
		Timestamp   string `xml:"timestamp"`
		BuildNumber int    `xml:"buildNumber"`
	}
	snapshotVersion struct {
		Classifier string `xml:"classifier,omitempty"`
		Extension  string `xml:"extension,omitempty"`
		Value      string `xml:"value"`
		Updated    string `xml:"updated,omitempty"`
	}
)

// Content renders the metadata as a maven-metadata.xml document. Coordinates
// come from the owning directory's path laid out as group/.../artifactId/version
func (m *Metadata) Content() ([]byte, error) {
	var dirPath string
	if p := m.Parent(); p != nil {
		dirPath = p.Path()
	}
	groupID, artifactID, version := coordinates(dirPath)

	doc := mavenMetadata{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
	}
	if m.build != nil {
		ts := m.build.Timestamp().UTC()
		doc.Versioning.Snapshot = &snapshot{
			Timestamp:   ts.Format(snapshotTimestampLayout),
			BuildNumber: m.build.Number(),
		}
		doc.Versioning.LastUpdated = ts.Format(lastUpdatedLayout)
	}

	prefix := artifactID + "-" + version
	for _, a := range m.Artifacts() {
		classifier, ext := classify(a.Name(), prefix)
		sv := snapshotVersion{
			Classifier: classifier,
			Extension:  ext,
			Value:      version,
		}
		if b := a.Build(); b != nil {
			sv.Updated = b.Timestamp().UTC().Format(lastUpdatedLayout)
		}
		doc.Versioning.SnapshotVersions = append(doc.Versioning.SnapshotVersions, sv)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", m.name, err)
	}
	return append([]byte(xml.Header), out...), nil
}

// coordinates splits a directory path into Maven groupId, artifactId and version
func coordinates(dirPath string) (groupID, artifactID, version string) {
	if dirPath == "" {
		return "", "", ""
	}
	segs := strings.Split(dirPath, "/")
	switch n := len(segs); n {
	case 1:
		return "", segs[0], ""
	case 2:
		return "", segs[0], segs[1]
	default:
		return strings.Join(segs[:n-2], "."), segs[n-2], segs[n-1]
	}
}

// classify extracts the classifier and extension from an artifact file name
// such as core-1.0-sources.jar given the prefix core-1.0
func classify(name, prefix string) (classifier, ext string) {
	ext = strings.TrimPrefix(path.Ext(name), ".")
	stem := strings.TrimSuffix(name, path.Ext(name))
	if c, ok := strings.CutPrefix(stem, prefix+"-"); ok {
		classifier = c
	}
	return classifier, ext
}

// Checksum is the integrity digest of a [Metadata] element. It lives next to
// its source in the same directory and is recomputed from the source content
// on every read, so it never goes stale as artifacts are added
type Checksum struct {
	element
	source    *Metadata
	algorithm checksum.Algorithm
}

func newChecksum(name string, source *Metadata, algorithm checksum.Algorithm) *Checksum {
	return &Checksum{
		element:   element{name: name},
		source:    source,
		algorithm: algorithm,
	}
}

func (c *Checksum) Kind() Kind {
	return KindChecksum
}

// Source returns the metadata element being checksummed
func (c *Checksum) Source() *Metadata {
	return c.source
}

// Algorithm returns the digest algorithm
func (c *Checksum) Algorithm() checksum.Algorithm {
	return c.algorithm
}

// Value returns the hex digest of the source metadata's current content
func (c *Checksum) Value() (string, error) {
	content, err := c.source.Content()
	if err != nil {
		return "", err
	}
	return c.algorithm.Sum(content), nil
}
