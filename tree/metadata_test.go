package tree

import (
	"encoding/xml"
	"testing"

	"github.com/brettbedarf/repotree/checksum"
	"github.com/brettbedarf/repotree/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseContent renders md and decodes it back into the document struct
func parseContent(t *testing.T, md *Metadata) mavenMetadata {
	t.Helper()
	content, err := md.Content()
	require.NoError(t, err)
	require.True(t, len(content) > len(xml.Header))
	assert.Equal(t, xml.Header, string(content[:len(xml.Header)]))

	var doc mavenMetadata
	require.NoError(t, xml.Unmarshal(content, &doc))
	return doc
}

func TestMetadata_Content_MavenLayout(t *testing.T) {
	t.Parallel()

	build := mocks.NewMockBuild("job#42", 42, testTime)
	root := NewRoot(DefaultMetadataSpec())
	dir := "com/example/core/1.0-SNAPSHOT/"
	require.NoError(t, root.Insert(NewArtifact("core-1.0-SNAPSHOT.jar", build, 10), dir+"core-1.0-SNAPSHOT.jar", false))
	require.NoError(t, root.Insert(NewArtifact("core-1.0-SNAPSHOT-sources.jar", build, 5), dir+"core-1.0-SNAPSHOT-sources.jar", false))

	e, err := root.Lookup(dir + DefaultMetadataName)
	require.NoError(t, err)
	md, ok := e.(*Metadata)
	require.True(t, ok)

	doc := parseContent(t, md)
	assert.Equal(t, "com.example", doc.GroupID)
	assert.Equal(t, "core", doc.ArtifactID)
	assert.Equal(t, "1.0-SNAPSHOT", doc.Version)
	require.NotNil(t, doc.Versioning.Snapshot)
	assert.Equal(t, "20261019.123045", doc.Versioning.Snapshot.Timestamp)
	assert.Equal(t, 42, doc.Versioning.Snapshot.BuildNumber)
	assert.Equal(t, "20261019123045", doc.Versioning.LastUpdated)
	assert.Equal(t, []snapshotVersion{
		{Extension: "jar", Value: "1.0-SNAPSHOT", Updated: "20261019123045"},
		{Classifier: "sources", Extension: "jar", Value: "1.0-SNAPSHOT", Updated: "20261019123045"},
	}, doc.Versioning.SnapshotVersions)
	build.AssertCalled(t, "Number")
}

func TestMetadata_Content_NilBuild(t *testing.T) {
	t.Parallel()

	dir := NewDirectory("lib")
	dir.Add(NewArtifact("x.jar", nil, 0), false)
	md, ok := dir.Metadata()
	require.True(t, ok)

	doc := parseContent(t, md)
	assert.Nil(t, doc.Versioning.Snapshot)
	assert.Empty(t, doc.Versioning.LastUpdated)
	require.Len(t, doc.Versioning.SnapshotVersions, 1)
	assert.Equal(t, "jar", doc.Versioning.SnapshotVersions[0].Extension)
}

func TestCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path                       string
		group, artifactID, version string
	}{
		{"", "", "", ""},
		{"core", "", "core", ""},
		{"core/1.0", "", "core", "1.0"},
		{"org/acme/tools/core/1.0", "org.acme.tools", "core", "1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			g, a, v := coordinates(tt.path)
			assert.Equal(t, tt.group, g)
			assert.Equal(t, tt.artifactID, a)
			assert.Equal(t, tt.version, v)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, prefix    string
		classifier, ext string
	}{
		{"core-1.0.jar", "core-1.0", "", "jar"},
		{"core-1.0-javadoc.jar", "core-1.0", "javadoc", "jar"},
		{"core-1.0.pom", "core-1.0", "", "pom"},
		{"README", "core-1.0", "", ""},
		{"other-2.0-tests.jar", "core-1.0", "", "jar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ext := classify(tt.name, tt.prefix)
			assert.Equal(t, tt.classifier, c)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestChecksum_Value_TracksMetadata(t *testing.T) {
	t.Parallel()

	for _, alg := range []checksum.Algorithm{checksum.MD5, checksum.SHA1, checksum.BLAKE3} {
		t.Run(alg.String(), func(t *testing.T) {
			t.Parallel()
			spec := MetadataSpec{Name: DefaultMetadataName, Algorithm: alg}
			root := NewRoot(spec)
			require.NoError(t, root.Insert(newTestArtifact("a.jar"), "lib/a.jar", false))

			e, err := root.Lookup("lib/" + spec.ChecksumName())
			require.NoError(t, err)
			sum, ok := e.(*Checksum)
			require.True(t, ok)

			content, err := sum.Source().Content()
			require.NoError(t, err)
			before, err := sum.Value()
			require.NoError(t, err)
			assert.Equal(t, alg.Sum(content), before)

			later := NewArtifact("b.jar", newTestBuild(2), 0)
			require.NoError(t, root.Insert(later, "lib/b.jar", false))

			after, err := sum.Value()
			require.NoError(t, err)
			assert.NotEqual(t, before, after, "checksum must follow metadata content")
		})
	}
}

func TestMetadataSpec_ChecksumName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "maven-metadata.xml.md5", DefaultMetadataSpec().ChecksumName())
	assert.Equal(t, "index.xml.sha1", MetadataSpec{Name: "index.xml", Algorithm: checksum.SHA1}.ChecksumName())
}
