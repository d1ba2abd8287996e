package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"md5", MD5, false},
		{"MD5", MD5, false},
		{" sha1 ", SHA1, false},
		{"blake3", BLAKE3, false},
		{"crc32", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown checksum algorithm")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlgorithm_Sum_KnownVectors(t *testing.T) {
	t.Parallel()

	data := []byte("abc")
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", MD5.Sum(data))
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", SHA1.Sum(data))
	assert.Equal(t, "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85", BLAKE3.Sum(data))
}

func TestAlgorithm_Sum_InvalidFallsBackToDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Default.Sum([]byte("abc")), Algorithm("bogus").Sum([]byte("abc")))
}

func TestAlgorithm_Extension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "md5", MD5.Extension())
	assert.Equal(t, "sha1", SHA1.Extension())
	assert.Equal(t, "blake3", BLAKE3.Extension())
	assert.False(t, Algorithm("").Valid())
}
