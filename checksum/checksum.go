// Package checksum computes the integrity digests published next to
// generated repository metadata
package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/zeebo/blake3"
)

// Algorithm names a supported digest. The string value doubles as the file
// extension of the checksum element (i.e. maven-metadata.xml.md5)
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	BLAKE3 Algorithm = "blake3"
)

// Default is used when no algorithm is configured
const Default = MD5

// Parse returns the Algorithm named by s (case-insensitive)
func Parse(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown checksum algorithm: %q", s)
	}
	return a, nil
}

// Valid reports whether a is a supported algorithm
func (a Algorithm) Valid() bool {
	switch a {
	case MD5, SHA1, BLAKE3:
		return true
	}
	return false
}

// Extension returns the file extension (without the dot) for checksum files
func (a Algorithm) Extension() string {
	return string(a)
}

func (a Algorithm) String() string {
	return string(a)
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case SHA1:
		return sha1.New()
	case BLAKE3:
		return blake3.New()
	default:
		return md5.New()
	}
}

// Sum returns the lower-case hex digest of data. Invalid algorithms fall
// back to [Default]
func (a Algorithm) Sum(data []byte) string {
	h := a.newHash()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
