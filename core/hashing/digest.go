package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrUnknownAlgorithm is returned for a digest name that is not supported.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

const (
	// DefaultAlgorithm is used when no algorithm is configured.
	DefaultAlgorithm = "sha256"

	minChunkSize = 64 << 10
	maxChunkSize = 4 << 20
)

var algorithms = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
	"blake2b-256": func() hash.Hash {
		// New256 only fails for keys longer than 64 bytes.
		h, _ := blake2b.New256(nil)
		return h
	},
	"sha3-256": sha3.New256,
}

// Algorithms lists the supported digest names.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDigest returns a constructor for the named digest.
func NewDigest(name string) (func() hash.Hash, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultAlgorithm
	}
	ctor, ok := algorithms[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return ctor, nil
}

// ChunkSize returns the read buffer size for a file of the given size: the file size
// itself, but never below the floor and never above the cap.
func ChunkSize(size int64) int {
	switch {
	case size < minChunkSize:
		return minChunkSize
	case size > maxChunkSize:
		return maxChunkSize
	default:
		return int(size)
	}
}

// Sum streams r through a fresh digest in chunks and returns the hex encoded value and the
// number of bytes read. On a read error the partial digest is discarded.
func Sum(newDigest func() hash.Hash, r io.Reader, size int64) (string, int64, error) {
	d := newDigest()
	buf := make([]byte, ChunkSize(size))

	var read int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			d.Write(buf[:n])
			read += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", read, err
		}
	}
	return hex.EncodeToString(d.Sum(nil)), read, nil
}
