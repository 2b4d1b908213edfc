package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	ConfigHash  Hash
	CatalogHash Hash
)

// Constructors
func NewConfigHash(data []byte) ConfigHash   { return ConfigHash(NewHash(data)) }
func NewCatalogHash(data []byte) CatalogHash { return CatalogHash(NewHash(data)) }

// String conversions
func (h ConfigHash) String() string  { return Hash(h).String() }
func (h CatalogHash) String() string { return Hash(h).String() }

// ComputeFieldHash builds a stable hash over a key/value map by walking the
// keys in sorted order. Used for configuration snapshots, where map iteration
// order must never leak into the fingerprint.
func ComputeFieldHash(fields map[string]interface{}) Hash {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString(fmt.Sprintf("%v", fields[key]))
	}

	return NewHash([]byte(data.String()))
}
