// Package nanoid generates the short random ids used for stub records.
package nanoid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is digits plus ASCII letters; ids stay URL-safe without escaping.
	Alphabet       = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	PrimaryKeySize = 16
)

// PrimaryKey returns a generator of primary keys, optionally with a custom size.
func PrimaryKey(l ...int) func() string {
	size := PrimaryKeySize
	if len(l) > 0 && l[0] > 0 {
		size = l[0]
	}
	return func() string {
		return gonanoid.MustGenerate(Alphabet, size)
	}
}

// IsPrimaryKey reports whether id has the shape PrimaryKey produces.
func IsPrimaryKey(id string) bool {
	if len(id) != PrimaryKeySize {
		return false
	}
	for _, r := range id {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
