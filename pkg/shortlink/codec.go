// Package shortlink implements the base62 codec behind short shareable
// recipe URLs. The codec is prefix-agnostic: the "r-" namespace marker is
// applied and stripped by callers.
package shortlink

import (
	"errors"
	"strings"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = uint64(len(alphabet))

// Prefix namespaces recipe short codes in shareable URLs.
const Prefix = "r-"

var ErrInvalidShortCode = errors.New("invalid short code")

// Encode maps a non-negative identifier to its base62 representation.
// Encode(0) is the first alphabet symbol, never an empty string.
func Encode(n uint64) string {
	if n == 0 {
		return alphabet[:1]
	}
	buf := make([]byte, 0, 11)
	for n > 0 {
		buf = append(buf, alphabet[n%base])
		n /= base
	}
	// remainders come out least-significant first
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Decode is the inverse of Encode. Any character outside the alphabet,
// or an empty input, yields ErrInvalidShortCode.
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, ErrInvalidShortCode
	}
	var n uint64
	for _, c := range s {
		idx := strings.IndexRune(alphabet, c)
		if idx < 0 {
			return 0, ErrInvalidShortCode
		}
		n = n*base + uint64(idx)
	}
	return n, nil
}

// StripPrefix removes the namespace marker when present. Codes arriving
// without the marker are passed through unchanged.
func StripPrefix(code string) string {
	return strings.TrimPrefix(code, Prefix)
}
