// Package entropy scores strings by the Shannon entropy of their
// character distribution.
package entropy

import (
	"math"
	"unicode/utf8"
)

// Shannon returns the base-2 Shannon entropy of s in bits per character.
// Characters are runes, so a multi-byte character counts once.
// The empty string scores 0.
func Shannon(s string) float64 {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return 0
	}

	counts := make(map[rune]int)
	for _, r := range s {
		counts[r]++
	}

	total := float64(n)
	var h float64
	for _, count := range counts {
		p := float64(count) / total
		h -= p * math.Log2(p)
	}

	// A single distinct character yields -0 above.
	if h <= 0 {
		return 0
	}
	return h
}

// Max returns the upper bound on Shannon(s): log2 of the number of
// distinct characters in s.
func Max(s string) float64 {
	distinct := make(map[rune]struct{})
	for _, r := range s {
		distinct[r] = struct{}{}
	}
	if len(distinct) <= 1 {
		return 0
	}
	return math.Log2(float64(len(distinct)))
}
