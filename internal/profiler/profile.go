package profiler

import (
	"sort"
	"unicode/utf8"
)

// LengthHistogram maps a label length (in characters) to how many labels
// have that length.
type LengthHistogram map[int]int

// Bounds returns the smallest and largest lengths present. ok is false for
// an empty histogram.
func (h LengthHistogram) Bounds() (minLen, maxLen int, ok bool) {
	first := true
	for l := range h {
		if first {
			minLen, maxLen = l, l
			first = false
			continue
		}
		if l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}
	return minLen, maxLen, !first
}

// Keys returns the lengths present, ascending.
func (h LengthHistogram) Keys() []int {
	keys := make([]int, 0, len(h))
	for l := range h {
		keys = append(keys, l)
	}
	sort.Ints(keys)
	return keys
}

// BuildProfile summarizes the high-entropy cluster: how many labels there
// are of each length and which characters they use, sorted by code point.
func BuildProfile(high []string) (LengthHistogram, []rune, error) {
	if len(high) == 0 {
		return nil, nil, ErrEmptyCluster
	}

	lengths := make(LengthHistogram)
	seen := make(map[rune]struct{})
	for _, label := range high {
		lengths[utf8.RuneCountInString(label)]++
		for _, r := range label {
			seen[r] = struct{}{}
		}
	}

	chars := make([]rune, 0, len(seen))
	for r := range seen {
		chars = append(chars, r)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	return lengths, chars, nil
}
