package profiler

import (
	"fmt"
	"sort"
	"strings"
)

// CharPartition splits a character set the way the synthesizer sees it.
type CharPartition struct {
	HasDash bool
	// Special holds characters outside [0-9A-Za-z] other than '-'. They are
	// collected for reporting but never emitted into the character class.
	Special []rune
	Alnum   []rune
}

func isASCIIAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Partition sorts chars into dash, special and alphanumeric groups. Special
// and Alnum come back sorted by code point.
func Partition(chars []rune) CharPartition {
	var p CharPartition
	seen := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}

		switch {
		case r == '-':
			p.HasDash = true
		case isASCIIAlnum(r):
			p.Alnum = append(p.Alnum, r)
		default:
			p.Special = append(p.Special, r)
		}
	}
	sort.Slice(p.Alnum, func(i, j int) bool { return p.Alnum[i] < p.Alnum[j] })
	sort.Slice(p.Special, func(i, j int) bool { return p.Special[i] < p.Special[j] })
	return p
}

// CompressRuns collapses runs of adjacent code points in sorted into
// "start-end" ranges. A run of one character stays a bare character.
func CompressRuns(sorted []rune) []string {
	var runs []string
	for i := 0; i < len(sorted); i++ {
		start := sorted[i]
		end := start
		for i+1 < len(sorted) && sorted[i+1]-end == 1 {
			end = sorted[i+1]
			i++
		}
		if start == end {
			runs = append(runs, string(start))
		} else {
			runs = append(runs, string(start)+"-"+string(end))
		}
	}
	return runs
}

// MaxRepeat is the largest repeat count the regexp package accepts.
const MaxRepeat = 1000

// LengthQuantifier builds the repetition quantifier for a histogram. Only
// the key range matters; gaps inside it are still accepted. A zero minimum
// gives the lazy "{,max}?" form.
func LengthQuantifier(lengths LengthHistogram) (string, error) {
	minLen, maxLen, ok := lengths.Bounds()
	if !ok {
		return "", ErrEmptyCluster
	}
	if maxLen > MaxRepeat {
		return "", fmt.Errorf("%w: %d > %d", ErrLengthLimit, maxLen, MaxRepeat)
	}
	if minLen == 0 {
		return fmt.Sprintf("{,%d}?", maxLen), nil
	}
	return fmt.Sprintf("{%d,%d}", minLen, maxLen), nil
}

// CharClass builds the bracketed character class for chars. A dash, when
// present, is placed last so it reads as a literal.
func CharClass(chars []rune) (string, error) {
	p := Partition(chars)
	if len(p.Alnum) == 0 && !p.HasDash {
		return "", ErrEmptyCharClass
	}

	var b strings.Builder
	b.WriteByte('[')
	for _, run := range CompressRuns(p.Alnum) {
		b.WriteString(run)
	}
	if p.HasDash {
		b.WriteByte('-')
	}
	b.WriteByte(']')
	return b.String(), nil
}

// Synthesize builds the anchored rule pattern for a profile: the character
// class, the length quantifier, then a literal dot.
func Synthesize(lengths LengthHistogram, chars []rune) (string, error) {
	quantifier, err := LengthQuantifier(lengths)
	if err != nil {
		return "", err
	}
	class, err := CharClass(chars)
	if err != nil {
		return "", err
	}
	return "^" + class + quantifier + `\.`, nil
}
