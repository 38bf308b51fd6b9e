// Package profiler turns a group of domains into a regular expression that
// matches the shape of its machine-generated looking subdomains.
//
// The pipeline is: Cluster the leading labels by entropy, BuildProfile over
// the high-entropy cluster, then Synthesize a pattern from the profile.
// ProfileGroup runs all three for one DomainGroup.
package profiler

import (
	"sort"
	"strings"

	"github.com/asteroid-belt/subprofiler/internal/entropy"
)

// DefaultEntropyLimit is the entropy threshold, in bits per character, above
// which a leading label counts as high-entropy.
const DefaultEntropyLimit = 2.5

// Clusters holds the result of classifying a set of domains.
type Clusters struct {
	High    []string // leading labels with entropy above the limit
	Low     []string // letter-only labels and labels at or below the limit
	Skipped int      // domains with no subdomain (two labels or fewer)
}

// LeadingLabel returns the first dot-separated label of domain. The second
// return value is false when domain has two labels or fewer, i.e. there is
// no subdomain beyond name.tld.
func LeadingLabel(domain string) (string, bool) {
	parts := strings.Split(domain, ".")
	if len(parts) <= 2 {
		return "", false
	}
	return parts[0], true
}

// IsAlphaLabel reports whether label, with hyphens removed, is a non-empty
// run of ASCII letters.
func IsAlphaLabel(label string) bool {
	stripped := strings.ReplaceAll(label, "-", "")
	if stripped == "" {
		return false
	}
	for i := 0; i < len(stripped); i++ {
		c := stripped[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// Classify reports whether a single leading label is high-entropy under
// limit. Letter-only labels are never high-entropy.
func Classify(label string, limit float64) bool {
	if IsAlphaLabel(label) {
		return false
	}
	return entropy.Shannon(label) > limit
}

// SortedUnique returns a sorted copy of domains with duplicates removed.
func SortedUnique(domains []string) []string {
	seen := make(map[string]struct{}, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Cluster splits the leading labels of domains into high- and low-entropy
// buckets. domains is treated as a set and visited in sorted order so the
// output is deterministic.
func Cluster(domains []string, limit float64) Clusters {
	var c Clusters
	for _, domain := range SortedUnique(domains) {
		label, ok := LeadingLabel(domain)
		if !ok {
			c.Skipped++
			continue
		}
		if Classify(label, limit) {
			c.High = append(c.High, label)
		} else {
			c.Low = append(c.Low, label)
		}
	}
	return c
}
