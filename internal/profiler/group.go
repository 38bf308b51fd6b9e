package profiler

import (
	"fmt"
)

// DomainGroup is the set of domains belonging to one group, ready to be
// profiled. Build one with NewDomainGroup.
type DomainGroup struct {
	ID           string
	Domains      []string // sorted, deduplicated
	EntropyLimit float64
}

// Option configures a DomainGroup.
type Option func(*DomainGroup)

// WithEntropyLimit overrides DefaultEntropyLimit.
func WithEntropyLimit(limit float64) Option {
	return func(g *DomainGroup) { g.EntropyLimit = limit }
}

// NewDomainGroup builds a group from a store row. Duplicate domains collapse
// and the rest are sorted.
func NewDomainGroup(id string, domains []string, opts ...Option) DomainGroup {
	g := DomainGroup{
		ID:           id,
		Domains:      SortedUnique(domains),
		EntropyLimit: DefaultEntropyLimit,
	}
	for _, o := range opts {
		o(&g)
	}
	return g
}

// Profile is the outcome of profiling one group.
type Profile struct {
	GroupID      string
	EntropyLimit float64

	HighEntropy []string
	LowEntropy  []string
	Skipped     int

	Lengths LengthHistogram
	Chars   []rune

	// Regex is empty when no pattern could be generated.
	Regex string
}

// Partition returns the character partition of the high-entropy cluster.
func (p *Profile) Partition() CharPartition {
	return Partition(p.Chars)
}

// ProfileGroup clusters the group's domains, profiles the high-entropy
// cluster and synthesizes its pattern.
//
// When no pattern can be generated the returned Profile still carries the
// clusters, and the error wraps ErrEmptyCluster or ErrEmptyCharClass.
func ProfileGroup(g DomainGroup) (*Profile, error) {
	clusters := Cluster(g.Domains, g.EntropyLimit)

	p := &Profile{
		GroupID:      g.ID,
		EntropyLimit: g.EntropyLimit,
		HighEntropy:  clusters.High,
		LowEntropy:   clusters.Low,
		Skipped:      clusters.Skipped,
	}

	lengths, chars, err := BuildProfile(clusters.High)
	if err != nil {
		return p, fmt.Errorf("group %s: %w", g.ID, err)
	}
	p.Lengths = lengths
	p.Chars = chars

	regex, err := Synthesize(lengths, chars)
	if err != nil {
		return p, fmt.Errorf("group %s: %w", g.ID, err)
	}
	p.Regex = regex

	return p, nil
}
