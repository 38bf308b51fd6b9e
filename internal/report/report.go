// Package report renders a group profile as a markdown document.
package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/asteroid-belt/subprofiler/internal/entropy"
	"github.com/asteroid-belt/subprofiler/internal/profiler"
)

// unknownDomain collects names with no registrable domain (bare suffixes,
// single labels, IP addresses).
const unknownDomain = "(unknown)"

// RegistrableCount is one eTLD+1 with the number of names under it.
type RegistrableCount struct {
	Domain string
	Count  int
}

// Registrable groups names by their effective TLD plus one label, most
// common first.
func Registrable(domains []string) []RegistrableCount {
	counts := make(map[string]int)
	for _, name := range profiler.SortedUnique(domains) {
		root, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(strings.TrimSuffix(name, ".")))
		if err != nil {
			root = unknownDomain
		}
		counts[root]++
	}

	out := make([]RegistrableCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, RegistrableCount{Domain: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Domain < out[j].Domain
	})
	return out
}

// Markdown builds the report for p. domains are the group's source names,
// used for the registrable domain section.
func Markdown(p *profiler.Profile, domains []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Group %s\n\n", p.GroupID)
	fmt.Fprintf(&b, "Entropy limit: **%.2f** bits\n\n", p.EntropyLimit)

	b.WriteString("## Rule\n\n")
	if p.Regex != "" {
		fmt.Fprintf(&b, "```\n%s\n```\n\n", p.Regex)
	} else {
		b.WriteString("_No rule generated._\n\n")
	}

	writeLabels(&b, "High entropy labels", p.HighEntropy)
	writeLabels(&b, "Low entropy labels", p.LowEntropy)
	if p.Skipped > 0 {
		fmt.Fprintf(&b, "%d domain(s) with fewer than three labels were skipped.\n\n", p.Skipped)
	}

	if len(p.Lengths) > 0 {
		b.WriteString("## Length histogram\n\n| Length | Count |\n|---:|---:|\n")
		for _, l := range p.Lengths.Keys() {
			fmt.Fprintf(&b, "| %d | %d |\n", l, p.Lengths[l])
		}
		b.WriteString("\n")
	}

	if len(p.Chars) > 0 {
		part := p.Partition()
		b.WriteString("## Characters\n\n")
		fmt.Fprintf(&b, "- Alphanumeric: `%s`\n", string(part.Alnum))
		fmt.Fprintf(&b, "- Dash: %s\n", yesNo(part.HasDash))
		if len(part.Special) > 0 {
			fmt.Fprintf(&b, "- Not in rule: `%s`\n", string(part.Special))
		} else {
			b.WriteString("- Not in rule: none\n")
		}
		b.WriteString("\n")
	}

	if roots := Registrable(domains); len(roots) > 0 {
		b.WriteString("## Registrable domains\n\n| Domain | Names |\n|---|---:|\n")
		for _, r := range roots {
			fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(r.Domain), r.Count)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeLabels(b *strings.Builder, title string, labels []string) {
	fmt.Fprintf(b, "## %s (%d)\n\n", title, len(labels))
	if len(labels) == 0 {
		b.WriteString("_None._\n\n")
		return
	}
	b.WriteString("| Label | Length | Entropy |\n|---|---:|---:|\n")
	for _, l := range labels {
		fmt.Fprintf(b, "| `%s` | %d | %.2f |\n", escapeCell(l), len([]rune(l)), entropy.Shannon(l))
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
