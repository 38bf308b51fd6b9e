package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/subprofiler/internal/profiler"
)

func TestRegistrable(t *testing.T) {
	got := Registrable([]string{
		"ab12.cdn.example.co.uk",
		"xy99.cdn.example.co.uk",
		"mail.example.com",
		"MAIL.example.com.",
		"co.uk",
	})

	assert.Equal(t, []RegistrableCount{
		{Domain: "example.co.uk", Count: 2},
		{Domain: "example.com", Count: 2},
		{Domain: unknownDomain, Count: 1},
	}, got)
}

func TestRegistrable_Empty(t *testing.T) {
	assert.Empty(t, Registrable(nil))
}

func TestMarkdown(t *testing.T) {
	domains := []string{"ab12.example.com", "xy99.example.com", "mail.example.com", "example.com"}
	p, err := profiler.ProfileGroup(profiler.NewDomainGroup("7", domains, profiler.WithEntropyLimit(1.0)))
	require.NoError(t, err)

	md := Markdown(p, domains)

	assert.Contains(t, md, "# Group 7\n")
	assert.Contains(t, md, "Entropy limit: **1.00** bits")
	assert.Contains(t, md, "```\n^[1-29a-bx-y]{4,4}\\.\n```")
	assert.Contains(t, md, "## High entropy labels (2)")
	assert.Contains(t, md, "| `ab12` | 4 | 2.00 |")
	assert.Contains(t, md, "| `xy99` | 4 | 1.50 |")
	assert.Contains(t, md, "## Low entropy labels (1)")
	assert.Contains(t, md, "| `mail` | 4 | 2.00 |")
	assert.Contains(t, md, "1 domain(s) with fewer than three labels were skipped.")
	assert.Contains(t, md, "| 4 | 2 |")
	assert.Contains(t, md, "- Alphanumeric: `129abxy`")
	assert.Contains(t, md, "- Dash: no")
	assert.Contains(t, md, "- Not in rule: none")
	assert.Contains(t, md, "| example.com | 4 |")
}

func TestMarkdown_NoRule(t *testing.T) {
	domains := []string{"www.example.com", "mail.example.com"}
	p, err := profiler.ProfileGroup(profiler.NewDomainGroup("2", domains))
	require.ErrorIs(t, err, profiler.ErrEmptyCluster)

	md := Markdown(p, domains)

	assert.Contains(t, md, "_No rule generated._")
	assert.Contains(t, md, "## High entropy labels (0)\n\n_None._")
	assert.NotContains(t, md, "## Length histogram")
	assert.NotContains(t, md, "## Characters")
}

func TestMarkdown_SpecialCharacters(t *testing.T) {
	p := &profiler.Profile{
		GroupID:      "9",
		EntropyLimit: 2.5,
		HighEntropy:  []string{"a_b|9"},
		Lengths:      profiler.LengthHistogram{5: 1},
		Chars:        []rune("9_ab|"),
		Regex:        `^[9a-b]{5,5}\.`,
	}

	md := Markdown(p, nil)

	assert.Contains(t, md, "- Not in rule: `_|`")
	assert.Contains(t, md, "| `a_b\\|9` | 5 | 2.32 |")
	assert.NotContains(t, md, "## Registrable domains")
}
