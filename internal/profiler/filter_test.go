package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRule_LazyQuantifier(t *testing.T) {
	re, err := CompileRule(`^[a-c]{,4}?\.`)
	require.NoError(t, err)

	assert.Equal(t, `^[a-c]{0,4}?\.`, re.String())
	assert.True(t, re.MatchString("abc.example.com"))
	assert.True(t, re.MatchString(".example.com"))
	assert.False(t, re.MatchString("abcab.example.com"))
}

func TestCompileRule_Invalid(t *testing.T) {
	_, err := CompileRule(`^[a-c`)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestFilter_Scenario(t *testing.T) {
	domains := []string{"ab12.example.com", "xy99.example.com", "mail.example.com", "ab12.example.com"}

	matched, err := Filter(`^[1-29a-bx-y]{4,4}\.`, domains)
	require.NoError(t, err)

	assert.Equal(t, []string{"ab12.example.com", "xy99.example.com"}, matched)
}

func TestFilter_MatchesWholeDomainFromStart(t *testing.T) {
	domains := []string{
		"a1b2.example.com",
		"www.a1b2.example.com", // label appears later, anchor rejects it
		"a1b2c.example.com",    // too long
		"example.com",
	}

	matched, err := Filter(`^[1-2a-b]{2,4}\.`, domains)
	require.NoError(t, err)

	assert.Equal(t, []string{"a1b2.example.com"}, matched)
}

func TestFilter_NoMatches(t *testing.T) {
	matched, err := Filter(`^[0-9]{8,8}\.`, []string{"mail.example.com"})
	require.NoError(t, err)
	assert.Empty(t, matched)
}
