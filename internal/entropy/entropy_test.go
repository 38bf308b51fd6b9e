package entropy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestShannon(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"empty", "", 0},
		{"single char", "a", 0},
		{"repeated char", "aaaa", 0},
		{"two distinct", "ab", 1},
		{"four distinct", "abcd", 2},
		{"uneven", "aab", -(2.0/3*math.Log2(2.0/3) + 1.0/3*math.Log2(1.0/3))},
		{"multibyte runes", "ññ", 0},
		{"mixed alnum", "ab12", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Shannon(tt.input), 1e-9)
		})
	}
}

func TestShannon_NeverNegativeZero(t *testing.T) {
	got := Shannon("zzzz")
	assert.False(t, math.Signbit(got), "expected +0, got %v", got)
}

func TestMax(t *testing.T) {
	assert.Equal(t, 0.0, Max(""))
	assert.Equal(t, 0.0, Max("aaa"))
	assert.Equal(t, 1.0, Max("abab"))
	assert.Equal(t, 3.0, Max("abcdefgh"))
}

// Entropy is bounded by zero and log2 of the distinct character count.
func TestShannonBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")

		h := Shannon(s)
		upper := Max(s)

		if h < 0 {
			t.Fatalf("Shannon(%q) = %v, want >= 0", s, h)
		}
		if h > upper+1e-9 {
			t.Fatalf("Shannon(%q) = %v, want <= %v", s, h, upper)
		}
	})
}

func TestShannonPermutationInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		runes := rapid.SliceOf(rapid.RuneFrom([]rune("abc123-xyz"))).Draw(t, "runes")
		perm := rapid.Permutation(runes).Draw(t, "perm")

		assert.InDelta(t, Shannon(string(runes)), Shannon(string(perm)), 1e-9)
	})
}
