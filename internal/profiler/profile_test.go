package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProfile(t *testing.T) {
	lengths, chars, err := BuildProfile([]string{"ab12", "xy99"})
	require.NoError(t, err)

	assert.Equal(t, LengthHistogram{4: 2}, lengths)
	assert.Equal(t, []rune{'1', '2', '9', 'a', 'b', 'x', 'y'}, chars)
}

func TestBuildProfile_MixedLengths(t *testing.T) {
	lengths, chars, err := BuildProfile([]string{"a1", "b22", "c333", "d4"})
	require.NoError(t, err)

	assert.Equal(t, LengthHistogram{2: 2, 3: 1, 4: 1}, lengths)
	assert.Equal(t, []rune("1234abcd"), chars)
}

func TestBuildProfile_CountsRunes(t *testing.T) {
	lengths, chars, err := BuildProfile([]string{"ñ1"})
	require.NoError(t, err)

	assert.Equal(t, LengthHistogram{2: 1}, lengths)
	assert.Equal(t, []rune{'1', 'ñ'}, chars)
}

func TestBuildProfile_Empty(t *testing.T) {
	lengths, chars, err := BuildProfile(nil)

	assert.ErrorIs(t, err, ErrEmptyCluster)
	assert.Nil(t, lengths)
	assert.Nil(t, chars)
}

func TestLengthHistogram_Bounds(t *testing.T) {
	minLen, maxLen, ok := LengthHistogram{3: 1, 7: 4, 5: 2}.Bounds()
	assert.True(t, ok)
	assert.Equal(t, 3, minLen)
	assert.Equal(t, 7, maxLen)

	_, _, ok = LengthHistogram{}.Bounds()
	assert.False(t, ok)
}

func TestLengthHistogram_Keys(t *testing.T) {
	assert.Equal(t, []int{0, 4, 9}, LengthHistogram{9: 1, 0: 2, 4: 1}.Keys())
}
