package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreConcreteScenarios(t *testing.T) {
	cases := []struct {
		name             string
		secret, guess    Code
		correctNumbers   int
		correctPositions int
	}{
		{"single overlap", Code{0, 1, 3, 5}, Code{0, 2, 4, 6}, 1, 1},
		{"duplicates with multiplicity", Code{2, 2, 5, 5}, Code{2, 5, 2, 5}, 4, 2},
		{"exact match", Code{1, 2, 3, 4}, Code{1, 2, 3, 4}, 4, 4},
		{"all incorrect", Code{0, 0, 0, 0}, Code{1, 2, 3, 4}, 0, 0},
		{"easy length", Code{7, 0, 7}, Code{7, 7, 0}, 3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nums, pos, err := Score(tc.secret, tc.guess)
			require.NoError(t, err)
			assert.Equal(t, tc.correctNumbers, nums, "correct_numbers")
			assert.Equal(t, tc.correctPositions, pos, "correct_positions")
		})
	}
}

func TestScoreRejectsBadLengths(t *testing.T) {
	_, _, err := Score(Code{}, Code{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = Score(Code{1, 2, 3}, Code{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = Score(Code{1, 2, 3, 4}, Code{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScoreOutOfRangeDigits(t *testing.T) {
	// 9 is outside the alphabet: it never contributes to the value tally,
	// but a positional match still counts.
	nums, pos, err := Score(Code{9, 1, 2, 3}, Code{9, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, nums)
	assert.Equal(t, 4, pos)
}

func TestScoreSelfIsPerfect(t *testing.T) {
	for _, secret := range []Code{{0, 1, 2}, {7, 7, 7, 7}, {3, 1, 4, 1, 5}} {
		nums, pos, err := Score(secret, secret)
		require.NoError(t, err)
		assert.Equal(t, len(secret), nums)
		assert.Equal(t, len(secret), pos)
		assert.True(t, IsWin(secret, secret))
	}
}

func TestScoreBoundsAndSymmetry(t *testing.T) {
	pairs := []struct{ a, b Code }{
		{Code{0, 1, 2, 3}, Code{3, 2, 1, 0}},
		{Code{5, 5, 5, 5}, Code{5, 0, 5, 0}},
		{Code{1, 2, 3}, Code{4, 5, 6}},
		{Code{6, 6, 0, 1, 2}, Code{6, 0, 6, 1, 3}},
	}
	for _, p := range pairs {
		nums, pos, err := Score(p.a, p.b)
		require.NoError(t, err)
		assert.LessOrEqual(t, pos, nums, "positions never exceed value overlap")
		assert.LessOrEqual(t, nums, len(p.a))

		// Value overlap and positional equality are both symmetric.
		rnums, rpos, err := Score(p.b, p.a)
		require.NoError(t, err)
		assert.Equal(t, nums, rnums)
		assert.Equal(t, pos, rpos)
	}
}

func TestIsWinMatchesFullPositionalScore(t *testing.T) {
	pairs := []struct{ secret, guess Code }{
		{Code{1, 2, 3, 4}, Code{1, 2, 3, 4}},
		{Code{1, 2, 3, 4}, Code{1, 2, 4, 3}},
		{Code{0, 0, 0}, Code{0, 0, 0}},
	}
	for _, p := range pairs {
		_, pos, err := Score(p.secret, p.guess)
		require.NoError(t, err)
		assert.Equal(t, pos == len(p.secret), IsWin(p.secret, p.guess))
	}

	// Degenerate inputs are never a win.
	assert.False(t, IsWin(Code{}, Code{}))
	assert.False(t, IsWin(Code{1, 2}, Code{1, 2, 3}))
}
