// internal/game/engine.go
//
// Pure scoring engine for a single guess against a secret.
// Responsibilities:
//   - Score computes the two feedback numbers for a guess.
//   - IsWin decides whether a guess matches the secret exactly.
//
// Notes:
//   - No state, no randomness: same inputs always give the same outputs.
//   - correct_numbers includes the positionally correct digits; callers
//     wanting "correct but misplaced" subtract correct_positions themselves.

package game

import "errors"

// ErrInvalidInput is returned when the secret and guess are empty or of
// different lengths. The engine never truncates or pads.
var ErrInvalidInput = errors.New("secret and guess must be the same non-zero length")

// Score computes feedback for a guess.
//
// Returns:
//   - correctNumbers: total digit-value overlap between secret and guess,
//     duplicates counted with multiplicity (per-value minimum of the two
//     digit counts). Digits outside [0, DigitRange) are ignored when
//     tallying value overlap but still compared positionally.
//   - correctPositions: number of indices where secret and guess agree.
func Score(secret, guess Code) (correctNumbers, correctPositions int, err error) {
	n := len(secret)
	if n == 0 || len(guess) != n {
		return 0, 0, ErrInvalidInput
	}

	// Exact position matches.
	for i := 0; i < n; i++ {
		if secret[i] == guess[i] {
			correctPositions++
		}
	}

	// Digit frequency for each side, restricted to the declared alphabet.
	var secretCounts, guessCounts [DigitRange]int
	for _, d := range secret {
		if d >= 0 && d < DigitRange {
			secretCounts[d]++
		}
	}
	for _, d := range guess {
		if d >= 0 && d < DigitRange {
			guessCounts[d]++
		}
	}

	// Overlap is the sum of the smaller count per digit value.
	for v := 0; v < DigitRange; v++ {
		if secretCounts[v] < guessCounts[v] {
			correctNumbers += secretCounts[v]
		} else {
			correctNumbers += guessCounts[v]
		}
	}

	return correctNumbers, correctPositions, nil
}

// IsWin reports whether the guess matches the secret at every position.
// Mismatched or zero lengths are never a win.
func IsWin(secret, guess Code) bool {
	if len(secret) == 0 || len(secret) != len(guess) {
		return false
	}
	return secret.Equal(guess)
}
