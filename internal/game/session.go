// internal/game/session.go
//
// State machine for a single game session.
// Responsibilities:
//   - Create new sessions from a difficulty preset and a secret.
//   - Validate and apply guesses: score, append history, spend an attempt.
//   - Track state transitions: in_progress → won/lost (terminal, absorbing).
//   - One-time hint: reveal a single secret position at random.
//
// Concurrency is owned by the store; methods here assume the caller
// serializes mutations per session.

package game

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	// ErrLengthMismatch rejects a guess whose length differs from the
	// session's secret. The session is left completely unchanged.
	ErrLengthMismatch = errors.New("guess length does not match this game")

	// ErrGameFinished rejects a hint request on a terminal session.
	ErrGameFinished = errors.New("game finished")

	// ErrHintAlreadyUsed rejects a second hint request.
	ErrHintAlreadyUsed = errors.New("hint already used for this game")
)

// New constructs a fresh in-progress session with the given identity and
// secret. The secret length must match the difficulty preset; that is the
// store's contract with the secret source.
func New(id string, secret Code, difficulty Difficulty) *Game {
	now := time.Now().UTC()
	return &Game{
		ID:            id,
		Secret:        secret.Clone(),
		Difficulty:    difficulty,
		AttemptsTotal: difficulty.Attempts(),
		AttemptsLeft:  difficulty.Attempts(),
		Status:        StatusInProgress,
		History:       []GuessEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ApplyGuess runs the full guess transition.
//
// Terminal sessions are a deliberate no-op: the call returns (nil, nil)
// without touching history, attempts, or status, so retried requests
// after game over are idempotent.
//
// For an in-progress session:
//  1. A length-mismatched guess fails with ErrLengthMismatch before any
//     mutation.
//  2. The guess is scored, a feedback message is built, and a history
//     entry is appended.
//  3. One attempt is spent; the session transitions to won on an exact
//     match, to lost when the budget hits zero, else stays in_progress.
//
// The returned entry is the one just appended.
func (g *Game) ApplyGuess(guess Code) (*GuessEntry, error) {
	if g.Status.Terminal() {
		return nil, nil
	}
	if len(guess) != len(g.Secret) {
		return nil, ErrLengthMismatch
	}

	correctNumbers, correctPositions, err := Score(g.Secret, guess)
	if err != nil {
		// Lengths were checked above; the engine rejecting here means a
		// session was built with an empty secret, which is a bug.
		panic(fmt.Sprintf("game %s: scoring failed: %v", g.ID, err))
	}

	msg := "all incorrect"
	if correctNumbers != 0 || correctPositions != 0 {
		msg = fmt.Sprintf("%d correct number(s) and %d correct location(s)", correctNumbers, correctPositions)
	}

	now := time.Now().UTC()
	g.History = append(g.History, GuessEntry{
		Guess:            guess.Clone(),
		CorrectNumbers:   correctNumbers,
		CorrectPositions: correctPositions,
		Message:          msg,
		Timestamp:        now,
	})
	g.AttemptsLeft--

	if IsWin(g.Secret, guess) {
		g.Status = StatusWon
	} else if g.AttemptsLeft <= 0 {
		g.Status = StatusLost
	}
	g.UpdatedAt = now

	return &g.History[len(g.History)-1], nil
}

// RevealHint discloses one not-yet-revealed secret position, chosen
// uniformly at random. Only one hint is ever granted per session, and
// only while the game is in progress. Attempts, history, and status are
// untouched.
func (g *Game) RevealHint() (Hint, error) {
	if g.Status.Terminal() {
		return Hint{}, ErrGameFinished
	}
	if g.HintUsed || len(g.RevealedPositions) >= len(g.Secret) {
		return Hint{}, ErrHintAlreadyUsed
	}

	// Materialize the unrevealed candidates and draw one; no rejection
	// loop needed for codes this short.
	revealed := make(map[int]bool, len(g.RevealedPositions))
	for _, p := range g.RevealedPositions {
		revealed[p] = true
	}
	candidates := make([]int, 0, len(g.Secret))
	for i := range g.Secret {
		if !revealed[i] {
			candidates = append(candidates, i)
		}
	}
	pos := candidates[randIndex(len(candidates))]

	g.HintUsed = true
	g.RevealedPositions = append(g.RevealedPositions, pos)
	g.UpdatedAt = time.Now().UTC()

	return Hint{Position: pos, Digit: g.Secret[pos]}, nil
}

// randIndex returns a uniform value in [0, n) from crypto/rand.
func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the platform entropy source is broken.
		panic(err)
	}
	return int(v.Int64())
}
