// internal/game/types.go
//
// Core type definitions for the Mastermind game engine.
// Defines:
//   - Code: an ordered sequence of digits (0–7).
//   - Status: lifecycle of a session (in_progress/won/lost).
//   - Difficulty: preset controlling code length and attempt budget.
//   - Game: state for a single in-progress or finished session.
//   - GuessEntry: one scored guess in a session's history.

package game

import "time"

// DigitRange is the size of the digit alphabet. Valid digits are 0..DigitRange-1.
const DigitRange = 8

// Code is an ordered sequence of digits. Both secrets and guesses are Codes;
// their length is fixed per session by the chosen difficulty.
type Code []int

// Clone returns an independent copy of the code.
func (c Code) Clone() Code {
	if c == nil {
		return nil
	}
	out := make(Code, len(c))
	copy(out, c)
	return out
}

// Equal reports whether two codes have the same digits in the same order.
func (c Code) Equal(other Code) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Status represents the lifecycle state of a game session.
// Possible values:
//   - "in_progress": the player may still submit guesses.
//   - "won":  a guess matched the secret exactly (terminal).
//   - "lost": the attempt budget ran out without a win (terminal).
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether the status is absorbing (won or lost).
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Difficulty selects the code length and attempt budget for a new session.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a raw string to a Difficulty.
// Unrecognized input falls back to medium rather than failing.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Length returns the secret/guess length for the difficulty.
func (d Difficulty) Length() int {
	switch d {
	case DifficultyEasy:
		return 3
	case DifficultyHard:
		return 5
	default:
		return 4
	}
}

// Attempts returns the total guess budget for the difficulty.
func (d Difficulty) Attempts() int {
	switch d {
	case DifficultyEasy:
		return 8
	case DifficultyHard:
		return 12
	default:
		return 10
	}
}

// GuessEntry records one accepted guess with the engine's feedback.
// History entries are append-only and never mutated.
type GuessEntry struct {
	Guess            Code      `json:"guess"`
	CorrectNumbers   int       `json:"correct_numbers"`
	CorrectPositions int       `json:"correct_positions"`
	Message          string    `json:"message"`
	Timestamp        time.Time `json:"timestamp"`
}

// Hint is the result of the one-time hint operation: one revealed
// position of the secret and the digit at that position.
type Hint struct {
	Position int `json:"position"`
	Digit    int `json:"digit"`
}

// Game holds the state of a single session.
type Game struct {
	ID                string       // Unique session identifier (UUID).
	Secret            Code         // The hidden code; exposed only once the game is over.
	Difficulty        Difficulty   // Fixed at creation; determines length and budget.
	AttemptsTotal     int          // Initial guess budget.
	AttemptsLeft      int          // Remaining guesses; frozen once terminal.
	Status            Status       // in_progress until a win or the budget runs out.
	History           []GuessEntry // All accepted guesses, in order.
	HintUsed          bool         // Set when the single hint is consumed.
	RevealedPositions []int        // Secret indices disclosed via hints.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// GuessesUsed reports how many guesses the session has consumed.
func (g *Game) GuessesUsed() int { return g.AttemptsTotal - g.AttemptsLeft }

// Clone returns a deep copy of the session so readers never observe
// a session mid-transition.
func (g *Game) Clone() *Game {
	out := *g
	out.Secret = g.Secret.Clone()
	out.History = make([]GuessEntry, len(g.History))
	for i, e := range g.History {
		out.History[i] = e
		out.History[i].Guess = e.Guess.Clone()
	}
	out.RevealedPositions = append([]int(nil), g.RevealedPositions...)
	return &out
}
