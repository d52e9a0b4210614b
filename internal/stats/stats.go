// internal/stats/stats.go
//
// Session-spanning scoreboard: win/loss counters, streaks, and per-difficulty
// tallies. One logical aggregate for the whole process, mutated exactly once
// per game start and once per terminal transition.
//
// The Scoreboard guards itself with a mutex so it is safe to share between
// the store and any reader.

package stats

import (
	"sync"

	"github.com/robalobadob/mastermind/internal/game"
)

// Counters is the raw scoreboard state. The SQLite backend persists the
// same shape in its single-row stats table.
type Counters struct {
	GamesStarted int `json:"games_started"`
	GamesWon     int `json:"games_won"`
	GamesLost    int `json:"games_lost"`

	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`

	TotalGuessesInWins int  `json:"total_guesses_in_wins"`
	FastestWinAttempts *int `json:"fastest_win_attempts"`

	EasyStarted   int `json:"easy_started"`
	MediumStarted int `json:"medium_started"`
	HardStarted   int `json:"hard_started"`

	EasyWon   int `json:"easy_won"`
	MediumWon int `json:"medium_won"`
	HardWon   int `json:"hard_won"`
}

// Snapshot is a read-only view of the counters plus derived values.
type Snapshot struct {
	Counters
	AverageGuessesToWin *float64 `json:"average_guesses_to_win"`
}

// RecordStarted bumps the started counters for one new game.
func (c *Counters) RecordStarted(d game.Difficulty) {
	c.GamesStarted++
	switch d {
	case game.DifficultyEasy:
		c.EasyStarted++
	case game.DifficultyHard:
		c.HardStarted++
	default:
		c.MediumStarted++
	}
}

// RecordOutcome applies one terminal transition. Callers must invoke it
// exactly once per game, at the moment the game becomes won or lost.
func (c *Counters) RecordOutcome(d game.Difficulty, won bool, guessesUsed int) {
	if !won {
		c.GamesLost++
		c.CurrentStreak = 0
		return
	}

	c.GamesWon++
	switch d {
	case game.DifficultyEasy:
		c.EasyWon++
	case game.DifficultyHard:
		c.HardWon++
	default:
		c.MediumWon++
	}

	c.CurrentStreak++
	if c.CurrentStreak > c.BestStreak {
		c.BestStreak = c.CurrentStreak
	}

	c.TotalGuessesInWins += guessesUsed
	if c.FastestWinAttempts == nil || guessesUsed < *c.FastestWinAttempts {
		v := guessesUsed
		c.FastestWinAttempts = &v
	}
}

// Snapshot copies the counters and fills in derived fields.
func (c *Counters) Snapshot() Snapshot {
	out := Snapshot{Counters: *c}
	if c.FastestWinAttempts != nil {
		v := *c.FastestWinAttempts
		out.FastestWinAttempts = &v
	}
	if c.GamesWon > 0 {
		avg := float64(c.TotalGuessesInWins) / float64(c.GamesWon)
		out.AverageGuessesToWin = &avg
	}
	return out
}

// Reset zeroes every counter and unsets the nullable fields.
func (c *Counters) Reset() { *c = Counters{} }

// Scoreboard is a mutex-guarded Counters for in-memory deployments.
type Scoreboard struct {
	mu sync.Mutex
	c  Counters
}

// NewScoreboard returns an all-zero scoreboard.
func NewScoreboard() *Scoreboard { return &Scoreboard{} }

func (s *Scoreboard) RecordStarted(d game.Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.RecordStarted(d)
}

func (s *Scoreboard) RecordOutcome(d game.Difficulty, won bool, guessesUsed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.RecordOutcome(d, won, guessesUsed)
}

func (s *Scoreboard) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Snapshot()
}

func (s *Scoreboard) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Reset()
}
