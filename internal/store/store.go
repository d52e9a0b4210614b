// internal/store/store.go
//
// Store is the persistence boundary for game sessions and the scoreboard.
// Implementations may be backed by memory (memory.go) or SQLite (sqlite.go);
// both run the exact same state machine from internal/game; only where the
// state lives differs.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/stats"
)

// ErrNotFound is returned for an unknown session id.
var ErrNotFound = errors.New("game not found")

// Store owns the session map and the scoreboard. All mutating operations
// are serialized so concurrent guesses against one session apply
// one-at-a-time with no lost updates.
type Store interface {
	// Create starts a new session: fresh id, secret from the secret
	// source at the difficulty's length, and a started-count bump on the
	// scoreboard, all atomically: no session exists without its
	// started event.
	Create(ctx context.Context, difficulty game.Difficulty) (*game.Game, error)

	// Get returns a consistent snapshot of a session or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Guess applies the guess transition and returns the updated session.
	// A terminal transition records the outcome on the scoreboard exactly
	// once, within the same critical section.
	Guess(ctx context.Context, id string, guess game.Code) (*game.Game, error)

	// Hint reveals one secret position (one-time per session). The
	// returned attempts count is captured in the same critical section
	// as the reveal, so it is consistent with the hint moment.
	Hint(ctx context.Context, id string) (hint game.Hint, attemptsLeft int, err error)

	// Stats returns the scoreboard snapshot.
	Stats(ctx context.Context) (stats.Snapshot, error)

	// ResetStats zeroes the scoreboard.
	ResetStats(ctx context.Context) error
}
