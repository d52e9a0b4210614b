// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer used for ephemeral deployments,
// development, and tests.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex; all mutations run under the write lock,
//     so a session's transition and the scoreboard update are observed
//     together.
//   - Get returns deep copies so readers never see a partially-applied
//     transition.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/secretsrc"
	"github.com/robalobadob/mastermind/internal/stats"
)

type memory struct {
	mu      sync.RWMutex
	games   map[string]*game.Game
	secrets secretsrc.Source
	board   *stats.Scoreboard
}

// NewMemoryStore constructs an in-memory Store drawing secrets from src.
func NewMemoryStore(src secretsrc.Source) Store {
	return &memory{
		games:   make(map[string]*game.Game),
		secrets: src,
		board:   stats.NewScoreboard(),
	}
}

func (m *memory) Create(ctx context.Context, difficulty game.Difficulty) (*game.Game, error) {
	secret := m.secrets.Code(ctx, difficulty.Length())
	g := game.New(uuid.NewString(), secret, difficulty)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	m.board.RecordStarted(difficulty)
	return g.Clone(), nil
}

func (m *memory) Get(_ context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g.Clone(), nil
}

func (m *memory) Guess(_ context.Context, id string, guess game.Code) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}

	entry, err := g.ApplyGuess(guess)
	if err != nil {
		return nil, err
	}
	// entry is nil when the game was already over: plain no-op read.
	if entry != nil && g.Status.Terminal() {
		m.board.RecordOutcome(g.Difficulty, g.Status == game.StatusWon, g.GuessesUsed())
	}
	return g.Clone(), nil
}

func (m *memory) Hint(_ context.Context, id string) (game.Hint, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return game.Hint{}, 0, ErrNotFound
	}
	h, err := g.RevealHint()
	if err != nil {
		return game.Hint{}, 0, err
	}
	return h, g.AttemptsLeft, nil
}

func (m *memory) Stats(_ context.Context) (stats.Snapshot, error) {
	return m.board.Snapshot(), nil
}

func (m *memory) ResetStats(_ context.Context) error {
	m.board.Reset()
	return nil
}
