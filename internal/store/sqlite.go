// internal/store/sqlite.go
//
// SQLite-backed implementation of the Store interface.
// Responsibilities:
//   - Persist sessions in the games/guesses tables and the scoreboard in
//     the single-row stats table (id=1, created lazily).
//   - Rebuild a game.Game from rows, run the exact same transition logic
//     as the memory store, then write the result back. One transaction
//     per mutation, so a terminal transition and its scoreboard update
//     commit together (exactly once).
//
// Secrets and guesses are small integer arrays; they are stored as JSON
// text, which keeps the schema trivial.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/secretsrc"
	"github.com/robalobadob/mastermind/internal/stats"
)

type sqlite struct {
	// mu serializes mutations. SQLite would serialize writers anyway;
	// the explicit lock keeps load-transition-save sequences atomic
	// without relying on busy-retry behavior.
	mu      sync.Mutex
	db      *sql.DB
	secrets secretsrc.Source
}

// NewSQLiteStore constructs a Store persisting to db. The caller owns the
// handle and is responsible for running migrations first.
func NewSQLiteStore(db *sql.DB, src secretsrc.Source) Store {
	return &sqlite{db: db, secrets: src}
}

func (s *sqlite) Create(ctx context.Context, difficulty game.Difficulty) (*game.Game, error) {
	secret := s.secrets.Code(ctx, difficulty.Length())
	g := game.New(uuid.NewString(), secret, difficulty)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	secretJSON, err := json.Marshal(g.Secret)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO games (id, secret, difficulty, attempts_total, attempts_left,
		                   status, hint_used, revealed_positions, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		g.ID, string(secretJSON), string(g.Difficulty), g.AttemptsTotal, g.AttemptsLeft,
		string(g.Status), boolToInt(g.HintUsed), "[]",
		g.CreatedAt.Format(time.RFC3339Nano), g.UpdatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}

	board, err := getOrCreateStats(ctx, tx)
	if err != nil {
		return nil, err
	}
	board.RecordStarted(difficulty)
	if err := saveStats(ctx, tx, board); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *sqlite) Get(ctx context.Context, id string) (*game.Game, error) {
	// Rebuilding a session takes two queries; a read transaction keeps
	// the game row and its history from straddling a concurrent guess
	// commit, so snapshots always pair attempts with history.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	g, err := loadGame(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *sqlite) Guess(ctx context.Context, id string, guess game.Code) (*game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	g, err := loadGame(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	entry, err := g.ApplyGuess(guess)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		// Game already over: nothing to persist.
		return g, nil
	}

	guessJSON, err := json.Marshal(entry.Guess)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO guesses (game_id, guess, correct_numbers, correct_positions, message, timestamp)
		VALUES (?,?,?,?,?,?)`,
		g.ID, string(guessJSON), entry.CorrectNumbers, entry.CorrectPositions,
		entry.Message, entry.Timestamp.Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("insert guess: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE games SET attempts_left=?, status=?, updated_at=? WHERE id=?`,
		g.AttemptsLeft, string(g.Status), g.UpdatedAt.Format(time.RFC3339Nano), g.ID,
	); err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}

	if g.Status.Terminal() {
		board, err := getOrCreateStats(ctx, tx)
		if err != nil {
			return nil, err
		}
		board.RecordOutcome(g.Difficulty, g.Status == game.StatusWon, g.GuessesUsed())
		if err := saveStats(ctx, tx, board); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *sqlite) Hint(ctx context.Context, id string) (game.Hint, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return game.Hint{}, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	g, err := loadGame(ctx, tx, id)
	if err != nil {
		return game.Hint{}, 0, err
	}
	h, err := g.RevealHint()
	if err != nil {
		return game.Hint{}, 0, err
	}

	revealedJSON, err := json.Marshal(g.RevealedPositions)
	if err != nil {
		return game.Hint{}, 0, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE games SET hint_used=1, revealed_positions=?, updated_at=? WHERE id=?`,
		string(revealedJSON), g.UpdatedAt.Format(time.RFC3339Nano), g.ID,
	); err != nil {
		return game.Hint{}, 0, fmt.Errorf("update hint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return game.Hint{}, 0, err
	}
	return h, g.AttemptsLeft, nil
}

func (s *sqlite) Stats(ctx context.Context) (stats.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats.Snapshot{}, err
	}
	defer func() { _ = tx.Rollback() }()

	board, err := getOrCreateStats(ctx, tx)
	if err != nil {
		return stats.Snapshot{}, err
	}
	if err := tx.Commit(); err != nil {
		return stats.Snapshot{}, err
	}
	return board.Snapshot(), nil
}

func (s *sqlite) ResetStats(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		UPDATE stats SET games_started=0, games_won=0, games_lost=0,
		    current_streak=0, best_streak=0, total_guesses_in_wins=0,
		    fastest_win_attempts=NULL,
		    easy_started=0, medium_started=0, hard_started=0,
		    easy_won=0, medium_won=0, hard_won=0
		WHERE id=1`)
	return err
}

// ------------------------------ row mapping --------------------------------

// queryer lets loadGame run against either *sql.DB or *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// loadGame rebuilds a full game.Game (including history) from rows.
func loadGame(ctx context.Context, q queryer, id string) (*game.Game, error) {
	var (
		g                        game.Game
		secretJSON, revealedJSON string
		status, difficulty       string
		hintUsed                 int
		createdAt, updatedAt     string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, secret, difficulty, attempts_total, attempts_left,
		       status, hint_used, revealed_positions, created_at, updated_at
		FROM games WHERE id=?`, id,
	).Scan(&g.ID, &secretJSON, &difficulty, &g.AttemptsTotal, &g.AttemptsLeft,
		&status, &hintUsed, &revealedJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(secretJSON), &g.Secret); err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}
	if err := json.Unmarshal([]byte(revealedJSON), &g.RevealedPositions); err != nil {
		return nil, fmt.Errorf("decode revealed positions: %w", err)
	}
	g.Status = game.Status(status)
	g.Difficulty = game.Difficulty(difficulty)
	g.HintUsed = hintUsed != 0
	g.CreatedAt = parseTime(createdAt)
	g.UpdatedAt = parseTime(updatedAt)

	rows, err := q.QueryContext(ctx, `
		SELECT guess, correct_numbers, correct_positions, message, timestamp
		FROM guesses WHERE game_id=? ORDER BY id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	g.History = []game.GuessEntry{}
	for rows.Next() {
		var (
			e         game.GuessEntry
			guessJSON string
			ts        string
		)
		if err := rows.Scan(&guessJSON, &e.CorrectNumbers, &e.CorrectPositions, &e.Message, &ts); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(guessJSON), &e.Guess); err != nil {
			return nil, fmt.Errorf("decode guess: %w", err)
		}
		e.Timestamp = parseTime(ts)
		g.History = append(g.History, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &g, nil
}

// getOrCreateStats loads the singleton stats row, inserting the all-zero
// row on first access.
func getOrCreateStats(ctx context.Context, tx *sql.Tx) (*stats.Counters, error) {
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO stats (id) VALUES (1)`); err != nil {
		return nil, fmt.Errorf("ensure stats row: %w", err)
	}

	var (
		c       stats.Counters
		fastest sql.NullInt64
	)
	err := tx.QueryRowContext(ctx, `
		SELECT games_started, games_won, games_lost, current_streak, best_streak,
		       total_guesses_in_wins, fastest_win_attempts,
		       easy_started, medium_started, hard_started,
		       easy_won, medium_won, hard_won
		FROM stats WHERE id=1`,
	).Scan(&c.GamesStarted, &c.GamesWon, &c.GamesLost, &c.CurrentStreak, &c.BestStreak,
		&c.TotalGuessesInWins, &fastest,
		&c.EasyStarted, &c.MediumStarted, &c.HardStarted,
		&c.EasyWon, &c.MediumWon, &c.HardWon)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	if fastest.Valid {
		v := int(fastest.Int64)
		c.FastestWinAttempts = &v
	}
	return &c, nil
}

// saveStats writes the counters back to the singleton row.
func saveStats(ctx context.Context, tx *sql.Tx, c *stats.Counters) error {
	var fastest sql.NullInt64
	if c.FastestWinAttempts != nil {
		fastest = sql.NullInt64{Int64: int64(*c.FastestWinAttempts), Valid: true}
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE stats SET games_started=?, games_won=?, games_lost=?,
		    current_streak=?, best_streak=?, total_guesses_in_wins=?,
		    fastest_win_attempts=?,
		    easy_started=?, medium_started=?, hard_started=?,
		    easy_won=?, medium_won=?, hard_won=?
		WHERE id=1`,
		c.GamesStarted, c.GamesWon, c.GamesLost,
		c.CurrentStreak, c.BestStreak, c.TotalGuessesInWins, fastest,
		c.EasyStarted, c.MediumStarted, c.HardStarted,
		c.EasyWon, c.MediumWon, c.HardWon)
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// parseTime parses the stored RFC3339 timestamps; a corrupt value is
// logged and mapped to the zero time rather than failing the read.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Warn().Str("value", s).Msg("unparseable timestamp in database")
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
