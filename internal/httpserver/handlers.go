// internal/httpserver/handlers.go
//
// Game and scoreboard handlers. Transport-level validation (JSON shape,
// digit range) happens here before the store is touched; everything else
// is delegated and the store's errors are mapped to status codes:
//
//	game not found        → 404
//	bad digits / length   → 400
//	hint on finished game → 409
//	second hint           → 409

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/store"
)

// ------------------------------ payloads -----------------------------------

type newGameRes struct {
	GameID       string          `json:"game_id"`
	AttemptsLeft int             `json:"attempts_left"`
	Status       game.Status     `json:"status"`
	Difficulty   game.Difficulty `json:"difficulty"`
}

type gameStateRes struct {
	GameID       string            `json:"game_id"`
	Difficulty   game.Difficulty   `json:"difficulty"`
	AttemptsLeft int               `json:"attempts_left"`
	Status       game.Status       `json:"status"`
	History      []game.GuessEntry `json:"history"`
	// Secret is revealed only once the game is over.
	Secret game.Code `json:"secret,omitempty"`
}

type guessReq struct {
	Guess game.Code `json:"guess"`
}

type guessRes struct {
	AttemptsLeft int              `json:"attempts_left"`
	Status       game.Status      `json:"status"`
	Feedback     *game.GuessEntry `json:"feedback"`
	Secret       game.Code        `json:"secret,omitempty"`
	Note         string           `json:"note,omitempty"`
}

type hintRes struct {
	Position     int    `json:"position"`
	Digit        int    `json:"digit"`
	AttemptsLeft int    `json:"attempts_left"`
	Note         string `json:"note"`
}

// ------------------------------ handlers -----------------------------------

// handleNewGame starts a session. Difficulty comes from the query string;
// unrecognized values fall back to medium.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	difficulty := game.ParseDifficulty(r.URL.Query().Get("difficulty"))

	g, err := s.store.Create(r.Context(), difficulty)
	if err != nil {
		log.Error().Err(err).Msg("create game")
		errJSON(w, http.StatusInternalServerError, "create_failed")
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID:       g.ID,
		AttemptsLeft: g.AttemptsLeft,
		Status:       g.Status,
		Difficulty:   g.Difficulty,
	})
}

// handleGetGame returns the full session state. The secret stays hidden
// while the game is in progress.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(toGameState(g))
}

// handleGuess validates digits, applies the guess, and echoes the updated
// state with the latest feedback. When the game just ended (or already
// was over) the secret is included.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errJSON(w, http.StatusBadRequest, "bad_json")
		return
	}
	for _, d := range req.Guess {
		if d < 0 || d >= game.DigitRange {
			errJSON(w, http.StatusBadRequest, fmt.Sprintf("each digit must be between 0 and %d inclusive", game.DigitRange-1))
			return
		}
	}

	g, err := s.store.Guess(r.Context(), chi.URLParam(r, "id"), req.Guess)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	res := guessRes{
		AttemptsLeft: g.AttemptsLeft,
		Status:       g.Status,
	}
	if len(g.History) > 0 {
		res.Feedback = &g.History[len(g.History)-1]
	}
	if g.Status.Terminal() {
		res.Secret = g.Secret
		res.Note = fmt.Sprintf("Game %s. No more guesses allowed.", g.Status)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleHint reveals one secret position, once per game.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	h, attemptsLeft, err := s.store.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(hintRes{
		Position:     h.Position,
		Digit:        h.Digit,
		AttemptsLeft: attemptsLeft,
		Note:         "You used your only hint for this game.",
	})
}

// handleStats returns the scoreboard snapshot.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("read stats")
		errJSON(w, http.StatusInternalServerError, "stats_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// handleResetStats zeroes the scoreboard. Gated by requireAdmin.
func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ResetStats(r.Context()); err != nil {
		log.Error().Err(err).Msg("reset stats")
		errJSON(w, http.StatusInternalServerError, "reset_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Stats reset."})
}

// ------------------------------- helpers -----------------------------------

func toGameState(g *game.Game) gameStateRes {
	res := gameStateRes{
		GameID:       g.ID,
		Difficulty:   g.Difficulty,
		AttemptsLeft: g.AttemptsLeft,
		Status:       g.Status,
		History:      g.History,
	}
	if res.History == nil {
		res.History = []game.GuessEntry{}
	}
	if g.Status.Terminal() {
		res.Secret = g.Secret
	}
	return res
}

// writeStoreError maps domain errors to HTTP status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		errJSON(w, http.StatusNotFound, "Game not found")
	case errors.Is(err, game.ErrLengthMismatch):
		errJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrInvalidInput):
		errJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrGameFinished):
		errJSON(w, http.StatusConflict, "Game finished. No hint available.")
	case errors.Is(err, game.ErrHintAlreadyUsed):
		errJSON(w, http.StatusConflict, "Hint already used for this game.")
	default:
		log.Error().Err(err).Msg("store operation failed")
		errJSON(w, http.StatusInternalServerError, "internal_error")
	}
}

func errJSON(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
