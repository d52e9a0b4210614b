// internal/secretsrc/source.go
//
// Secret acquisition for new games.
// Responsibilities:
//   - Source: the interface the store consumes; always succeeds.
//   - Local: crypto/rand digit generation.
//   - RandomOrg: fetches true random digits from random.org, falling back
//     to Local on any failure (network, bad response, out-of-range digits)
//     so game creation never depends on the network being up.

package secretsrc

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
)

// Source produces a secret code of the requested length with digits in
// [0, game.DigitRange). Implementations must always succeed.
type Source interface {
	Code(ctx context.Context, length int) game.Code
}

// ------------------------------- local -------------------------------------

// Local generates secrets from the process's CSPRNG.
type Local struct{}

// Code returns length digits drawn uniformly from the alphabet.
func (Local) Code(_ context.Context, length int) game.Code {
	out := make(game.Code, length)
	for i := range out {
		v, err := rand.Int(rand.Reader, big.NewInt(game.DigitRange))
		if err != nil {
			panic(err) // entropy source broken
		}
		out[i] = int(v.Int64())
	}
	return out
}

// ----------------------------- random.org ----------------------------------

const defaultRandomOrgURL = "https://www.random.org/integers/"

// RandomOrg fetches digits from the random.org plain-text integer API.
type RandomOrg struct {
	BaseURL  string
	APIKey   string
	Client   *http.Client
	Fallback Source
}

// NewRandomOrg builds a client with a short request budget; a slow
// response is treated the same as a failed one.
func NewRandomOrg(apiKey string) *RandomOrg {
	return &RandomOrg{
		BaseURL:  defaultRandomOrgURL,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 3 * time.Second},
		Fallback: Local{},
	}
}

// Code fetches length digits from random.org. Any error whatsoever falls
// back to the local generator, so callers never see a failure.
func (r *RandomOrg) Code(ctx context.Context, length int) game.Code {
	code, err := r.fetch(ctx, length)
	if err != nil {
		log.Warn().Err(err).Int("length", length).Msg("random.org fetch failed, using local generator")
		return r.Fallback.Code(ctx, length)
	}
	return code
}

// fetch performs the HTTP round trip and validates the response shape.
func (r *RandomOrg) fetch(ctx context.Context, length int) (game.Code, error) {
	q := url.Values{
		"num":    {strconv.Itoa(length)},
		"min":    {"0"},
		"max":    {strconv.Itoa(game.DigitRange - 1)},
		"col":    {"1"},
		"base":   {"10"},
		"format": {"plain"},
		"rnd":    {"new"},
	}
	if r.APIKey != "" {
		q.Set("apiKey", r.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("random.org status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return nil, err
	}

	// Response is one integer per line, e.g. "0\n3\n1\n2\n".
	digits := make(game.Code, 0, length)
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("random.org returned non-integer %q", line)
		}
		digits = append(digits, v)
	}

	if len(digits) != length {
		return nil, fmt.Errorf("random.org returned %d numbers, want %d", len(digits), length)
	}
	for _, d := range digits {
		if d < 0 || d >= game.DigitRange {
			return nil, fmt.Errorf("random.org digit %d out of range", d)
		}
	}
	return digits, nil
}
