package secretsrc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/game"
)

func TestLocalShapeAndRange(t *testing.T) {
	src := Local{}
	for _, length := range []int{3, 4, 5} {
		code := src.Code(context.Background(), length)
		require.Len(t, code, length)
		for _, d := range code {
			assert.GreaterOrEqual(t, d, 0)
			assert.Less(t, d, game.DigitRange)
		}
	}
}

func newTestRandomOrg(serverURL string) *RandomOrg {
	r := NewRandomOrg("")
	r.BaseURL = serverURL
	return r
}

func TestRandomOrgParsesPlainText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("num"))
		assert.Equal(t, "7", r.URL.Query().Get("max"))
		_, _ = w.Write([]byte("0\n3\n1\n2\n"))
	}))
	defer ts.Close()

	code := newTestRandomOrg(ts.URL).Code(context.Background(), 4)
	assert.Equal(t, game.Code{0, 3, 1, 2}, code)
}

func TestRandomOrgFallsBackOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	code := newTestRandomOrg(ts.URL).Code(context.Background(), 5)
	require.Len(t, code, 5)
	for _, d := range code {
		assert.GreaterOrEqual(t, d, 0)
		assert.Less(t, d, game.DigitRange)
	}
}

func TestRandomOrgFallsBackOnBadPayload(t *testing.T) {
	cases := map[string]string{
		"non-integer":  "a\nb\nc\nd\n",
		"wrong count":  "1\n2\n",
		"out of range": "1\n2\n3\n9\n",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(payload))
			}))
			defer ts.Close()

			code := newTestRandomOrg(ts.URL).Code(context.Background(), 4)
			require.Len(t, code, 4)
			for _, d := range code {
				assert.GreaterOrEqual(t, d, 0)
				assert.Less(t, d, game.DigitRange)
			}
		})
	}
}

func TestRandomOrgFallsBackWhenUnreachable(t *testing.T) {
	r := newTestRandomOrg("http://127.0.0.1:1") // nothing listens here
	code := r.Code(context.Background(), 3)
	require.Len(t, code, 3)
}
