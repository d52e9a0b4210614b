// internal/httpserver/admin.go
//
// Admin token handling for the destructive scoreboard reset.
// The configured admin password is bcrypt-hashed at startup; a successful
// POST /admin/login returns a short-lived HS256 JWT which requireAdmin
// checks as a bearer token.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type adminAuth struct {
	passwordHash []byte
	jwtSecret    []byte
}

func newAdminAuth(password, jwtSecret string) adminAuth {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// Only possible with an over-long password; fail loudly at startup.
		log.Fatal().Err(err).Msg("hash admin password")
	}
	return adminAuth{passwordHash: h, jwtSecret: []byte(jwtSecret)}
}

type adminLoginReq struct {
	Password string `json:"password"`
}

// handleAdminLogin verifies the admin password and issues a token.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errJSON(w, http.StatusBadRequest, "bad_json")
		return
	}
	if bcrypt.CompareHashAndPassword(s.admin.passwordHash, []byte(req.Password)) != nil {
		errJSON(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	exp := time.Now().Add(24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	})
	token, err := t.SignedString(s.admin.jwtSecret)
	if err != nil {
		errJSON(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"token": token, "expires_at": exp.UTC()})
}

// requireAdmin enforces a valid admin bearer token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			errJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return s.admin.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			errJSON(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if role, _ := claims["role"].(string); role != "admin" {
			errJSON(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	a := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
