package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"idvdemo/internal/pkg/errors"
)

// AdminMiddleware guards destructive operator routes with a bearer token
// checked against a bcrypt hash. An empty hash leaves the routes open.
type AdminMiddleware struct {
	hash []byte
}

func NewAdminMiddleware(tokenHash string) *AdminMiddleware {
	m := &AdminMiddleware{}
	if tokenHash != "" {
		m.hash = []byte(tokenHash)
	}
	return m
}

func (m *AdminMiddleware) Enabled() bool {
	return m.hash != nil
}

func (m *AdminMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	if !m.Enabled() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Missing authorization header", nil)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid authorization header format", nil)
			return
		}

		if err := bcrypt.CompareHashAndPassword(m.hash, []byte(parts[1])); err != nil {
			errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid admin token", nil)
			return
		}

		next(w, r)
	}
}
