package middleware

import (
	"bytes"
	"io"
	"net/http"

	"idvdemo/internal/engine/webhooks"
	"idvdemo/internal/pkg/errors"
	"idvdemo/internal/platform/config"
)

// LimitBody caps the request body at n bytes.
func LimitBody(n int64) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if n <= 0 {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next(w, r)
		}
	}
}

// RequireSignature checks X-Signature against an HMAC of the body when secret is set.
// The body is restored for the next handler.
func RequireSignature(secret config.SecretString) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if !secret.IsSet() {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidRequestBody, "Unable to read request body", nil)
				return
			}

			if !webhooks.Verify(secret.RawString(), body, r.Header.Get(webhooks.SignatureHeader)) {
				errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid webhook signature", nil)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next(w, r)
		}
	}
}
