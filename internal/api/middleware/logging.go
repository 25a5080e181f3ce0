package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"idvdemo/internal/pkg/errors"
	"idvdemo/internal/pkg/requestid"
)

// RequestLogger attaches a child logger and a request id to every request and
// writes one access line when the response completes.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		})(next)
		h = hlog.UserAgentHandler("user_agent")(h)
		h = hlog.RemoteAddrHandler("ip")(h)
		h = requestID(h)
		return hlog.NewHandler(log)(h)
	}
}

// requestID reuses an inbound X-Request-ID or mints a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" {
			id = requestid.New()
		}
		w.Header().Set(requestid.Header, id)

		ctx := requestid.With(r.Context(), id)
		log := zerolog.Ctx(ctx)
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", id)
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PanicHandler is installed as the router's PanicHandler.
func PanicHandler(w http.ResponseWriter, r *http.Request, v interface{}) {
	hlog.FromRequest(r).Error().
		Interface("panic", v).
		Str("path", r.URL.Path).
		Msg("handler panicked")
	errors.Write(w, errors.Internal("Internal server error", nil))
}
