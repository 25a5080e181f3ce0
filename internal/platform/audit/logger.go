package audit

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"idvdemo/internal/pkg/parser"
	"idvdemo/internal/pkg/pii"
	"idvdemo/internal/pkg/requestid"
)

// Subject is the identity PII of a verification request, before masking.
type Subject struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	SSN         string
	DateOfBirth string
}

type Logger struct {
	log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "audit").Logger()}
}

// LogVerification records a proxied verification request. Phone and SSN are masked
// before they reach the writer; date of birth is never logged.
func (l *Logger) LogVerification(ctx context.Context, product string, s Subject, r *http.Request) {
	event := l.log.Info().
		Str("action", "verification.request").
		Str("product", product).
		Str("first_name", s.FirstName).
		Str("last_name", s.LastName)

	if s.Email != "" {
		event = event.Str("email", pii.Email(s.Email))
	}
	if s.Phone != "" {
		event = event.Str("phone", pii.Phone(s.Phone))
	}
	if s.SSN != "" {
		event = event.Str("ssn", pii.SSN(s.SSN))
	}
	event = event.Bool("has_dob", s.DateOfBirth != "")

	if r != nil {
		client := parser.ParseUserAgent(r.UserAgent())
		event = event.Str("ip_address", r.RemoteAddr).
			Str("client_os", client.OS).
			Str("client_browser", client.Browser).
			Bool("mobile", client.Mobile)
	}

	if id := requestid.From(ctx); id != "" {
		event = event.Str("request_id", id)
	}

	event.Msg("verification request")
}

// LogOutcome records the normalized status of a proxied call.
func (l *Logger) LogOutcome(ctx context.Context, product string, status int, code string) {
	event := l.log.Info().
		Str("action", "verification.outcome").
		Str("product", product).
		Int("status", status)
	if code != "" {
		event = event.Str("code", code)
	}
	if id := requestid.From(ctx); id != "" {
		event = event.Str("request_id", id)
	}
	event.Msg("verification outcome")
}
