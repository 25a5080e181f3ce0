package verification

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "idvdemo/internal/pkg/errors"
)

type Kind string

const (
	KindOK    Kind = "ok"
	KindError Kind = "error"
)

// Outcome is decided once, when the upstream response is parsed. Callers switch
// on Kind instead of probing the body for id/status/result or error/code.
type Outcome struct {
	Kind   Kind
	Status int
	// Body is the vendor's success payload, passed through verbatim.
	Body json.RawMessage
	Err  *apierrors.APIError
}

func ok(body json.RawMessage) Outcome {
	return Outcome{Kind: KindOK, Status: http.StatusOK, Body: body}
}

func failed(err *apierrors.APIError) Outcome {
	return Outcome{Kind: KindError, Status: err.Status, Err: err}
}

// Code is the error code, or empty for a success.
func (o Outcome) Code() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Code
}

const maxRawDetail = 2048

func classify(status int, body []byte, err error) Outcome {
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return failed(apierrors.BadGateway(apierrors.ErrCodeUpstreamUnavailable,
				"Unable to reach the verification service", err.Error()))
		}
		return failed(apierrors.Internal("Verification request failed", err))
	}

	if !json.Valid(body) {
		raw := string(body)
		if len(raw) > maxRawDetail {
			raw = raw[:maxRawDetail]
		}
		return failed(apierrors.BadGateway(apierrors.ErrCodeInvalidUpstreamResponse,
			"Verification service returned a non-JSON response",
			map[string]interface{}{"status": status, "raw": raw}))
	}

	switch {
	case status >= 200 && status < 300:
		return ok(json.RawMessage(body))
	case status >= 400 && status < 500:
		return failed(apierrors.UpstreamRejected(upstreamMessage(body, "Verification service rejected the request"), json.RawMessage(body)))
	default:
		return failed(apierrors.UpstreamFailed(upstreamMessage(body, "Verification service error"), json.RawMessage(body)))
	}
}

func upstreamMessage(body []byte, fallback string) string {
	var b struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &b) == nil && b.Message != "" {
		return b.Message
	}
	return fallback
}
