package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"idvdemo/internal/engine/verification"
	apierrors "idvdemo/internal/pkg/errors"
)

type VerificationHandler struct {
	svc     *verification.Service
	metrics *Metrics
}

func NewVerificationHandler(svc *verification.Service, metrics *Metrics) *VerificationHandler {
	return &VerificationHandler{svc: svc, metrics: metrics}
}

// Verify proxies a POST for product p to the vendor.
func (h *VerificationHandler) Verify(p verification.Product) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest(r)
		if !ok {
			h.metrics.Verification(string(p), http.StatusBadRequest)
			apierrors.Write(w, apierrors.Validation(apierrors.ErrCodeInvalidRequestBody, "Request body must be a JSON object"))
			return
		}

		outcome := h.svc.Verify(r.Context(), p, req, r)
		h.metrics.Verification(string(p), outcome.Status)

		switch outcome.Kind {
		case verification.KindOK:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(outcome.Status)
			w.Write(outcome.Body)
		default:
			apierrors.Write(w, outcome.Err)
		}
	}
}

func (h *VerificationHandler) Status(p verification.Product) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteJSON(w, http.StatusOK, h.svc.Status(p))
	}
}

func decodeRequest(r *http.Request) (*verification.Request, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, false
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, false
	}

	var req verification.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, false
	}
	return &req, true
}
