package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"idvdemo/internal/engine/correlator"
	apierrors "idvdemo/internal/pkg/errors"
)

// JobHandler serves /webhook, the token-indexed store the browser polls.
type JobHandler struct {
	correlator *correlator.Correlator
	metrics    *Metrics
}

func NewJobHandler(c *correlator.Correlator, metrics *Metrics) *JobHandler {
	return &JobHandler{correlator: c, metrics: metrics}
}

type storeResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	JobToken       string `json:"jobToken,omitempty"`
	ExtractedJobID string `json:"extractedJobId,omitempty"`
	Error          string `json:"error,omitempty"`
}

func (h *JobHandler) Store(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		apierrors.WriteJSON(w, http.StatusBadRequest, storeResponse{Error: "Unable to read request body"})
		return
	}

	token, jobID, err := h.correlator.Index(r.Context(), json.RawMessage(body))
	switch {
	case errors.Is(err, correlator.ErrInvalidJSON):
		apierrors.WriteJSON(w, http.StatusBadRequest, storeResponse{Error: "Invalid JSON payload"})
		return
	case errors.Is(err, correlator.ErrMissingToken):
		apierrors.WriteJSON(w, http.StatusBadRequest, storeResponse{Error: "No job token found in webhook data"})
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("failed to index webhook")
		apierrors.WriteJSON(w, http.StatusInternalServerError, storeResponse{Error: "Failed to store webhook data"})
		return
	}

	h.metrics.WebhookIndexed()
	hlog.FromRequest(r).Info().Str("job_id", jobID).Msg("webhook indexed")

	apierrors.WriteJSON(w, http.StatusOK, storeResponse{
		Success:        true,
		Message:        "Webhook data stored",
		JobToken:       token,
		ExtractedJobID: jobID,
	})
}

type lookupResponse struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

func (h *JobHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		apierrors.WriteJSON(w, http.StatusBadRequest, lookupResponse{Error: "Token parameter is required"})
		return
	}

	record, err := h.correlator.LookupByToken(r.Context(), token)
	if errors.Is(err, correlator.ErrNotFound) {
		apierrors.WriteJSON(w, http.StatusNotFound, lookupResponse{Error: "No webhook data found for this token"})
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to look up webhook")
		apierrors.WriteJSON(w, http.StatusInternalServerError, lookupResponse{Error: "Failed to retrieve webhook data"})
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, lookupResponse{Data: record.Data})
}
