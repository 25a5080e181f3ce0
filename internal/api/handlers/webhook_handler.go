package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
	"idvdemo/internal/engine/correlator"
	apierrors "idvdemo/internal/pkg/errors"
	"idvdemo/internal/platform/models"
)

// WebhookHandler serves /webhook-callback, the vendor's asynchronous delivery target.
type WebhookHandler struct {
	correlator *correlator.Correlator
	metrics    *Metrics
}

func NewWebhookHandler(c *correlator.Correlator, metrics *Metrics) *WebhookHandler {
	return &WebhookHandler{correlator: c, metrics: metrics}
}

type receiveResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	ID        string     `json:"id,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		apierrors.WriteJSON(w, http.StatusBadRequest, receiveResponse{
			Message: "Unable to read webhook body",
			Error:   err.Error(),
		})
		return
	}

	record, err := h.correlator.Receive(r.Context(), json.RawMessage(body))
	if errors.Is(err, correlator.ErrInvalidJSON) {
		apierrors.WriteJSON(w, http.StatusBadRequest, receiveResponse{
			Message: "Invalid JSON payload",
			Error:   err.Error(),
		})
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to store webhook")
		apierrors.WriteJSON(w, http.StatusInternalServerError, receiveResponse{
			Message: "Failed to store webhook",
			Error:   err.Error(),
		})
		return
	}

	h.metrics.WebhookReceived()
	hlog.FromRequest(r).Info().Str("webhook_id", record.ID).Int("bytes", len(body)).Msg("webhook received")

	apierrors.WriteJSON(w, http.StatusOK, receiveResponse{
		Success:   true,
		Message:   "Webhook received successfully",
		Timestamp: &record.Timestamp,
		ID:        record.ID,
	})
}

type listResponse struct {
	Responses []*models.WebhookRecord `json:"responses"`
	Error     string                  `json:"error,omitempty"`
}

func (h *WebhookHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.correlator.List(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to list webhooks")
		apierrors.WriteJSON(w, http.StatusInternalServerError, listResponse{
			Responses: []*models.WebhookRecord{},
			Error:     err.Error(),
		})
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, listResponse{Responses: records})
}

type clearResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (h *WebhookHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.correlator.Clear(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to clear webhooks")
		apierrors.WriteJSON(w, http.StatusInternalServerError, clearResponse{Error: err.Error()})
		return
	}

	hlog.FromRequest(r).Info().Msg("webhook buffer cleared")
	apierrors.WriteJSON(w, http.StatusOK, clearResponse{Success: true})
}
