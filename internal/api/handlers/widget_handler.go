package handlers

import (
	"net/http"

	"idvdemo/internal/pkg/errors"
	"idvdemo/internal/platform/config"
)

// WidgetHandler hands the browser the public identifiers the vendor widget needs.
type WidgetHandler struct {
	publicKey string
	sandbox   bool
}

func NewWidgetHandler(cfg config.VendorConfig) *WidgetHandler {
	return &WidgetHandler{publicKey: cfg.PublicKey, sandbox: cfg.Sandbox}
}

type widgetConfig struct {
	PublicKey  string `json:"publicKey"`
	Sandbox    bool   `json:"sandbox"`
	Configured bool   `json:"configured"`
}

func (h *WidgetHandler) Config(w http.ResponseWriter, r *http.Request) {
	errors.WriteJSON(w, http.StatusOK, widgetConfig{
		PublicKey:  h.publicKey,
		Sandbox:    h.sandbox,
		Configured: h.publicKey != "",
	})
}
