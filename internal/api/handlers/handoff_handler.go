package handlers

import (
	"net/http"
	"strconv"

	"idvdemo/internal/engine/handoff"
	"idvdemo/internal/pkg/errors"
)

type HandoffHandler struct {
	generator *handoff.Generator
}

func NewHandoffHandler(g *handoff.Generator) *HandoffHandler {
	return &HandoffHandler{generator: g}
}

func (h *HandoffHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	size := 0
	if s := q.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "size must be an integer", nil)
			return
		}
		size = n
	}

	png, err := h.generator.PNG(q.Get("url"), size)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}
