package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"idvdemo/internal/engine/correlator"
)

func sessionJWT(jobID string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256"}`)) + "." +
		enc.EncodeToString([]byte(`{"job_id":"`+jobID+`"}`)) + ".sig"
}

func TestJobHandler_StoreAndLookup(t *testing.T) {
	h := NewJobHandler(newMemoryCorrelator(t), NewMetrics())
	token := sessionJWT("job_42")

	rr := httptest.NewRecorder()
	h.Store(rr, httptest.NewRequest(http.MethodPost, "/webhook",
		strings.NewReader(`{"job":{"token":"`+token+`"},"result":{"success":true}}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stored))
	assert.Equal(t, true, stored["success"])
	assert.Equal(t, token, stored["jobToken"])
	assert.Equal(t, "job_42", stored["extractedJobId"])

	rr = httptest.NewRecorder()
	h.Lookup(rr, httptest.NewRequest(http.MethodGet, "/webhook?token="+token, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var found struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &found))
	assert.JSONEq(t, `{"job":{"token":"`+token+`"},"result":{"success":true}}`, string(found.Data))
}

func TestJobHandler_Errors(t *testing.T) {
	h := NewJobHandler(newMemoryCorrelator(t), NewMetrics())

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"Store Without Token", http.MethodPost, "/webhook", `{"result":{"success":true}}`, http.StatusBadRequest},
		{"Store Invalid JSON", http.MethodPost, "/webhook", `nope`, http.StatusBadRequest},
		{"Lookup Missing Token", http.MethodGet, "/webhook", "", http.StatusBadRequest},
		{"Lookup Unknown Token", http.MethodGet, "/webhook?token=unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.method == http.MethodPost {
				h.Store(rr, req)
			} else {
				h.Lookup(rr, req)
			}

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), `"error"`)
		})
	}
}

func TestJobHandler_StoreUnavailable(t *testing.T) {
	h := NewJobHandler(correlator.New(brokenStore{}, correlator.Options{}), NewMetrics())

	rr := httptest.NewRecorder()
	h.Store(rr, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"token":"abc"}`)))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = httptest.NewRecorder()
	h.Lookup(rr, httptest.NewRequest(http.MethodGet, "/webhook?token=abc", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
