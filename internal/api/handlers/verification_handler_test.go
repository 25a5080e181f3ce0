package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"idvdemo/internal/engine/verification"
	"idvdemo/internal/platform/config"
)

func newVerificationHandler(t *testing.T, key string, upstream http.HandlerFunc) *VerificationHandler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := config.VendorConfig{
		CrossCheck: config.ProductConfig{Path: "/crosscheck", APIKey: config.NewSecretString(key)},
		DOB:        config.ProductConfig{Path: "/dob", APIKey: config.NewSecretString(key)},
		SSN:        config.ProductConfig{Path: "/ssn", APIKey: config.NewSecretString(key)},
	}
	svc := verification.NewService(verification.NewClient(srv.URL, "X-API-Key", srv.Client()), cfg, nil)
	return NewVerificationHandler(svc, NewMetrics())
}

func TestVerificationHandler_Verify(t *testing.T) {
	h := newVerificationHandler(t, "sk_test", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"v_1","status":"completed"}`))
	})

	rr := httptest.NewRecorder()
	body := `{"firstName":"Jane","lastName":"Doe","phone":"555-123-4567"}`
	h.Verify(verification.CrossCheck)(rr, httptest.NewRequest(http.MethodPost, "/api/crosscheck", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"v_1","status":"completed"}`, rr.Body.String())
}

func TestVerificationHandler_InvalidBody(t *testing.T) {
	h := newVerificationHandler(t, "sk_test", func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	})

	for _, body := range []string{"", "not json", `["array"]`, `"string"`, `{"firstName":`} {
		rr := httptest.NewRecorder()
		h.Verify(verification.DOB)(rr, httptest.NewRequest(http.MethodPost, "/api/dob-verification", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_REQUEST_BODY", resp["code"], body)
	}
}

func TestVerificationHandler_ValidationError(t *testing.T) {
	h := newVerificationHandler(t, "sk_test", func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	})

	rr := httptest.NewRecorder()
	h.Verify(verification.SSN)(rr, httptest.NewRequest(http.MethodPost, "/api/ssn-verification",
		strings.NewReader(`{"firstName":"Jane","lastName":"Doe"}`)))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Validation Error", resp["error"])
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", resp["code"])
	assert.Equal(t, "Missing required fields: ssn, phone", resp["message"])
}

func TestVerificationHandler_Status(t *testing.T) {
	h := newVerificationHandler(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	})

	rr := httptest.NewRecorder()
	h.Status(verification.DOB)(rr, httptest.NewRequest(http.MethodGet, "/api/dob-verification", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "DOB Verification", resp["service"])
	assert.Equal(t, "active", resp["status"])
	assert.Equal(t, false, resp["configured"])
}
