package errors

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

const (
	ErrCodeInvalidRequestBody      = "INVALID_REQUEST_BODY"
	ErrCodeMissingRequiredFields   = "MISSING_REQUIRED_FIELDS"
	ErrCodeInvalidPhoneFormat      = "INVALID_PHONE_FORMAT"
	ErrCodeInvalidEmailFormat      = "INVALID_EMAIL_FORMAT"
	ErrCodeInvalidSSNFormat        = "INVALID_SSN_FORMAT"
	ErrCodeInvalidDateFormat       = "INVALID_DATE_FORMAT"
	ErrCodeMissingAPIKey           = "MISSING_API_KEY"
	ErrCodeUpstreamRejected        = "UPSTREAM_REJECTED"
	ErrCodeUpstreamError           = "UPSTREAM_ERROR"
	ErrCodeUpstreamUnavailable     = "UPSTREAM_UNAVAILABLE"
	ErrCodeInvalidUpstreamResponse = "INVALID_UPSTREAM_RESPONSE"
	ErrCodeUnauthorized            = "UNAUTHORIZED"
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeRateLimitExceeded       = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidInput            = "INVALID_INPUT"
	ErrCodeInternal                = "INTERNAL_ERROR"
)

const (
	LabelValidation    = "Validation Error"
	LabelConfiguration = "Configuration Error"
	LabelUpstream      = "Upstream Error"
	LabelBadGateway    = "Bad Gateway"
	LabelInternal      = "Internal Server Error"
)

// APIError is an error that already knows how it is rendered at the route boundary.
type APIError struct {
	Status  int
	Label   string
	Code    string
	Message string
	Details interface{}
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

func Validation(code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Label: LabelValidation, Code: code, Message: message}
}

func Configuration(code, message string) *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Label: LabelConfiguration, Code: code, Message: message}
}

func UpstreamRejected(message string, body interface{}) *APIError {
	return &APIError{Status: http.StatusBadRequest, Label: LabelUpstream, Code: ErrCodeUpstreamRejected, Message: message, Details: body}
}

func UpstreamFailed(message string, body interface{}) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Label: LabelUpstream, Code: ErrCodeUpstreamError, Message: message, Details: body}
}

func BadGateway(code, message string, details interface{}) *APIError {
	return &APIError{Status: http.StatusBadGateway, Label: LabelBadGateway, Code: code, Message: message, Details: details}
}

// Internal exposes only the message of err, never a stack.
func Internal(message string, err error) *APIError {
	e := &APIError{Status: http.StatusInternalServerError, Label: LabelInternal, Code: ErrCodeInternal, Message: message}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

func Write(w http.ResponseWriter, e *APIError) {
	WriteJSON(w, e.Status, ErrorResponse{
		Error:   e.Label,
		Message: e.Message,
		Code:    e.Code,
		Details: e.Details,
	})
}

func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	WriteJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
		Details: details,
	})
}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(body)
}
