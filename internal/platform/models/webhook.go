package models

import (
	"encoding/json"
	"time"
)

// WebhookRecord is one stored vendor callback. Data is kept exactly as received
// and is never mutated after creation.
type WebhookRecord struct {
	ID        string          `json:"id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// CallbackPayload is the small part of a vendor callback the correlator reads.
// Everything else in the payload is opaque.
type CallbackPayload struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	JobToken string `json:"jobToken"`
	Job      *struct {
		Token string `json:"token"`
	} `json:"job"`
	Result *struct {
		Success bool `json:"success"`
	} `json:"result"`
}

// SessionToken returns the correlation token in priority order token, job.token, jobToken.
func (p *CallbackPayload) SessionToken() string {
	if p.Token != "" {
		return p.Token
	}
	if p.Job != nil && p.Job.Token != "" {
		return p.Job.Token
	}
	return p.JobToken
}
