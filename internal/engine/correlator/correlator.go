// Package correlator buffers asynchronous vendor callbacks and matches them back
// to the browser session that started the verification job.
package correlator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"idvdemo/internal/platform/auth"
	"idvdemo/internal/platform/models"
	"idvdemo/internal/platform/store"
)

const (
	DefaultMaxRecords  = 10
	DefaultTTL         = 600 * time.Second
	DefaultListKey     = "webhook_responses"
	DefaultIndexPrefix = "webhook_job:"
)

var (
	ErrNotFound     = errors.New("webhook result not found")
	ErrMissingToken = errors.New("payload has no token, job.token or jobToken")
	ErrInvalidJSON  = errors.New("payload is not valid JSON")
)

type Options struct {
	MaxRecords  int
	TTL         time.Duration
	ListKey     string
	IndexPrefix string
}

// Correlator holds no state of its own; everything lives in the injected store.
type Correlator struct {
	store store.Store
	opts  Options
	now   func() time.Time
}

func New(s store.Store, opts Options) *Correlator {
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = DefaultMaxRecords
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.ListKey == "" {
		opts.ListKey = DefaultListKey
	}
	if opts.IndexPrefix == "" {
		opts.IndexPrefix = DefaultIndexPrefix
	}
	return &Correlator{store: s, opts: opts, now: time.Now}
}

func (c *Correlator) newRecord(payload json.RawMessage) *models.WebhookRecord {
	return &models.WebhookRecord{
		ID:        uuid.New().String(),
		Timestamp: c.now().UTC(),
		Data:      payload,
	}
}

// Receive stores a vendor callback at the head of the capped list. Callbacks
// carrying a session token are also indexed by job id. Repeated deliveries
// produce repeated records.
func (c *Correlator) Receive(ctx context.Context, payload json.RawMessage) (*models.WebhookRecord, error) {
	if !json.Valid(payload) {
		return nil, ErrInvalidJSON
	}

	record := c.newRecord(payload)
	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	if err := c.store.PushCapped(ctx, c.opts.ListKey, encoded, c.opts.MaxRecords, c.opts.TTL); err != nil {
		return nil, err
	}

	if token := sessionToken(payload); token != "" {
		if err := c.store.Put(ctx, c.indexKey(auth.JobIDFromToken(token)), encoded, c.opts.TTL); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// List returns the buffered callbacks newest first.
func (c *Correlator) List(ctx context.Context) ([]*models.WebhookRecord, error) {
	items, err := c.store.Range(ctx, c.opts.ListKey)
	if err != nil {
		return nil, err
	}

	records := make([]*models.WebhookRecord, 0, len(items))
	for _, item := range items {
		var r models.WebhookRecord
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, fmt.Errorf("decode webhook record: %w", err)
		}
		records = append(records, &r)
	}
	return records, nil
}

func (c *Correlator) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, c.opts.ListKey)
}

// Index stores a payload under the job id decoded from its token without
// touching the capped list. It returns the token and the derived job id.
func (c *Correlator) Index(ctx context.Context, payload json.RawMessage) (string, string, error) {
	if !json.Valid(payload) {
		return "", "", ErrInvalidJSON
	}

	token := sessionToken(payload)
	if token == "" {
		return "", "", ErrMissingToken
	}
	jobID := auth.JobIDFromToken(token)

	encoded, err := json.Marshal(c.newRecord(payload))
	if err != nil {
		return "", "", err
	}
	if err := c.store.Put(ctx, c.indexKey(jobID), encoded, c.opts.TTL); err != nil {
		return "", "", err
	}
	return token, jobID, nil
}

// LookupByToken returns ErrNotFound until the callback for the token's job arrives.
func (c *Correlator) LookupByToken(ctx context.Context, token string) (*models.WebhookRecord, error) {
	raw, err := c.store.Get(ctx, c.indexKey(auth.JobIDFromToken(token)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var r models.WebhookRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode webhook record: %w", err)
	}
	return &r, nil
}

func (c *Correlator) indexKey(jobID string) string {
	return c.opts.IndexPrefix + jobID
}

func sessionToken(payload json.RawMessage) string {
	var p models.CallbackPayload
	// type mismatches on unrelated fields still leave the token fields populated
	_ = json.Unmarshal(payload, &p)
	return p.SessionToken()
}
