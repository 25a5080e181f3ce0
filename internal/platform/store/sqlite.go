package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLiteStore keeps entries in the kv_entries table. Lists are stored as a JSON
// array in a single row and rewritten inside one transaction; the connection
// must be opened with _txlock=immediate so concurrent pushes serialize.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

const upsertEntry = `
	INSERT INTO kv_entries (key, value, is_list, expires_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		is_list = excluded.is_list,
		expires_at = excluded.expires_at
`

func (s *SQLiteStore) expiry(ttl time.Duration) sql.NullInt64 {
	if ttl <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: s.now().Add(ttl).UnixMilli(), Valid: true}
}

func (s *SQLiteStore) live(expiresAt sql.NullInt64) bool {
	return !expiresAt.Valid || expiresAt.Int64 > s.now().UnixMilli()
}

func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if _, err := s.db.ExecContext(ctx, upsertEntry, key, value, false, s.expiry(ttl)); err != nil {
		return unavailable("put", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var isList bool
	var expiresAt sql.NullInt64

	err := s.db.QueryRowContext(ctx, `SELECT value, is_list, expires_at FROM kv_entries WHERE key = ?`, key).
		Scan(&value, &isList, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get", err)
	}
	if isList || !s.live(expiresAt) {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return unavailable("delete", err)
	}
	return nil
}

func (s *SQLiteStore) PushCapped(ctx context.Context, key string, value []byte, max int, ttl time.Duration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin", err)
	}
	defer tx.Rollback()

	items, err := s.readList(ctx, tx, key)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(prepend(items, value, max))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, upsertEntry, key, encoded, true, s.expiry(ttl)); err != nil {
		return unavailable("push", err)
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}

func (s *SQLiteStore) Range(ctx context.Context, key string) ([][]byte, error) {
	return s.readList(ctx, s.db, key)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *SQLiteStore) readList(ctx context.Context, q queryer, key string) ([][]byte, error) {
	var raw []byte
	var expiresAt sql.NullInt64

	err := q.QueryRowContext(ctx, `SELECT value, expires_at FROM kv_entries WHERE key = ? AND is_list = 1`, key).
		Scan(&raw, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return [][]byte{}, nil
	}
	if err != nil {
		return nil, unavailable("range", err)
	}
	if !s.live(expiresAt) {
		return [][]byte{}, nil
	}

	var items [][]byte
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = [][]byte{}
	}
	return items, nil
}

// PurgeExpired deletes rows whose TTL has lapsed and reports how many were removed.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, unavailable("purge", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
