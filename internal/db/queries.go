package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

type CacheEntry struct {
	Identity string
	Payload  []byte
	StoredAt int64
}

const getCacheEntry = `-- name: GetCacheEntry :one
SELECT identity, payload, stored_at FROM cache_entry
WHERE identity = ?
`

func (q *Queries) GetCacheEntry(ctx context.Context, identity string) (CacheEntry, error) {
	row := q.db.QueryRowContext(ctx, getCacheEntry, identity)
	var i CacheEntry
	err := row.Scan(&i.Identity, &i.Payload, &i.StoredAt)
	return i, err
}

const upsertCacheEntry = `-- name: UpsertCacheEntry :exec
INSERT INTO cache_entry (identity, payload, stored_at) VALUES (?, ?, ?)
ON CONFLICT (identity) DO UPDATE SET
    payload = excluded.payload,
    stored_at = excluded.stored_at
`

type UpsertCacheEntryParams struct {
	Identity string
	Payload  []byte
	StoredAt int64
}

func (q *Queries) UpsertCacheEntry(ctx context.Context, arg UpsertCacheEntryParams) error {
	_, err := q.db.ExecContext(ctx, upsertCacheEntry, arg.Identity, arg.Payload, arg.StoredAt)
	return err
}

type Snapshot struct {
	Day  string
	Data []byte
}

const upsertSnapshot = `-- name: UpsertSnapshot :exec
INSERT INTO snapshot (day, data) VALUES (?, ?)
ON CONFLICT (day) DO UPDATE SET data = excluded.data
`

type UpsertSnapshotParams struct {
	Day  string
	Data []byte
}

func (q *Queries) UpsertSnapshot(ctx context.Context, arg UpsertSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, upsertSnapshot, arg.Day, arg.Data)
	return err
}

const getSnapshot = `-- name: GetSnapshot :one
SELECT day, data FROM snapshot
WHERE day = ?
`

func (q *Queries) GetSnapshot(ctx context.Context, day string) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getSnapshot, day)
	var i Snapshot
	err := row.Scan(&i.Day, &i.Data)
	return i, err
}

const getLatestSnapshotBefore = `-- name: GetLatestSnapshotBefore :one
SELECT day, data FROM snapshot
WHERE day < ?
ORDER BY day DESC
LIMIT 1
`

func (q *Queries) GetLatestSnapshotBefore(ctx context.Context, day string) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getLatestSnapshotBefore, day)
	var i Snapshot
	err := row.Scan(&i.Day, &i.Data)
	return i, err
}

const getLatestSnapshot = `-- name: GetLatestSnapshot :one
SELECT day, data FROM snapshot
ORDER BY day DESC
LIMIT 1
`

func (q *Queries) GetLatestSnapshot(ctx context.Context) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getLatestSnapshot)
	var i Snapshot
	err := row.Scan(&i.Day, &i.Data)
	return i, err
}

const listSnapshotDays = `-- name: ListSnapshotDays :many
SELECT day FROM snapshot
ORDER BY day ASC
`

func (q *Queries) ListSnapshotDays(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listSnapshotDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		items = append(items, day)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
