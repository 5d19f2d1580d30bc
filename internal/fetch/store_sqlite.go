package fetch

import (
	"context"
	"database/sql"
	"errors"
	"prospects/internal/db"
	"time"

	"go.opentelemetry.io/otel/codes"
)

// SQLiteStore persists entries in the cache_entry table.
type SQLiteStore struct {
	qry *db.Queries
}

// NewSQLiteStore expects the database to already have db.Schema applied.
func NewSQLiteStore(database *sql.DB) SQLiteStore {
	return SQLiteStore{qry: db.New(database)}
}

func (s SQLiteStore) Get(ctx context.Context, identity string) (Entry, error) {
	ctx, span := tracer.Start(ctx, "sqlite:get")
	defer span.End()

	row, err := s.qry.GetCacheEntry(ctx, identity)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrEntryNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query cache entry")
		return Entry{}, err
	}
	return Entry{
		Identity: row.Identity,
		Payload:  row.Payload,
		StoredAt: time.Unix(0, row.StoredAt),
	}, nil
}

func (s SQLiteStore) Put(ctx context.Context, entry Entry) error {
	ctx, span := tracer.Start(ctx, "sqlite:put")
	defer span.End()

	err := s.qry.UpsertCacheEntry(ctx, db.UpsertCacheEntryParams{
		Identity: entry.Identity,
		Payload:  entry.Payload,
		StoredAt: entry.StoredAt.UnixNano(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upsert cache entry")
		return err
	}
	return nil
}
