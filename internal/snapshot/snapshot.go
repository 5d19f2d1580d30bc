package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"prospects/internal/components/assert"
	"prospects/internal/components/telemetry"
	"prospects/internal/db"
	"prospects/internal/prospects"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("prospects/internal/snapshot")

const (
	report_db_query     = "db.query"
	report_save         = "snapshot.save"
	report_decode_entry = "snapshot.decode-entry"
)

// DayLayout is the format a snapshot's day is stored in.
const DayLayout = time.DateOnly

// ErrNotFound is returned when no snapshot matches the lookup.
var ErrNotFound = errors.New("snapshot not found")

// Store keeps one snapshot per day.
type Store struct {
	db    *db.Queries
	runTx db.RunTx
	tel   telemetry.API
}

// NewStore applies the schema to the database.
func NewStore(ctx context.Context, database *sql.DB, tel telemetry.API) (Store, error) {
	assert.NotNil(database)
	assert.NotNil(tel)

	_, err := database.ExecContext(ctx, db.Schema)
	if err != nil {
		return Store{}, fmt.Errorf("apply schema: %w", err)
	}

	return Store{
		db:    db.New(database),
		runTx: db.NewRunTx(database),
		tel:   telemetry.NewScopedAPI("snapshot", tel),
	}, nil
}

func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// Save writes the snapshot under the day it was taken on, replacing a snapshot of the same
// day. Saving a day older than the latest stored snapshot is rejected.
func (s Store) Save(ctx context.Context, snap prospects.Snapshot) error {
	day := Day(snap.TakenOn)

	ctx, span := tracer.Start(ctx, "Save")
	defer span.End()
	span.SetAttributes(attribute.String("day", day))

	data, err := json.Marshal(snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to encode snapshot")
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return s.runTx(ctx, func(tx *db.Queries) error {
		latest, err := tx.GetLatestSnapshot(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			s.tel.ReportBroken(report_db_query, err, "GetLatestSnapshot")
			return err
		}
		if err == nil && latest.Day > day {
			err := fmt.Errorf("snapshot of %s is older than the latest snapshot %s", day, latest.Day)
			s.tel.ReportBroken(report_save, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		s.tel.ReportDebug("save snapshot", day, telemetry.KV{Key: "players", Value: len(snap.Players)})
		err = tx.UpsertSnapshot(ctx, db.UpsertSnapshotParams{Day: day, Data: data})
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "UpsertSnapshot", day)
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to upsert snapshot")
			return err
		}
		return nil
	})
}

// Get returns the snapshot taken on the given day.
func (s Store) Get(ctx context.Context, day time.Time) (prospects.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()

	row, err := s.db.GetSnapshot(ctx, Day(day))
	return s.decode(span, row, err, "GetSnapshot")
}

// LatestBefore returns the most recent snapshot taken strictly before the given day.
func (s Store) LatestBefore(ctx context.Context, day time.Time) (prospects.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "LatestBefore")
	defer span.End()

	row, err := s.db.GetLatestSnapshotBefore(ctx, Day(day))
	return s.decode(span, row, err, "GetLatestSnapshotBefore")
}

// Days lists the days that have a snapshot, oldest first.
func (s Store) Days(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.ListSnapshotDays(ctx)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "ListSnapshotDays")
		return nil, err
	}
	days := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse(DayLayout, row)
		if err != nil {
			s.tel.ReportWarning(report_decode_entry, err, row)
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

func (s Store) decode(span trace.Span, row db.Snapshot, err error, query string) (prospects.Snapshot, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return prospects.Snapshot{}, ErrNotFound
	}
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, query)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query snapshot")
		return prospects.Snapshot{}, err
	}

	var snap prospects.Snapshot
	err = json.Unmarshal(row.Data, &snap)
	if err != nil {
		s.tel.ReportBroken(report_decode_entry, err, row.Day)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode snapshot")
		return prospects.Snapshot{}, fmt.Errorf("decode snapshot of %s: %w", row.Day, err)
	}
	if snap.Players == nil {
		snap.Players = map[string]prospects.Player{}
	}
	return snap, nil
}
