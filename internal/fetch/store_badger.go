package fetch

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/codes"
)

type badgerRecord struct {
	Payload  []byte
	StoredAt int64
}

// BadgerStore persists entries in a badger key/value directory.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a badger directory at path, an empty path keeps
// everything in memory.
func OpenBadgerStore(path string) (BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return BadgerStore{}, err
	}
	return BadgerStore{db: db}, nil
}

func NewBadgerStore(db *badger.DB) BadgerStore {
	return BadgerStore{db: db}
}

func (s BadgerStore) Close() error {
	return s.db.Close()
}

func (s BadgerStore) Get(ctx context.Context, identity string) (Entry, error) {
	_, span := tracer.Start(ctx, "badger:get")
	defer span.End()

	var serialized []byte
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(identity))
		if err != nil {
			return err
		}
		serialized, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, ErrEntryNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item from badger")
		return Entry{}, err
	}

	var record badgerRecord
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deserialize cached item")
		return Entry{}, err
	}

	return Entry{
		Identity: identity,
		Payload:  record.Payload,
		StoredAt: time.Unix(0, record.StoredAt),
	}, nil
}

func (s BadgerStore) Put(ctx context.Context, entry Entry) error {
	_, span := tracer.Start(ctx, "badger:put")
	defer span.End()

	serialized := bytes.NewBuffer(nil)
	err := gob.NewEncoder(serialized).Encode(badgerRecord{
		Payload:  entry.Payload,
		StoredAt: entry.StoredAt.UnixNano(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize entry")
		return err
	}

	err = s.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(entry.Identity), serialized.Bytes())
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set badger item")
		return err
	}
	return nil
}
