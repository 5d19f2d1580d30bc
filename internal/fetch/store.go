package fetch

import (
	"context"
	"errors"
	"time"
)

// ErrEntryNotFound is returned by a Store when nothing is persisted for an identity.
var ErrEntryNotFound = errors.New("cache entry not found")

// Entry is a persisted response payload.
type Entry struct {
	Identity string
	Payload  []byte
	StoredAt time.Time
}

// Store persists entries keyed by identity. Put must replace any previous entry for the
// same identity atomically with respect to Get.
type Store interface {
	Get(ctx context.Context, identity string) (Entry, error)
	Put(ctx context.Context, entry Entry) error
}
