package fetch

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps at most `size` entries in process memory, least recently used entries
// are evicted first. Staleness is still decided by Cache, not by the LRU.
type MemoryStore struct {
	cache *expirable.LRU[string, Entry]
}

func NewMemoryStore(size int) MemoryStore {
	return MemoryStore{
		cache: expirable.NewLRU[string, Entry](size, nil, 0),
	}
}

func (s MemoryStore) Get(_ context.Context, identity string) (Entry, error) {
	entry, ok := s.cache.Get(identity)
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (s MemoryStore) Put(_ context.Context, entry Entry) error {
	payload := make([]byte, len(entry.Payload))
	copy(payload, entry.Payload)
	entry.Payload = payload
	s.cache.Add(entry.Identity, entry)
	return nil
}
