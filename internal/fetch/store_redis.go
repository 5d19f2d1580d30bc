package fetch

import (
	"context"
	"prospects/internal/components/assert"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "prospects:cache:"

// RedisStore persists every entry as a hash. It assumes a single writing process, there is
// no coordination between processes sharing the same redis.
type RedisStore struct {
	client *redis.Client
}

// OpenRedisStore connects to the given redis:// url and pings it.
func OpenRedisStore(ctx context.Context, redisURL string) (RedisStore, error) {
	assert.NotEmptyStr(redisURL)

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return RedisStore{}, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return RedisStore{}, err
	}
	return RedisStore{client: client}, nil
}

func NewRedisStore(client *redis.Client) RedisStore {
	return RedisStore{client: client}
}

func (s RedisStore) Close() error {
	return s.client.Close()
}

func (s RedisStore) Get(ctx context.Context, identity string) (Entry, error) {
	fields, err := s.client.HGetAll(ctx, redisKeyPrefix+identity).Result()
	if err != nil {
		return Entry{}, err
	}
	payload, hasPayload := fields["payload"]
	storedAt, hasStoredAt := fields["stored_at"]
	if !hasPayload || !hasStoredAt {
		return Entry{}, ErrEntryNotFound
	}
	nanos, err := strconv.ParseInt(storedAt, 10, 64)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Identity: identity,
		Payload:  []byte(payload),
		StoredAt: time.Unix(0, nanos),
	}, nil
}

// Put writes both fields with a single HSET so readers never observe half an entry.
func (s RedisStore) Put(ctx context.Context, entry Entry) error {
	return s.client.HSet(
		ctx,
		redisKeyPrefix+entry.Identity,
		"payload", entry.Payload,
		"stored_at", strconv.FormatInt(entry.StoredAt.UnixNano(), 10),
	).Err()
}
