package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"prospects/internal/components/assert"
	"prospects/internal/components/chrono"
	"prospects/internal/components/telemetry"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("prospects/internal/fetch")

const (
	report_cache_get   = "cache.get"
	report_cache_store = "cache.store"
)

const DefaultTTL = 24 * time.Hour

// Request is the shape of an outbound fetch.
type Request struct {
	URL     string
	Params  map[string]string
	Headers map[string]string
}

// FullURL returns the url with Params merged into its query string. Keys are sorted so
// equal requests always produce the same url.
func (r Request) FullURL() (string, error) {
	if len(r.Params) == 0 {
		return r.URL, nil
	}
	parsed, err := url.Parse(r.URL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	for k, v := range r.Params {
		query.Set(k, v)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// TransportError is a network or non-success HTTP failure of an uncached fetch.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transport performs the actual network fetch.
type Transport interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

type Options struct {
	// TTL defaults to DefaultTTL when zero.
	TTL       time.Duration
	Store     Store
	Gate      *Gate
	Transport Transport
	Time      chrono.TimeAPI
	Tel       telemetry.API
}

// Cache serves fresh stored payloads and otherwise fetches through the gate.
type Cache struct {
	ttl       time.Duration
	store     Store
	gate      *Gate
	transport Transport
	time      chrono.TimeAPI
	tel       telemetry.API
}

func NewCache(opts Options) *Cache {
	assert.NotNil(opts.Store)
	assert.NotNil(opts.Gate)
	assert.NotNil(opts.Transport)
	assert.NotNil(opts.Time)
	assert.NotNil(opts.Tel)

	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		ttl:       ttl,
		store:     opts.Store,
		gate:      opts.Gate,
		transport: opts.Transport,
		time:      opts.Time,
		tel:       telemetry.NewScopedAPI("fetch_cache", opts.Tel),
	}
}

// Get returns the payload for the request. A fresh entry is returned without touching the
// gate, anything else waits on the gate, fetches and overwrites the stored entry. Failed
// fetches are never stored.
func (c *Cache) Get(ctx context.Context, req Request) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()

	fullUrl, err := req.FullURL()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build url")
		return nil, fmt.Errorf("build url: %w", err)
	}
	identity := Identity(fullUrl, req.Headers)
	span.SetAttributes(
		attribute.String("url", fullUrl),
		attribute.String("identity", identity),
	)

	entry, err := c.store.Get(ctx, identity)
	switch {
	case err == nil:
		age := c.time.Now().Sub(entry.StoredAt)
		if age < c.ttl {
			span.AddEvent("cache hit")
			c.tel.ReportDebug("loaded url from cache", fullUrl)
			return entry.Payload, nil
		}
		c.tel.ReportDebug("fetching document because it is expired", fullUrl, age.String())
	case errors.Is(err, ErrEntryNotFound):
		c.tel.ReportDebug("fetching document because it was not stored", fullUrl)
	default:
		// an unreadable entry is treated like a miss, the refetch overwrites it
		c.tel.ReportWarning(report_cache_get, fmt.Errorf("read entry: %w", err), fullUrl)
	}

	err = c.gate.Wait(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gate wait interrupted")
		return nil, err
	}

	payload, err := c.transport.Fetch(ctx, fullUrl, req.Headers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}

	err = c.store.Put(ctx, Entry{
		Identity: identity,
		Payload:  payload,
		StoredAt: c.time.Now(),
	})
	if err != nil {
		c.tel.ReportBroken(report_cache_store, err, fullUrl)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store entry")
		return nil, fmt.Errorf("store entry: %w", err)
	}

	c.tel.ReportDebug("loaded url from web", fullUrl)
	return payload, nil
}
