package fetch

import (
	"context"
	"math/rand/v2"
	"prospects/internal/components/assert"
	"prospects/internal/components/chrono"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const DefaultJitterFraction = 0.25

type GateOptions struct {
	// BaseDelay is the minimum spacing between two fetches before jitter is applied.
	BaseDelay time.Duration
	Jitter    bool
	// JitterFraction defaults to DefaultJitterFraction when zero.
	JitterFraction float64
	// Random returns a value in [0, 1), it defaults to math/rand/v2.
	Random func() float64
}

// Gate enforces a minimum spacing between outbound fetches. It is safe for concurrent
// use, callers are released strictly one at a time in the order they acquire the lock.
type Gate struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	options GateOptions
	time    chrono.TimeAPI
}

func NewGate(options GateOptions, time chrono.TimeAPI) *Gate {
	assert.NotNil(time)

	if options.JitterFraction == 0 {
		options.JitterFraction = DefaultJitterFraction
	}
	if options.Random == nil {
		options.Random = rand.Float64
	}

	return &Gate{
		limiter: rate.NewLimiter(rate.Every(options.BaseDelay), 1),
		options: options,
		time:    time,
	}
}

// nextDelay returns the spacing to enforce after the fetch being released now.
func (g *Gate) nextDelay() time.Duration {
	delay := g.options.BaseDelay
	if !g.options.Jitter || delay <= 0 {
		return delay
	}
	offset := float64(delay) * g.options.JitterFraction
	// uniform in [-offset, +offset)
	return delay + time.Duration((g.options.Random()*2-1)*offset)
}

// Wait blocks until the gate deadline has passed and then pushes the deadline forward.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.time.Now()
	reservation := g.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)

	err := g.time.Sleep(ctx, delay)
	if err != nil {
		reservation.CancelAt(g.time.Now())
		return err
	}

	// the reservation's debt is paid off exactly at release, so retuning the
	// limit here makes the next token available at release + nextDelay
	release := now.Add(delay)
	g.limiter.SetLimitAt(release, rate.Every(g.nextDelay()))
	return nil
}
