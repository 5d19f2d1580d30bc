package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"prospects/internal/components/chrono"
	"prospects/internal/components/telemetry"
	"prospects/internal/db"
	"prospects/internal/fetch"
	"prospects/internal/prospects"
	"prospects/internal/scrapers/eliteprospects"
	"prospects/internal/snapshot"
	configlibsql "prospects/lib/configutil/libsql"
	"prospects/lib/restyutil"
	"prospects/lib/serviceutil"
	"time"
)

var signalContext = serviceutil.SignalContext

// app is everything a command needs, built from the loaded config.
type app struct {
	config    Config
	time      chrono.TimeAPI
	tel       telemetry.API
	scraper   eliteprospects.Scraper
	snapshots snapshot.Store
	closers   []func() error
}

func newApp(ctx context.Context, config Config) (*app, error) {
	a := &app{
		config: config,
		time:   chrono.NewStandardTime(),
		tel:    telemetry.SlogAPI{},
	}

	store, err := a.openCacheStore(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open request cache: %w", err)
	}

	transportOptions := fetch.TransportOptions{}
	if dumpHttp != "" {
		output, err := restyutil.NewFilesystemOutput(dumpHttp)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("prepare --dump-http directory: %w", err)
		}
		transportOptions.Dump = output
	}

	cache := fetch.NewCache(fetch.Options{
		TTL:       config.TTL(),
		Store:     store,
		Gate:      fetch.NewGate(config.GateOptions(), a.time),
		Transport: fetch.NewRestyTransport(transportOptions, a.tel),
		Time:      a.time,
		Tel:       a.tel,
	})
	a.scraper = eliteprospects.NewScraper(cache, a.time, a.tel)

	database, err := config.Snapshots.OpenDB()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	a.closers = append(a.closers, database.Close)

	a.snapshots, err = snapshot.NewStore(ctx, database, a.tel)
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) openCacheStore(ctx context.Context) (fetch.Store, error) {
	cfg := a.config.Cache
	switch cfg.Backend {
	case BACKEND_MEMORY:
		return fetch.NewMemoryStore(4096), nil
	case BACKEND_REDIS:
		store, err := fetch.OpenRedisStore(ctx, cfg.RedisUrl)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case BACKEND_SQLITE:
		database, err := configlibsql.Struct{File: cfg.Path}.OpenDB()
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		_, err = database.ExecContext(ctx, db.Schema)
		if err != nil {
			return nil, fmt.Errorf("apply schema: %w", err)
		}
		return fetch.NewSQLiteStore(database), nil
	default:
		store, err := fetch.OpenBadgerStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	}
}

func (a *app) close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	if err := errors.Join(errs...); err != nil {
		slog.Warn("failed to close resources", "err", err)
	}
}

func (a *app) seasonEnd() int {
	if a.config.Season != 0 {
		return a.config.Season
	}
	return prospects.SeasonEnd(a.time.Now())
}

// scrape reads today's snapshot through the request cache and saves it unless
// --no-persist was given.
func (a *app) scrape(ctx context.Context) (prospects.Snapshot, error) {
	started := time.Now()
	snap, err := a.scraper.Snapshot(ctx, a.config.Organizations)
	if err != nil {
		return prospects.Snapshot{}, err
	}
	slog.Info("scraped snapshot", "players", len(snap.Players), "seconds", time.Since(started).Seconds())

	if noPersist {
		return snap, nil
	}
	err = a.snapshots.Save(ctx, snap)
	if err != nil {
		return prospects.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

func players(snap prospects.Snapshot) []prospects.Player {
	out := make([]prospects.Player, 0, len(snap.Players))
	for url, player := range snap.Players {
		if player.URL == "" {
			player.URL = url
		}
		out = append(out, player)
	}
	return out
}
