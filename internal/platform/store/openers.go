package store

import (
	"context"
	"fmt"
	"time"

	perr "paperscope/internal/platform/errors"
	"paperscope/internal/platform/store/pg"
)

// openPG builds the postgres client, verifies connectivity with a short
// retry loop, and returns the adapter the Store publishes as its PG seam
func openPG(ctx context.Context, cfg Config, s *Store) (*pgAdapter, error) {
	if cfg.PG.URL == "" {
		return nil, perr.Unavailablef("pg: empty url")
	}

	pcfg := pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}

	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	client, err := pg.Open(ctx, pcfg, tracer, nil)
	if err != nil {
		return nil, fmt.Errorf("pg open: %w", err)
	}

	adapter := newPGAdapter(client)

	retries := cfg.PG.ConnectRetries
	if retries <= 0 {
		retries = 1
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = adapter.Ping(pctx)
		cancel()
		if lastErr == nil {
			return adapter, nil
		}
		s.Log.Warn().
			Int("attempt", attempt).
			Int("retries", retries).
			Err(lastErr).
			Msg("pg ping failed")
		if attempt < retries {
			select {
			case <-ctx.Done():
				adapter.p.Close()
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
	}
	adapter.p.Close()
	return nil, fmt.Errorf("pg ping: %w", lastErr)
}
