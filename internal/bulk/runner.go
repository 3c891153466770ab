// Package bulk runs catalog-wide maintenance jobs on a bounded worker
// pool: attaching generated streaming servers to every item that lacks
// them, and probing every enabled provider for availability.
package bulk

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cinecraze/catman/internal/autoembed"
	"github.com/cinecraze/catman/internal/catalog"
	"github.com/cinecraze/catman/internal/store"
)

const defaultWorkers = 4

// Report aggregates the outcome of a bulk server generation run.
type Report struct {
	Generated int
	Skipped   int
}

// ProbeReport aggregates the outcome of a provider probe sweep.
type ProbeReport struct {
	Online  int
	Offline int
}

// Runner executes bulk operations against a store. Work items run on a
// fixed-size pool; cancellation is cooperative, checked between items,
// so an in-flight network call finishes before the run stops.
type Runner struct {
	store   *store.Store
	log     *slog.Logger
	workers int
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the pool size. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRunner creates a bulk runner over the given store.
func NewRunner(st *store.Store, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		store:   st,
		log:     logger.With("component", "bulk"),
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GenerateServers attaches generated embed servers to every item that has
// none. Items without a usable title are skipped, as is every duplicate
// after the first occurrence of an identity, so a catalog with repeated
// entries is only filled once per identity. Returns the aggregate counts;
// the error is non-nil only when the context was canceled.
func (r *Runner) GenerateServers(ctx context.Context, gen *autoembed.Generator) (Report, error) {
	items := r.store.AllContent()
	configs := r.store.EnabledServerConfigs()

	var generated, skipped atomic.Int64
	seen := make(map[catalog.EntityKey]bool, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			break
		}
		if item.HasServers() || item.Title == "" {
			skipped.Add(1)
			continue
		}
		key := item.Key()
		if seen[key] {
			skipped.Add(1)
			continue
		}
		seen[key] = true

		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			urls := gen.URLs(item.DisplayTitle(), configs)
			if len(urls) == 0 {
				skipped.Add(1)
				return nil
			}
			for _, raw := range urls {
				if srv, ok := catalog.ParseServer(raw); ok {
					item.AddServer(srv)
				}
			}
			r.store.UpdateContent(item)
			generated.Add(1)
			r.log.Debug("servers generated",
				"title", item.DisplayTitle(), "count", len(item.Servers))
			return nil
		})
	}

	err := g.Wait()
	report := Report{
		Generated: int(generated.Load()),
		Skipped:   int(skipped.Load()),
	}
	r.log.Info("bulk generation finished",
		"generated", report.Generated, "skipped", report.Skipped)
	return report, err
}

// ProbeAll checks every enabled provider for availability and persists
// the result on each configuration. Disabled providers are left alone.
func (r *Runner) ProbeAll(ctx context.Context, prober *autoembed.Prober) (ProbeReport, error) {
	configs := r.store.ServerConfigs()

	var online, offline atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, cfg := range configs {
		if err := ctx.Err(); err != nil {
			break
		}
		if !cfg.Enabled {
			continue
		}

		cfg := cfg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok := prober.Check(ctx, cfg)
			cfg.SetOnline(ok)
			r.store.UpdateServerConfig(cfg)
			if ok {
				online.Add(1)
			} else {
				offline.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	report := ProbeReport{
		Online:  int(online.Load()),
		Offline: int(offline.Load()),
	}
	r.log.Info("probe sweep finished",
		"online", report.Online, "offline", report.Offline)
	return report, err
}
