package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tn-weather/models"

	"github.com/jonboulle/clockwork"
)

// Snapshotter produces snapshots for a city.
type Snapshotter interface {
	Snapshot(ctx context.Context, city string) models.Snapshot
	HasCredential() bool
}

// Store receives refreshed snapshots. Issue hands out a sequence number before
// the fetch starts so that slow, older fetches cannot overwrite newer ones.
type Store interface {
	Issue() uint64
	Update(snap models.Snapshot) bool
}

// Refresher keeps the latest snapshot of a set of cities in a Store
type Refresher struct {
	source   Snapshotter
	store    Store
	cities   []string
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewRefresher creates a refresher for cities
func NewRefresher(source Snapshotter, store Store, cities []string, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *Refresher {
	return &Refresher{
		source:   source,
		store:    store,
		cities:   cities,
		interval: interval,
		clock:    clock,
		logger:   logger.With("component", "refresher"),
	}
}

// Run does an initial refresh of every city, then refreshes on the interval
// until ctx is canceled. Without a credential only the initial refresh runs,
// since every later result would be the same mock data.
func (r *Refresher) Run(ctx context.Context) error {
	r.RefreshAll(ctx)

	if !r.source.HasCredential() {
		r.logger.Info("auto-refresh disabled, no API key configured")
		return nil
	}

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("auto-refresh started", "interval", r.interval, "cities", len(r.cities))

	for {
		select {
		case <-ticker.Chan():
			r.RefreshAll(ctx)
		case <-ctx.Done():
			r.logger.Info("auto-refresh stopped")
			return nil
		}
	}
}

// RefreshAll refreshes every city concurrently and waits for all of them
func (r *Refresher) RefreshAll(ctx context.Context) {
	var wg sync.WaitGroup

	for _, city := range r.cities {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()
			r.refresh(ctx, city)
		}(city)
	}

	wg.Wait()
}

// refresh performs a single snapshot for a city
func (r *Refresher) refresh(ctx context.Context, city string) {
	seq := r.store.Issue()
	snap := r.source.Snapshot(ctx, city)
	snap.Seq = seq

	if !r.store.Update(snap) {
		r.logger.Debug("discarded stale snapshot", "city", city, "seq", seq)
		return
	}

	r.logger.Debug("refreshed snapshot", "city", city, "seq", seq, "mock", snap.Current.IsMockData)
}
