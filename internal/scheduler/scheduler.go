package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/climatedash/emissions-dashboard/internal/emissions"
)

// Warmer periodically refreshes reference data and the default top-emitter
// ranking so dashboard requests rarely hit a cold cache.
type Warmer struct {
	scheduler *gocron.Scheduler
	service   *emissions.Service
	interval  time.Duration
}

// New creates a Warmer running at the given interval, which should sit just
// inside the cache window.
func New(service *emissions.Service, interval time.Duration) *Warmer {
	return &Warmer{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start runs one warm-up immediately (loading country names for display)
// and schedules the periodic refresh.
func (w *Warmer) Start() error {
	minutes := int(w.interval.Minutes())
	if minutes <= 0 {
		minutes = 25
	}

	_, err := w.scheduler.Every(minutes).Minutes().Do(w.warm)
	if err != nil {
		return err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		w.service.InitializeCountryNames(ctx)
	}()

	w.scheduler.StartAsync()
	return nil
}

// warm re-fetches the views that back the default dashboard landing page.
func (w *Warmer) warm() {
	log.Println("scheduler: warming emissions caches")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	w.service.CountryDefinitions(ctx)
	w.service.SectorDefinitions(ctx)
	w.service.CountryEmissions(ctx, emissions.QueryOptions{})

	log.Println("scheduler: warm-up complete")
}

// Stop stops the scheduler and cancels any future jobs.
func (w *Warmer) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}
