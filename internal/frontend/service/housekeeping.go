package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/metrics"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/state"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
)

// HousekeepingService periodically deletes expired browser sessions (and with
// them their stored tokens) and drops their in-memory state.
type HousekeepingService struct {
	Store    store.Store
	Registry *state.Registry
	Metrics  *metrics.Collector
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(
	st store.Store,
	registry *state.Registry,
	m *metrics.Collector,
	logger *slog.Logger,
	interval time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Registry: registry,
		Metrics:  m,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup purges expired sessions once and returns how many were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int {
	ids, err := s.Store.Sessions().DeleteExpiredSessions(ctx, s.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
		return 0
	}

	for _, id := range ids {
		s.Registry.Drop(id)
	}

	s.Metrics.AddPurgedSessions(len(ids))
	s.Metrics.SetActiveSessions(s.Registry.Len())

	s.Logger.Info("housekeeping cleanup completed", "sessions_purged", len(ids), "sessions_active", s.Registry.Len())
	return len(ids)
}
