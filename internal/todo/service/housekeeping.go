package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/store"
)

// purgeTimeout bounds a single purge so a locked database cannot wedge Stop.
const purgeTimeout = 30 * time.Second

// HousekeepingService trims the refresh token deny-list. An entry is only
// needed until the token it blocks would have expired on its own.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
	}
}

// Purge deletes deny-list entries whose token has expired and reports how
// many rows went.
func (s *HousekeepingService) Purge(ctx context.Context) (int64, error) {
	return s.Store.RevokedTokens().DeleteExpiredRevokedTokens(ctx, s.Now())
}

// Start purges once immediately and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx)
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop waits for an in-flight purge to finish.
func (s *HousekeepingService) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *HousekeepingService) tick(parent context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), purgeTimeout)
	defer cancel()

	n, err := s.Purge(ctx)
	if err != nil {
		s.Logger.Error("purge revoked tokens", "error", err)
		return
	}
	if n > 0 {
		s.Logger.Info("purged revoked tokens", "count", n)
		return
	}
	s.Logger.Debug("no revoked tokens to purge")
}
