// Package scheduler owns the two periodic tasks of the alert pipeline:
// the recurring alert check and the daily digest. It also exposes the
// operator-facing manual trigger.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lonestarcare/carewatch/internal/alert"
	"github.com/lonestarcare/carewatch/internal/clock"
	"github.com/lonestarcare/carewatch/internal/digest"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Result reports the outcome of a manual alert check.
type Result struct {
	Success bool
	Message string
}

type Scheduler struct {
	alerts  *alert.Service
	digests *digest.Service
	clk     clock.Clock
	log     *zap.Logger
	cfg     Config

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type Params struct {
	fx.In

	Alerts  *alert.Service
	Digests *digest.Service
	Clock   clock.Clock
	Log     *zap.Logger
	Config  Config `optional:"true"`
}

func New(p Params) *Scheduler {
	return &Scheduler{
		alerts:  p.Alerts,
		digests: p.Digests,
		clk:     p.Clock,
		log:     p.Log.Named("scheduler"),
		cfg:     p.Config.withDefaults(),
	}
}

// Init bootstraps the snapshot store and starts both periodic tasks.
// Calling Init on an already started scheduler is a no-op.
func (s *Scheduler) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	if err := s.alerts.Bootstrap(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(2)
	go s.runCheckLoop(taskCtx)
	go s.runDigestLoop(taskCtx)
	s.started = true
	s.log.Info("scheduler started",
		zap.Duration("check_interval", s.cfg.CheckInterval),
		zap.Int("digest_hour", s.cfg.DigestHour))
	return nil
}

// Stop cancels both periodic tasks and waits for them to exit. Safe to
// call repeatedly, and before Init.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.started = false
	s.log.Info("scheduler stopped")
}

// RunManualCheck runs exactly one alert check cycle synchronously. It
// never starts the periodic tasks and shares the cycle latch with them,
// so a run overlapping a scheduled tick is refused rather than doubled.
func (s *Scheduler) RunManualCheck(ctx context.Context) Result {
	stats, err := s.alerts.CheckAll(ctx)
	if err != nil {
		if errors.Is(err, alert.ErrCycleInProgress) {
			return Result{Success: false, Message: "an alert check cycle is already running"}
		}
		return Result{Success: false, Message: fmt.Sprintf("alert check failed: %v", err)}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("checked %d facilities: %d changed, %d notifications created",
			stats.Checked, stats.Changed, stats.Notifications),
	}
}

func (s *Scheduler) runCheckLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if _, err := s.alerts.CheckAll(ctx); err != nil {
			if errors.Is(err, alert.ErrCycleInProgress) {
				s.log.Warn("scheduled check skipped, cycle already running")
				continue
			}
			s.log.Error("scheduled alert check failed", zap.Error(err))
		}
	}
}

func (s *Scheduler) runDigestLoop(ctx context.Context) {
	defer s.wg.Done()
	for {
		now := s.clk.Now()
		wait := nextDigestAt(now, s.cfg.DigestHour).Sub(now)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		if _, err := s.digests.Run(ctx); err != nil {
			s.log.Error("digest run failed", zap.Error(err))
		}
	}
}

// nextDigestAt returns the next occurrence of the digest hour strictly
// after now.
func nextDigestAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
