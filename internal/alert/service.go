package alert

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lonestarcare/carewatch/internal/diff"
	"github.com/lonestarcare/carewatch/internal/events"
	"github.com/lonestarcare/carewatch/internal/observability/metrics"
	"github.com/lonestarcare/carewatch/internal/snapshot"
	subscriptiondomain "github.com/lonestarcare/carewatch/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrCycleInProgress is returned when a check cycle is requested while
// another one is still running.
var ErrCycleInProgress = errors.New("alert_check_in_progress")

// CycleStats summarizes one alert check cycle.
type CycleStats struct {
	Checked       int
	Changed       int
	Failed        int
	Notifications int
}

// Service drives the alert check cycle: for every subscribed facility it
// fetches the current snapshot, diffs it against the stored one, fans out
// notifications when something changed, and advances the stored snapshot
// unconditionally.
type Service struct {
	subscriptions subscriptiondomain.Repository
	fetcher       *snapshot.Fetcher
	store         snapshot.Store
	dispatcher    *Dispatcher
	outbox        *events.Outbox
	log           *zap.Logger
	metrics       *metrics.AlertMetrics

	running atomic.Bool
}

type ServiceParams struct {
	fx.In

	Subscriptions subscriptiondomain.Repository
	Fetcher       *snapshot.Fetcher
	Store         snapshot.Store
	Dispatcher    *Dispatcher
	Outbox        *events.Outbox
	Log           *zap.Logger
}

func NewService(p ServiceParams) *Service {
	return &Service{
		subscriptions: p.Subscriptions,
		fetcher:       p.Fetcher,
		store:         p.Store,
		dispatcher:    p.Dispatcher,
		outbox:        p.Outbox,
		log:           p.Log.Named("alert.service"),
		metrics:       metrics.Alert(),
	}
}

// Bootstrap loads a baseline snapshot for every subscribed facility.
// First-seen data is never treated as a change, so nothing is diffed here.
// A failed baseline fetch degrades to the sentinel and is retried by the
// next cycle; a failed facility listing aborts startup.
func (s *Service) Bootstrap(ctx context.Context) error {
	operations, err := s.subscriptions.ListSubscribedOperations(ctx)
	if err != nil {
		return fmt.Errorf("list subscribed facilities: %w", err)
	}

	for _, operation := range operations {
		snap := s.fetcher.Fetch(ctx, operation)
		if !snap.HasData() {
			s.log.Warn("baseline snapshot unavailable",
				zap.String("operation_number", operation))
		}
		s.store.Put(operation, snap)
	}
	s.metrics.SetTrackedFacilities(s.store.Len())
	s.log.Info("snapshot store initialized", zap.Int("facilities", len(operations)))
	return nil
}

// CheckAll runs one full cycle across all subscribed facilities. At most
// one cycle runs at a time; an overlapping request returns
// ErrCycleInProgress without doing any work.
func (s *Service) CheckAll(ctx context.Context) (CycleStats, error) {
	var stats CycleStats
	if !s.running.CompareAndSwap(false, true) {
		s.metrics.IncCheckCycle("skipped")
		return stats, ErrCycleInProgress
	}
	defer s.running.Store(false)

	operations, err := s.subscriptions.ListSubscribedOperations(ctx)
	if err != nil {
		s.metrics.IncCheckCycle("failed")
		return stats, fmt.Errorf("list subscribed facilities: %w", err)
	}

	started := time.Now()
	for _, operation := range operations {
		changed, created, err := s.checkFacility(ctx, operation)
		stats.Checked++
		if err != nil {
			stats.Failed++
			s.metrics.IncFacilityChecked("failed")
			s.log.Error("facility check failed",
				zap.String("operation_number", operation),
				zap.Error(err))
			continue
		}
		s.metrics.IncFacilityChecked("ok")
		if changed {
			stats.Changed++
			stats.Notifications += created
		}
	}

	s.metrics.SetTrackedFacilities(s.store.Len())
	s.metrics.IncCheckCycle("completed")
	s.log.Info("alert check cycle completed",
		zap.Int("checked", stats.Checked),
		zap.Int("changed", stats.Changed),
		zap.Int("failed", stats.Failed),
		zap.Int("notifications", stats.Notifications),
		zap.Duration("took", time.Since(started)))
	return stats, nil
}

// checkFacility runs fetch -> diff -> dispatch -> store for one facility.
// A panic anywhere inside is contained so one bad record cannot take down
// the whole cycle.
func (s *Service) checkFacility(ctx context.Context, operation string) (changed bool, created int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("facility check panic: %v", r)
		}
	}()

	current := s.fetcher.Fetch(ctx, operation)

	var set diff.ChangeSet
	if previous, ok := s.store.Get(operation); ok {
		set = diff.Diff(previous, current)
	}

	if !set.Empty() {
		changed = true
		s.recordChangeMetrics(set)
		created = s.dispatcher.Dispatch(ctx, operation, current.FacilityName, set)
		s.publishChangeEvent(ctx, operation, current, set)
	}

	// The window advances even when nothing changed, and even when the
	// fetch degraded to the sentinel.
	s.store.Put(operation, current)
	return changed, created, nil
}

func (s *Service) recordChangeMetrics(set diff.ChangeSet) {
	if len(set.NewViolations) > 0 {
		s.metrics.IncChangeDetected(string(subscriptiondomain.CategoryViolation))
	}
	if len(set.NewInspections) > 0 {
		s.metrics.IncChangeDetected(string(subscriptiondomain.CategoryInspection))
	}
	if set.RatingChange != nil {
		s.metrics.IncChangeDetected(string(subscriptiondomain.CategoryRatingChange))
	}
}

func (s *Service) publishChangeEvent(ctx context.Context, operation string, current snapshot.Snapshot, set diff.ChangeSet) {
	payload := events.FacilityChangedPayload{
		OperationNumber: operation,
		FacilityName:    current.FacilityName,
		NewViolations:   len(set.NewViolations),
		NewInspections:  len(set.NewInspections),
		RatingChanged:   set.RatingChange != nil,
		CheckedAt:       current.ObservedAt.UTC().Format(time.RFC3339),
	}
	err := s.outbox.Publish(ctx, events.Event{
		OperationNumber: operation,
		Type:            events.EventFacilityChanged,
		Payload:         payload.ToMap(),
		DedupeKey:       fmt.Sprintf("%s:%d", events.EventFacilityChanged, current.ObservedAt.Unix()),
	})
	if err != nil {
		s.log.Warn("change event publish failed",
			zap.String("operation_number", operation),
			zap.Error(err))
	}
}
