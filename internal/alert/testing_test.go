package alert

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lonestarcare/carewatch/internal/alert/render"
	facilityrepo "github.com/lonestarcare/carewatch/internal/facility/repository"
	"github.com/lonestarcare/carewatch/internal/events"
	"github.com/lonestarcare/carewatch/internal/mailer"
	"github.com/lonestarcare/carewatch/internal/migration"
	notificationrepo "github.com/lonestarcare/carewatch/internal/notification/repository"
	"github.com/lonestarcare/carewatch/internal/snapshot"
	subscriptionrepo "github.com/lonestarcare/carewatch/internal/subscription/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

type fakeMailer struct {
	mu       sync.Mutex
	messages []mailer.Message
	fail     bool
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMailer) sent() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mailer.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

type alertFixture struct {
	db         *gorm.DB
	clk        *fakeClock
	mail       *fakeMailer
	store      *snapshot.MemoryStore
	dispatcher *Dispatcher
	service    *Service
	node       *snowflake.Node
}

func setupAlertTest(t *testing.T) *alertFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migration.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}

	clk := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	mail := &fakeMailer{}
	log := zap.NewNop()

	facilities := facilityrepo.Provide(db)
	subscriptions := subscriptionrepo.Provide(db)
	notifications := notificationrepo.Provide(db)

	dispatcher := &Dispatcher{
		subscriptions: subscriptions,
		notifications: notifications,
		mail:          mail,
		renderer:      render.NewRenderer(),
		genID:         node,
		clk:           clk,
		log:           log,
	}

	store := snapshot.NewMemoryStore()
	fetcher := snapshot.NewFetcher(snapshot.FetcherParams{
		Facilities: facilities,
		Clock:      clk,
		Log:        log,
	})

	service := &Service{
		subscriptions: subscriptions,
		fetcher:       fetcher,
		store:         store,
		dispatcher:    dispatcher,
		outbox:        events.NewOutbox(db, node),
		log:           log,
	}

	return &alertFixture{
		db:         db,
		clk:        clk,
		mail:       mail,
		store:      store,
		dispatcher: dispatcher,
		service:    service,
		node:       node,
	}
}

func (f *alertFixture) insertFacility(t *testing.T, operation, name string, rating float64, capacity int) {
	t.Helper()
	err := f.db.Exec(
		`INSERT INTO facilities (operation_number, operation_name, city, rating, total_capacity, inspections_2yr, violations_2yr, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		operation, name, "Austin", rating, capacity, 4, 2, f.clk.Now(),
	).Error
	if err != nil {
		t.Fatalf("insert facility: %v", err)
	}
}

func (f *alertFixture) updateFacilityRating(t *testing.T, operation string, rating float64) {
	t.Helper()
	err := f.db.Exec(
		`UPDATE facilities SET rating = ? WHERE operation_number = ?`,
		rating, operation,
	).Error
	if err != nil {
		t.Fatalf("update facility rating: %v", err)
	}
}

func (f *alertFixture) insertViolation(t *testing.T, violationID, operation, risk string, at time.Time) {
	t.Helper()
	err := f.db.Exec(
		`INSERT INTO facility_violations (violation_id, operation_number, risk_level, description, violation_date)
		 VALUES (?, ?, ?, ?, ?)`,
		violationID, operation, risk, "Standard not met", at,
	).Error
	if err != nil {
		t.Fatalf("insert violation: %v", err)
	}
}

func (f *alertFixture) insertInspection(t *testing.T, inspectionID, operation string, at time.Time) {
	t.Helper()
	err := f.db.Exec(
		`INSERT INTO facility_inspections (inspection_id, operation_number, inspection_type, result, inspection_date)
		 VALUES (?, ?, ?, ?, ?)`,
		inspectionID, operation, "Monitoring", "Completed", at,
	).Error
	if err != nil {
		t.Fatalf("insert inspection: %v", err)
	}
}

func (f *alertFixture) insertSubscriber(t *testing.T, email, name string, digest bool) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	err := f.db.Exec(
		`INSERT INTO subscribers (id, email, display_name, digest_enabled, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, email, name, digest, f.clk.Now(),
	).Error
	if err != nil {
		t.Fatalf("insert subscriber: %v", err)
	}
	return id
}

func (f *alertFixture) insertSubscription(t *testing.T, subscriberID snowflake.ID, operation, category string, active bool) {
	t.Helper()
	err := f.db.Exec(
		`INSERT INTO alert_subscriptions (id, subscriber_id, operation_number, category, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.node.Generate(), subscriberID, operation, category, active, f.clk.Now(), f.clk.Now(),
	).Error
	if err != nil {
		t.Fatalf("insert subscription: %v", err)
	}
}

type notificationRow struct {
	SubscriberID int64
	Category     string
	Message      string
	IsRead       bool
}

func (f *alertFixture) notificationRows(t *testing.T) []notificationRow {
	t.Helper()
	var rows []notificationRow
	err := f.db.Raw(
		`SELECT subscriber_id, category, message, is_read FROM notifications ORDER BY id`,
	).Scan(&rows).Error
	if err != nil {
		t.Fatalf("query notifications: %v", err)
	}
	return rows
}
