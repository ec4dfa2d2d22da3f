package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lonestarcare/carewatch/internal/migration"
	"github.com/lonestarcare/carewatch/internal/subscription/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (*gorm.DB, *snowflake.Node) {
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
	return db, node
}

func insertSubscriber(t *testing.T, db *gorm.DB, node *snowflake.Node, email string, digest bool) snowflake.ID {
	t.Helper()
	id := node.Generate()
	err := db.Exec(
		`INSERT INTO subscribers (id, email, display_name, digest_enabled, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, email, email, digest, time.Now(),
	).Error
	if err != nil {
		t.Fatalf("insert subscriber: %v", err)
	}
	return id
}

func insertSubscription(t *testing.T, db *gorm.DB, node *snowflake.Node, subscriberID snowflake.ID, operation, category string, active bool) {
	t.Helper()
	err := db.Exec(
		`INSERT INTO alert_subscriptions (id, subscriber_id, operation_number, category, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		node.Generate(), subscriberID, operation, category, active, time.Now(), time.Now(),
	).Error
	if err != nil {
		t.Fatalf("insert subscription: %v", err)
	}
}

func TestListSubscribedOperationsIsDistinctAndActiveOnly(t *testing.T) {
	db, node := setupRepo(t)
	repo := Provide(db)

	a := insertSubscriber(t, db, node, "a@example.com", false)
	b := insertSubscriber(t, db, node, "b@example.com", false)
	insertSubscription(t, db, node, a, "100001", "violation", true)
	insertSubscription(t, db, node, b, "100001", "inspection", true)
	insertSubscription(t, db, node, a, "100002", "violation", true)
	insertSubscription(t, db, node, b, "100003", "violation", false)

	operations, err := repo.ListSubscribedOperations(context.Background())
	if err != nil {
		t.Fatalf("list operations: %v", err)
	}
	if len(operations) != 2 {
		t.Fatalf("expected 2 distinct active operations, got %v", operations)
	}
	if operations[0] != "100001" || operations[1] != "100002" {
		t.Fatalf("unexpected ordering %v", operations)
	}
}

func TestListActiveRecipientsFiltersCategoryAndActive(t *testing.T) {
	db, node := setupRepo(t)
	repo := Provide(db)

	a := insertSubscriber(t, db, node, "a@example.com", false)
	b := insertSubscriber(t, db, node, "b@example.com", false)
	c := insertSubscriber(t, db, node, "c@example.com", false)
	insertSubscription(t, db, node, a, "100001", "violation", true)
	insertSubscription(t, db, node, b, "100001", "violation", false)
	insertSubscription(t, db, node, c, "100001", "inspection", true)

	recipients, err := repo.ListActiveRecipients(context.Background(), "100001", domain.CategoryViolation)
	if err != nil {
		t.Fatalf("list recipients: %v", err)
	}
	if len(recipients) != 1 {
		t.Fatalf("expected 1 active violation recipient, got %d", len(recipients))
	}
	if recipients[0].SubscriberID != a || recipients[0].Email != "a@example.com" {
		t.Fatalf("unexpected recipient %+v", recipients[0])
	}
}

func TestListDigestRecipients(t *testing.T) {
	db, node := setupRepo(t)
	repo := Provide(db)

	insertSubscriber(t, db, node, "optin@example.com", true)
	insertSubscriber(t, db, node, "optout@example.com", false)

	recipients, err := repo.ListDigestRecipients(context.Background())
	if err != nil {
		t.Fatalf("list digest recipients: %v", err)
	}
	if len(recipients) != 1 || recipients[0].Email != "optin@example.com" {
		t.Fatalf("unexpected digest recipients %+v", recipients)
	}
}
