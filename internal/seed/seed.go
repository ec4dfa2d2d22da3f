package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	demoOperationNumber = "123456"
	demoOperationName   = "Sunshine Kids Learning Center"
	demoSubscriberEmail = "demo@carewatch.local"
)

// EnsureDemoData seeds one facility and one fully subscribed demo account
// so a local instance exercises the whole pipeline out of the box.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDemoFacility(ctx, tx); err != nil {
			return err
		}
		subscriberID, err := ensureDemoSubscriber(ctx, tx, node)
		if err != nil {
			return err
		}
		return ensureDemoSubscriptions(ctx, tx, node, subscriberID)
	})
}

func ensureDemoFacility(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM facilities WHERE operation_number = ?`,
		demoOperationNumber,
	).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := time.Now().UTC()
	return tx.WithContext(ctx).Exec(
		`INSERT INTO facilities (operation_number, operation_name, city, rating, total_capacity, inspections_2yr, violations_2yr, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		demoOperationNumber,
		demoOperationName,
		"Austin",
		4.0,
		60,
		3,
		1,
		now,
	).Error
}

func ensureDemoSubscriber(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (snowflake.ID, error) {
	var existing snowflake.ID
	if err := tx.WithContext(ctx).Raw(
		`SELECT id FROM subscribers WHERE email = ?`,
		demoSubscriberEmail,
	).Scan(&existing).Error; err != nil {
		return 0, err
	}
	if existing != 0 {
		return existing, nil
	}

	id := node.Generate()
	err := tx.WithContext(ctx).Exec(
		`INSERT INTO subscribers (id, email, display_name, digest_enabled, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id,
		demoSubscriberEmail,
		"Demo Parent",
		true,
		time.Now().UTC(),
	).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func ensureDemoSubscriptions(ctx context.Context, tx *gorm.DB, node *snowflake.Node, subscriberID snowflake.ID) error {
	now := time.Now().UTC()
	for _, category := range []string{"violation", "inspection", "rating_change"} {
		var count int64
		if err := tx.WithContext(ctx).Raw(
			`SELECT COUNT(1) FROM alert_subscriptions
			 WHERE subscriber_id = ? AND operation_number = ? AND category = ?`,
			subscriberID,
			demoOperationNumber,
			category,
		).Scan(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := tx.WithContext(ctx).Exec(
			`INSERT INTO alert_subscriptions (id, subscriber_id, operation_number, category, active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			node.Generate(),
			subscriberID,
			demoOperationNumber,
			category,
			true,
			now,
			now,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
