package repository

import (
	"context"

	"github.com/lonestarcare/carewatch/internal/subscription/domain"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) ListSubscribedOperations(ctx context.Context) ([]string, error) {
	var operations []string
	err := r.db.WithContext(ctx).Raw(
		`SELECT DISTINCT operation_number
		 FROM alert_subscriptions
		 WHERE active = ?
		 ORDER BY operation_number`,
		true,
	).Scan(&operations).Error
	if err != nil {
		return nil, err
	}
	return operations, nil
}

func (r *Repository) ListActiveRecipients(ctx context.Context, operationNumber string, category domain.Category) ([]domain.Recipient, error) {
	var recipients []domain.Recipient
	err := r.db.WithContext(ctx).Raw(
		`SELECT s.id AS subscriber_id, s.email, s.display_name
		 FROM alert_subscriptions sub
		 JOIN subscribers s ON s.id = sub.subscriber_id
		 WHERE sub.operation_number = ? AND sub.category = ? AND sub.active = ?
		 ORDER BY s.id`,
		operationNumber,
		category,
		true,
	).Scan(&recipients).Error
	if err != nil {
		return nil, err
	}
	return recipients, nil
}

func (r *Repository) ListDigestRecipients(ctx context.Context) ([]domain.Recipient, error) {
	var recipients []domain.Recipient
	err := r.db.WithContext(ctx).Raw(
		`SELECT id AS subscriber_id, email, display_name
		 FROM subscribers
		 WHERE digest_enabled = ?
		 ORDER BY id`,
		true,
	).Scan(&recipients).Error
	if err != nil {
		return nil, err
	}
	return recipients, nil
}
