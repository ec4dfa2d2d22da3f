package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lonestarcare/carewatch/internal/notification/domain"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, notification *domain.Notification) error {
	if notification == nil {
		return errors.New("missing_notification")
	}
	if notification.ID == 0 {
		return errors.New("missing_notification_id")
	}
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO notifications (id, subscriber_id, operation_number, category, message, is_read, read_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		notification.ID,
		notification.SubscriberID,
		notification.OperationNumber,
		notification.Category,
		notification.Message,
		notification.IsRead,
		notification.ReadAt,
		notification.CreatedAt,
	).Error
}

func (r *Repository) ListUnreadSince(ctx context.Context, subscriberID snowflake.ID, since time.Time) ([]domain.Notification, error) {
	var rows []domain.Notification
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, subscriber_id, operation_number, category, message, is_read, read_at, created_at
		 FROM notifications
		 WHERE subscriber_id = ? AND is_read = ? AND created_at >= ?
		 ORDER BY created_at DESC, id DESC`,
		subscriberID,
		false,
		since,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListBySubscriber(ctx context.Context, subscriberID snowflake.ID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, subscriber_id, operation_number, category, message, is_read, read_at, created_at
		 FROM notifications
		 WHERE subscriber_id = ?`
	args := []any{subscriberID}
	if unreadOnly {
		query += ` AND is_read = ?`
		args = append(args, false)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	var rows []domain.Notification
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) MarkRead(ctx context.Context, ids []snowflake.ID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(
		`UPDATE notifications
		 SET is_read = ?, read_at = ?
		 WHERE id IN ? AND is_read = ?`,
		true,
		at,
		ids,
		false,
	).Error
}
