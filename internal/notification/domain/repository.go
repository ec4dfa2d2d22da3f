package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, notification *Notification) error
	// ListUnreadSince returns a subscriber's unread notifications created at
	// or after the given time, newest first.
	ListUnreadSince(ctx context.Context, subscriberID snowflake.ID, since time.Time) ([]Notification, error)
	ListBySubscriber(ctx context.Context, subscriberID snowflake.ID, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, ids []snowflake.ID, at time.Time) error
}
