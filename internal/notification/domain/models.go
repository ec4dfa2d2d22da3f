package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	subscriptiondomain "github.com/lonestarcare/carewatch/internal/subscription/domain"
)

// Notification is one persisted in-app alert. The row is the source of
// truth for delivery; the matching email is best effort.
type Notification struct {
	ID              snowflake.ID                `gorm:"primaryKey"`
	SubscriberID    snowflake.ID                `gorm:"column:subscriber_id;not null;index"`
	OperationNumber string                      `gorm:"column:operation_number;not null"`
	Category        subscriptiondomain.Category `gorm:"column:category;not null"`
	Message         string                      `gorm:"column:message;not null"`
	IsRead          bool                        `gorm:"column:is_read;not null"`
	ReadAt          *time.Time                  `gorm:"column:read_at"`
	CreatedAt       time.Time                   `gorm:"not null"`
}

func (Notification) TableName() string { return "notifications" }
