package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Category is the kind of facility change a subscriber wants to hear about.
type Category string

const (
	CategoryViolation    Category = "violation"
	CategoryInspection   Category = "inspection"
	CategoryRatingChange Category = "rating_change"
	CategoryNews         Category = "news"
)

// Valid reports whether the category is one the pipeline dispatches.
func (c Category) Valid() bool {
	switch c {
	case CategoryViolation, CategoryInspection, CategoryRatingChange, CategoryNews:
		return true
	}
	return false
}

// Subscriber is the contact record alerts are delivered to.
type Subscriber struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	Email         string       `gorm:"not null;uniqueIndex"`
	DisplayName   string       `gorm:"column:display_name"`
	DigestEnabled bool         `gorm:"column:digest_enabled;not null"`
	CreatedAt     time.Time    `gorm:"not null"`
}

func (Subscriber) TableName() string { return "subscribers" }

// AlertSubscription ties one subscriber to one facility's alert category.
// Rows are deactivated on unsubscribe, never deleted here.
type AlertSubscription struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	SubscriberID    snowflake.ID `gorm:"column:subscriber_id;not null;index"`
	OperationNumber string       `gorm:"column:operation_number;not null;index"`
	Category        Category     `gorm:"column:category;not null"`
	Active          bool         `gorm:"column:active;not null"`
	CreatedAt       time.Time    `gorm:"not null"`
	UpdatedAt       time.Time    `gorm:"not null"`
}

func (AlertSubscription) TableName() string { return "alert_subscriptions" }

// Recipient is a subscriber resolved for delivery of one alert.
type Recipient struct {
	SubscriberID snowflake.ID
	Email        string
	DisplayName  string
}
