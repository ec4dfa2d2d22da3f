// Package digest batches a subscriber's unread notifications into one
// daily email. It has no diff logic of its own; it only aggregates rows
// the alert pipeline already persisted.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lonestarcare/carewatch/internal/alert/render"
	"github.com/lonestarcare/carewatch/internal/clock"
	"github.com/lonestarcare/carewatch/internal/mailer"
	notificationdomain "github.com/lonestarcare/carewatch/internal/notification/domain"
	obslog "github.com/lonestarcare/carewatch/internal/observability/logger"
	subscriptiondomain "github.com/lonestarcare/carewatch/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const lookback = 24 * time.Hour

type Service struct {
	subscriptions subscriptiondomain.Repository
	notifications notificationdomain.Repository
	mail          mailer.Mailer
	renderer      render.Renderer
	clk           clock.Clock
	log           *zap.Logger
}

type ServiceParams struct {
	fx.In

	Subscriptions subscriptiondomain.Repository
	Notifications notificationdomain.Repository
	Mail          mailer.Mailer
	Renderer      render.Renderer
	Clock         clock.Clock
	Log           *zap.Logger
}

func NewService(p ServiceParams) *Service {
	return &Service{
		subscriptions: p.Subscriptions,
		notifications: p.Notifications,
		mail:          p.Mail,
		renderer:      p.Renderer,
		clk:           p.Clock,
		log:           p.Log.Named("digest.service"),
	}
}

// Run sends one digest per opted-in subscriber covering the trailing 24
// hours. Subscribers with nothing unread are skipped. Items are only
// marked read after their digest was handed to the mailer, so a failed
// send rolls them into the next digest.
func (s *Service) Run(ctx context.Context) (int, error) {
	recipients, err := s.subscriptions.ListDigestRecipients(ctx)
	if err != nil {
		return 0, fmt.Errorf("list digest recipients: %w", err)
	}

	now := s.clk.Now()
	since := now.Add(-lookback)
	sent := 0
	for _, recipient := range recipients {
		if err := s.runForSubscriber(ctx, recipient, since, now); err != nil {
			s.log.Warn("digest delivery failed",
				zap.String("subscriber", recipient.SubscriberID.String()),
				zap.String("email", obslog.MaskEmail(recipient.Email)),
				zap.Error(err))
			continue
		}
		sent++
	}
	s.log.Info("digest run completed",
		zap.Int("recipients", len(recipients)),
		zap.Int("sent", sent))
	return sent, nil
}

func (s *Service) runForSubscriber(ctx context.Context, recipient subscriptiondomain.Recipient, since, now time.Time) error {
	rows, err := s.notifications.ListUnreadSince(ctx, recipient.SubscriberID, since)
	if err != nil {
		return fmt.Errorf("list unread notifications: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	items := make([]render.DigestItem, 0, len(rows))
	ids := make([]snowflake.ID, 0, len(rows))
	for _, row := range rows {
		items = append(items, render.DigestItem{
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		})
		ids = append(ids, row.ID)
	}

	html, err := s.renderer.RenderDigest(render.DigestInput{
		DisplayName: recipient.DisplayName,
		Date:        now,
		Items:       items,
	})
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	subject := digestSubject(len(rows))
	if err := s.mail.Send(ctx, mailer.Message{
		To:      recipient.Email,
		ToName:  recipient.DisplayName,
		Subject: subject,
		HTML:    html,
		Text:    subject,
	}); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	if err := s.notifications.MarkRead(ctx, ids, now); err != nil {
		// The email already went out; log and move on rather than retry
		// into a duplicate digest.
		s.log.Error("mark digest notifications read failed",
			zap.String("subscriber", recipient.SubscriberID.String()),
			zap.Error(err))
	}
	return nil
}

func digestSubject(count int) string {
	if count == 1 {
		return "CareWatch daily digest: 1 update"
	}
	return fmt.Sprintf("CareWatch daily digest: %d updates", count)
}
