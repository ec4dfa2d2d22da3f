package alert

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/lonestarcare/carewatch/internal/alert/render"
	"github.com/lonestarcare/carewatch/internal/clock"
	"github.com/lonestarcare/carewatch/internal/diff"
	facilitydomain "github.com/lonestarcare/carewatch/internal/facility/domain"
	"github.com/lonestarcare/carewatch/internal/mailer"
	notificationdomain "github.com/lonestarcare/carewatch/internal/notification/domain"
	obslog "github.com/lonestarcare/carewatch/internal/observability/logger"
	"github.com/lonestarcare/carewatch/internal/observability/metrics"
	"github.com/lonestarcare/carewatch/internal/snapshot"
	subscriptiondomain "github.com/lonestarcare/carewatch/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Dispatcher fans a change-set out to the facility's subscribers. Each
// category is dispatched independently; the persisted notification row is
// the source of truth and the email is best effort.
type Dispatcher struct {
	subscriptions subscriptiondomain.Repository
	notifications notificationdomain.Repository
	mail          mailer.Mailer
	renderer      render.Renderer
	genID         *snowflake.Node
	clk           clock.Clock
	log           *zap.Logger
	metrics       *metrics.AlertMetrics
}

type DispatcherParams struct {
	fx.In

	Subscriptions subscriptiondomain.Repository
	Notifications notificationdomain.Repository
	Mail          mailer.Mailer
	Renderer      render.Renderer
	GenID         *snowflake.Node
	Clock         clock.Clock
	Log           *zap.Logger
}

func NewDispatcher(p DispatcherParams) *Dispatcher {
	return &Dispatcher{
		subscriptions: p.Subscriptions,
		notifications: p.Notifications,
		mail:          p.Mail,
		renderer:      p.Renderer,
		genID:         p.GenID,
		clk:           p.Clock,
		log:           p.Log.Named("alert.dispatcher"),
		metrics:       metrics.Alert(),
	}
}

// Dispatch emits notifications for every category present in the
// change-set and returns the number of notification rows created.
func (d *Dispatcher) Dispatch(ctx context.Context, operationNumber, facilityName string, set diff.ChangeSet) int {
	created := 0
	if len(set.NewViolations) > 0 {
		created += d.dispatchViolations(ctx, operationNumber, facilityName, set.NewViolations)
	}
	if len(set.NewInspections) > 0 {
		created += d.dispatchInspections(ctx, operationNumber, facilityName, set.NewInspections)
	}
	if set.RatingChange != nil {
		created += d.dispatchRatingChange(ctx, operationNumber, facilityName, set.RatingChange)
	}
	return created
}

func (d *Dispatcher) dispatchViolations(ctx context.Context, operationNumber, facilityName string, violations []facilitydomain.Violation) int {
	message := violationMessage(len(violations), facilityName)

	views := make([]render.ViolationView, 0, len(violations))
	for _, v := range violations {
		views = append(views, render.ViolationView{
			RiskLevel:   v.RiskLevel,
			Description: v.Description,
			Date:        v.ViolationDate,
		})
	}
	html, err := d.renderer.RenderViolations(render.ViolationsInput{
		FacilityName: facilityName,
		Violations:   views,
	})
	if err != nil {
		d.log.Error("render violation email failed",
			zap.String("operation_number", operationNumber),
			zap.Error(err))
	}

	return d.fanOut(ctx, operationNumber, subscriptiondomain.CategoryViolation, message, html)
}

func (d *Dispatcher) dispatchInspections(ctx context.Context, operationNumber, facilityName string, inspections []facilitydomain.Inspection) int {
	message := inspectionMessage(len(inspections), facilityName)

	views := make([]render.InspectionView, 0, len(inspections))
	for _, i := range inspections {
		views = append(views, render.InspectionView{
			Type:   i.InspectionType,
			Result: i.Result,
			Date:   i.InspectionDate,
		})
	}
	html, err := d.renderer.RenderInspections(render.InspectionsInput{
		FacilityName: facilityName,
		Inspections:  views,
	})
	if err != nil {
		d.log.Error("render inspection email failed",
			zap.String("operation_number", operationNumber),
			zap.Error(err))
	}

	return d.fanOut(ctx, operationNumber, subscriptiondomain.CategoryInspection, message, html)
}

func (d *Dispatcher) dispatchRatingChange(ctx context.Context, operationNumber, facilityName string, change *diff.RatingChange) int {
	message := ratingMessage(facilityName)

	html, err := d.renderer.RenderRatingChange(render.RatingInput{
		FacilityName: facilityName,
		Fields:       ratingFieldRows(change),
	})
	if err != nil {
		d.log.Error("render rating email failed",
			zap.String("operation_number", operationNumber),
			zap.Error(err))
	}

	return d.fanOut(ctx, operationNumber, subscriptiondomain.CategoryRatingChange, message, html)
}

// fanOut persists one notification per active recipient and attempts the
// matching email. A failed insert skips that recipient only; a failed send
// never rolls back the row.
func (d *Dispatcher) fanOut(ctx context.Context, operationNumber string, category subscriptiondomain.Category, message, html string) int {
	recipients, err := d.subscriptions.ListActiveRecipients(ctx, operationNumber, category)
	if err != nil {
		d.log.Error("recipient lookup failed",
			zap.String("operation_number", operationNumber),
			zap.String("category", string(category)),
			zap.Error(err))
		return 0
	}
	if len(recipients) == 0 {
		return 0
	}

	created := 0
	for _, recipient := range recipients {
		row := &notificationdomain.Notification{
			ID:              d.genID.Generate(),
			SubscriberID:    recipient.SubscriberID,
			OperationNumber: operationNumber,
			Category:        category,
			Message:         message,
			IsRead:          false,
			CreatedAt:       d.clk.Now(),
		}
		if err := d.notifications.Insert(ctx, row); err != nil {
			d.log.Error("notification insert failed",
				zap.String("operation_number", operationNumber),
				zap.String("category", string(category)),
				zap.String("subscriber", recipient.SubscriberID.String()),
				zap.Error(err))
			continue
		}
		created++
		d.metrics.IncNotificationCreated(string(category))

		if err := d.mail.Send(ctx, mailer.Message{
			To:      recipient.Email,
			ToName:  recipient.DisplayName,
			Subject: message,
			HTML:    html,
			Text:    message,
		}); err != nil {
			d.metrics.IncEmail("failed")
			d.log.Warn("alert email failed",
				zap.String("operation_number", operationNumber),
				zap.String("category", string(category)),
				zap.String("email", obslog.MaskEmail(recipient.Email)),
				zap.Error(err))
			continue
		}
		d.metrics.IncEmail("sent")
	}
	return created
}

func violationMessage(count int, facilityName string) string {
	if count == 1 {
		return fmt.Sprintf("1 new violation reported for %s", facilityName)
	}
	return fmt.Sprintf("%d new violations reported for %s", count, facilityName)
}

func inspectionMessage(count int, facilityName string) string {
	if count == 1 {
		return fmt.Sprintf("1 new inspection for %s", facilityName)
	}
	return fmt.Sprintf("%d new inspections for %s", count, facilityName)
}

func ratingMessage(facilityName string) string {
	return fmt.Sprintf("Rating information updated for %s", facilityName)
}

var ratingFieldLabels = map[string]string{
	snapshot.FieldRating:         "Rating",
	snapshot.FieldCapacity:       "Total Capacity",
	snapshot.FieldInspections2Yr: "Inspections (2 yr)",
	snapshot.FieldViolations2Yr:  "Violations (2 yr)",
}

func ratingFieldRows(change *diff.RatingChange) []render.FieldRow {
	rows := make([]render.FieldRow, 0, len(snapshot.TrackedFields))
	for _, field := range snapshot.TrackedFields {
		rows = append(rows, render.FieldRow{
			Label:    ratingFieldLabels[field],
			Previous: formatFieldValue(field, change.Previous[field]),
			Current:  formatFieldValue(field, change.Current[field]),
		})
	}
	return rows
}

func formatFieldValue(field string, value float64) string {
	if field == snapshot.FieldRating {
		return strconv.FormatFloat(value, 'f', 1, 64)
	}
	return strconv.FormatInt(int64(value), 10)
}
