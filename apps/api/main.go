// The api entrypoint serves the operator API without the periodic tasks,
// for deployments that run the scheduler as a separate process. Manual
// alert checks still work here.
package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/lonestarcare/carewatch/internal/alert"
	"github.com/lonestarcare/carewatch/internal/clock"
	"github.com/lonestarcare/carewatch/internal/config"
	"github.com/lonestarcare/carewatch/internal/digest"
	"github.com/lonestarcare/carewatch/internal/events"
	"github.com/lonestarcare/carewatch/internal/facility"
	"github.com/lonestarcare/carewatch/internal/logger"
	"github.com/lonestarcare/carewatch/internal/mailer"
	"github.com/lonestarcare/carewatch/internal/migration"
	"github.com/lonestarcare/carewatch/internal/notification"
	"github.com/lonestarcare/carewatch/internal/scheduler"
	"github.com/lonestarcare/carewatch/internal/server"
	"github.com/lonestarcare/carewatch/internal/snapshot"
	"github.com/lonestarcare/carewatch/internal/subscription"
	"github.com/lonestarcare/carewatch/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(2)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB) error {
			return migration.RunMigrations(conn)
		}),

		facility.Module,
		subscription.Module,
		notification.Module,
		events.Module,
		mailer.Module,
		snapshot.Module,
		alert.Module,
		digest.Module,
		scheduler.Module,

		server.Module,
	)
	app.Run()
}
