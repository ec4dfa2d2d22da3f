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
	"github.com/lonestarcare/carewatch/internal/seed"
	"github.com/lonestarcare/carewatch/internal/server"
	"github.com/lonestarcare/carewatch/internal/snapshot"
	"github.com/lonestarcare/carewatch/internal/subscription"
	"github.com/lonestarcare/carewatch/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			if err := migration.RunMigrations(conn); err != nil {
				return err
			}
			if cfg.SeedDemoData {
				return seed.EnsureDemoData(conn)
			}
			return nil
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
		fx.Invoke(scheduler.Run),

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
