package scheduler

import (
	"context"

	"github.com/lonestarcare/carewatch/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(func(cfg config.Config) Config {
		return Config{
			CheckInterval: cfg.CheckInterval,
			DigestHour:    cfg.DigestHour,
		}
	}),
	fx.Provide(New),
)

// Run wires the scheduler into the fx lifecycle. The API-only entrypoint
// provides the scheduler without invoking this, so manual checks work but
// no periodic tasks run there.
func Run(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Init(ctx)
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
