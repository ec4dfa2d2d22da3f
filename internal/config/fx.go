package config

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(func() (Config, error) {
		return Load(context.Background())
	}),
)
