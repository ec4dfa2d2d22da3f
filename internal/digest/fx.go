package digest

import "go.uber.org/fx"

var Module = fx.Module("digest",
	fx.Provide(NewService),
)
