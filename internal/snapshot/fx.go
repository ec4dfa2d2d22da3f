package snapshot

import "go.uber.org/fx"

var Module = fx.Module("snapshot",
	fx.Provide(func() Store {
		return NewMemoryStore()
	}),
	fx.Provide(NewFetcher),
)
