package alert

import (
	"github.com/lonestarcare/carewatch/internal/alert/render"
	"go.uber.org/fx"
)

var Module = fx.Module("alert",
	fx.Provide(render.NewRenderer),
	fx.Provide(NewDispatcher),
	fx.Provide(NewService),
)
