package notification

import (
	"github.com/lonestarcare/carewatch/internal/notification/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("notification",
	fx.Provide(repository.Provide),
)
