package facility

import (
	"github.com/lonestarcare/carewatch/internal/facility/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("facility",
	fx.Provide(repository.Provide),
)
