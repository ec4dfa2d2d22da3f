package logger

import (
	"strings"

	"github.com/lonestarcare/carewatch/internal/config"
	"go.uber.org/zap"
)

// New builds the process logger. Production environments log JSON at info,
// everything else gets the development console encoder at debug.
func New(cfg config.Config) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if strings.EqualFold(cfg.Environment, "production") {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
