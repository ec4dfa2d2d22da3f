package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the carewatch service.
type Config struct {
	Environment string `env:"ENVIRONMENT,default=development"`
	Addr        string `env:"ADDR,default=:8080"`
	DBDSN       string `env:"DB_DSN"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`
	EmailFrom    string `env:"EMAIL_FROM,default=CareWatch Alerts <alerts@carewatch.local>"`

	CheckInterval time.Duration `env:"ALERT_CHECK_INTERVAL,default=30m"`
	DigestHour    int           `env:"DIGEST_HOUR,default=8"`

	SeedDemoData bool `env:"SEED_DEMO_DATA,default=false"`
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
