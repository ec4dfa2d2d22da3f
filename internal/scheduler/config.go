package scheduler

import "time"

// Config controls the periodic alert check and digest tasks.
type Config struct {
	CheckInterval time.Duration
	DigestHour    int
}

func DefaultConfig() Config {
	return Config{
		CheckInterval: 30 * time.Minute,
		DigestHour:    8,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.CheckInterval <= 0 {
		c.CheckInterval = defaults.CheckInterval
	}
	if c.DigestHour < 0 || c.DigestHour > 23 {
		c.DigestHour = defaults.DigestHour
	}
	return c
}
