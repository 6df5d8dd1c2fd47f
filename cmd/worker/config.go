package main

import (
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
)

const healthAddr = ":9999"

// Config wraps the shared application config with worker-only settings.
type Config struct {
	*config.Config
	HealthAddr string
}

func loadConfig() (*Config, error) {
	base, err := config.Load()
	if err != nil {
		return nil, err
	}

	cfg := &Config{Config: base, HealthAddr: healthAddr}
	log.Info().
		Str("redis", cfg.Redis.Host).
		Int("concurrency", cfg.Queue.Concurrency).
		Str("sweep_cron", cfg.Queue.SweepCron).
		Dur("sweep_grace", cfg.Queue.SweepGrace).
		Msg("[Config] Worker configuration loaded")

	return cfg, nil
}
