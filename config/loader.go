package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	if err := v.Struct(cfg.Feeds); err != nil {
		return err
	}
	if err := v.Struct(cfg.Fares); err != nil {
		return err
	}
	if err := v.Struct(cfg.Cache); err != nil {
		return err
	}
	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16281
	}
	if cfg.Feeds.APIKeyHeader == "" {
		cfg.Feeds.APIKeyHeader = "X-Api-Key"
	}
	if cfg.Feeds.TimeoutMS == 0 {
		cfg.Feeds.TimeoutMS = 15000
	}
	if cfg.Feeds.SettleDelayMS == 0 {
		cfg.Feeds.SettleDelayMS = 3000
	}
	if cfg.Feeds.Alerts.PollIntervalMS == 0 {
		cfg.Feeds.Alerts.PollIntervalMS = 60000
	}
	if cfg.Feeds.TripUpdates.PollIntervalMS == 0 {
		cfg.Feeds.TripUpdates.PollIntervalMS = 30000
	}
	if cfg.Feeds.VehiclePositions.PollIntervalMS == 0 {
		cfg.Feeds.VehiclePositions.PollIntervalMS = 15000
	}
	if cfg.Fares.TimeoutMS == 0 {
		cfg.Fares.TimeoutMS = 5000
	}
	if cfg.Fares.FailureThreshold == 0 {
		cfg.Fares.FailureThreshold = 5
	}
	if cfg.Fares.CooldownMS == 0 {
		cfg.Fares.CooldownMS = 60000
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Ranking.DefaultStrategy == "" {
		cfg.Ranking.DefaultStrategy = "fastest"
	}
}
