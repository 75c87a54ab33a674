package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// FamilyConfig configures one feed family (alerts, trip-updates or
// vehicle-positions): its endpoints keyed by feed identifier, the response
// encoding and the polling cadence.
type FamilyConfig struct {
	Endpoints      map[string]string `yaml:"endpoints" validate:"omitempty,dive,url"`
	Format         string            `yaml:"format" validate:"omitempty,oneof=protobuf json"`
	PollIntervalMS int               `yaml:"pollIntervalMS" validate:"gte=0"`
	StaggerMS      int               `yaml:"staggerMS" validate:"gte=0"`
}

// FeedsConfig contains upstream real-time feed configuration
type FeedsConfig struct {
	APIKeyHeader     string       `yaml:"apiKeyHeader"`
	TimeoutMS        int          `yaml:"timeoutMS" validate:"gte=0"`
	SettleDelayMS    int          `yaml:"settleDelayMS" validate:"gte=0"`
	Alerts           FamilyConfig `yaml:"alerts"`
	TripUpdates      FamilyConfig `yaml:"tripUpdates"`
	VehiclePositions FamilyConfig `yaml:"vehiclePositions"`
}

// FaresConfig configures the secondary fare-enrichment source
type FaresConfig struct {
	BaseURL          string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS        int    `yaml:"timeoutMS" validate:"gte=0"`
	FailureThreshold int    `yaml:"failureThreshold" validate:"gte=0"`
	CooldownMS       int    `yaml:"cooldownMS" validate:"gte=0"`
}

// CacheConfig selects and configures the shared cache store backend
type CacheConfig struct {
	Backend       string `yaml:"backend" validate:"omitempty,oneof=memory redis"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	SnapshotTTLMS int    `yaml:"snapshotTTLMS" validate:"gte=0"`
}

// RankingConfig contains journey ranking defaults
type RankingConfig struct {
	DefaultStrategy string `yaml:"defaultStrategy"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server" validate:"required"`
	Feeds   FeedsConfig   `yaml:"feeds"`
	Fares   FaresConfig   `yaml:"fares"`
	Cache   CacheConfig   `yaml:"cache"`
	Ranking RankingConfig `yaml:"ranking"`
}
