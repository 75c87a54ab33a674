package transitjourneys

import (
	"fmt"
	"sort"
	"time"

	"github.com/theoremus-urban-solutions/transit-journeys/cache"
	"github.com/theoremus-urban-solutions/transit-journeys/config"
	"github.com/theoremus-urban-solutions/transit-journeys/fares"
	"github.com/theoremus-urban-solutions/transit-journeys/feeds"
)

// App is the composition root: it owns the cache store, the poll
// orchestrator and the fare enricher, wired from configuration.
type App struct {
	Config       config.AppConfig
	Store        cache.Store
	Orchestrator *feeds.Orchestrator
	Enricher     *fares.Enricher

	server *appServer
}

// NewApp builds the full pipeline from configuration. apiKey authenticates
// upstream feed requests and comes from the environment.
func NewApp(cfg config.AppConfig, apiKey string) (*App, error) {
	store, err := newStore(cfg.Cache)
	if err != nil {
		return nil, err
	}

	client := feeds.NewClient(
		time.Duration(cfg.Feeds.TimeoutMS)*time.Millisecond,
		cfg.Feeds.APIKeyHeader,
		apiKey,
	)

	alerts := newPoller(feeds.FamilyAlerts, cfg.Feeds.Alerts, client, store)
	tripUpdates := newPoller(feeds.FamilyTripUpdates, cfg.Feeds.TripUpdates, client, store)
	vehiclePositions := newPoller(feeds.FamilyVehiclePositions, cfg.Feeds.VehiclePositions, client, store)

	orchestrator := feeds.NewOrchestrator(
		alerts, tripUpdates, vehiclePositions,
		time.Duration(cfg.Feeds.SettleDelayMS)*time.Millisecond,
		nil,
	)

	breaker := fares.NewCircuitBreaker(
		cfg.Fares.FailureThreshold,
		time.Duration(cfg.Fares.CooldownMS)*time.Millisecond,
	)
	fareClient := fares.NewClient(
		cfg.Fares.BaseURL,
		time.Duration(cfg.Fares.TimeoutMS)*time.Millisecond,
		breaker,
	)

	return &App{
		Config:       cfg,
		Store:        store,
		Orchestrator: orchestrator,
		Enricher:     fares.NewEnricher(fareClient),
	}, nil
}

func newStore(cfg config.CacheConfig) (cache.Store, error) {
	switch cfg.Backend {
	case "redis":
		store, err := cache.NewRedis(
			cfg.RedisAddr,
			cfg.RedisPassword,
			time.Duration(cfg.SnapshotTTLMS)*time.Millisecond,
		)
		if err != nil {
			return nil, fmt.Errorf("cache backend: %w", err)
		}
		return store, nil
	default:
		return cache.NewMemory(
			time.Duration(cfg.SnapshotTTLMS)*time.Millisecond,
			10*time.Minute,
		), nil
	}
}

func newPoller(family feeds.Family, fc config.FamilyConfig, client *feeds.Client, store cache.Store) *feeds.Poller {
	ids := make([]string, 0, len(fc.Endpoints))
	for id, url := range fc.Endpoints {
		client.Register(family, id, feeds.Endpoint{URL: url, Format: fc.Format})
		ids = append(ids, id)
	}
	sort.Strings(ids)
	desc := feeds.Descriptor{
		Family:   family,
		IDs:      ids,
		Interval: time.Duration(fc.PollIntervalMS) * time.Millisecond,
		Stagger:  time.Duration(fc.StaggerMS) * time.Millisecond,
	}
	refresher := feeds.NewRefresher(family, client, store, nil)
	return feeds.NewPoller(string(family), desc, refresher, nil)
}
