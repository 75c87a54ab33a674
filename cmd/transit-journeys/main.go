package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	lib "github.com/theoremus-urban-solutions/transit-journeys"
	"github.com/theoremus-urban-solutions/transit-journeys/config"
	"github.com/theoremus-urban-solutions/transit-journeys/feeds"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	modules := flag.String("modules", "alerts,tu,vp", "comma-separated feed families to poll in oneshot mode: alerts,tu,vp")
	flag.Parse()

	lib.InitLogging()
	_ = godotenv.Load()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := lib.NewApp(config.Config, os.Getenv("TRANSIT_API_KEY"))
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	switch *mode {
	case "serve":
		app.Orchestrator.Start()
		app.StartServer()
		app.HandleGracefulShutdown()
	case "oneshot":
		oneshot(app, *modules)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

// oneshot runs one poll cycle for the selected families and exits, for
// operational diagnostics.
func oneshot(app *lib.App, modules string) {
	byAbbrev := map[string]feeds.Family{
		"alerts": feeds.FamilyAlerts,
		"tu":     feeds.FamilyTripUpdates,
		"vp":     feeds.FamilyVehiclePositions,
	}
	var families []feeds.Family
	for _, m := range strings.Split(modules, ",") {
		m = strings.TrimSpace(strings.ToLower(m))
		if f, ok := byAbbrev[m]; ok {
			families = append(families, f)
		}
	}
	if len(families) == 0 {
		log.Fatalf("no feed families selected")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	for _, f := range families {
		app.Orchestrator.TriggerFamily(ctx, f)
	}

	status := app.Orchestrator.Status()
	for _, p := range status.Pollers {
		log.Printf("poller[%s] polls=%d errors=%d lastError=%q", p.Name, p.PollCount, p.ErrorCount, p.LastError)
	}
}
