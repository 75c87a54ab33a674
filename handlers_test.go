package transitjourneys

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/transit-journeys/cache"
	"github.com/theoremus-urban-solutions/transit-journeys/config"
	"github.com/theoremus-urban-solutions/transit-journeys/journey"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.AppConfig{
		Server: config.ServerConfig{Port: 0},
		Feeds: config.FeedsConfig{
			APIKeyHeader: "X-Api-Key",
			TimeoutMS:    1000,
			Alerts: config.FamilyConfig{
				Endpoints:      map[string]string{"metro": "http://127.0.0.1:1/alerts"},
				PollIntervalMS: 60000,
			},
		},
		Cache:   config.CacheConfig{Backend: "memory"},
		Ranking: config.RankingConfig{DefaultStrategy: "fastest"},
	}
	app, err := NewApp(cfg, "")
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestHandleHealth(t *testing.T) {
	app := testApp(t)
	rec := httptest.NewRecorder()
	app.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Running {
		t.Error("expected running=false before orchestrator start")
	}
}

func TestHandleStatus(t *testing.T) {
	app := testApp(t)
	rec := httptest.NewRecorder()
	app.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Timestamp == "" {
		t.Error("expected timestamp")
	}
	if len(resp.Orchestrator.Pollers) != 3 {
		t.Errorf("expected 3 pollers, got %d", len(resp.Orchestrator.Pollers))
	}
}

func TestHandleTrigger_RequiresPost(t *testing.T) {
	app := testApp(t)
	rec := httptest.NewRecorder()
	app.handleTrigger(rec, httptest.NewRequest(http.MethodGet, "/api/poll/trigger", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleSnapshot(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	_ = app.Store.SetFeedMeta(ctx, "alerts", "metro", cache.FeedMeta{
		Family: "alerts", FeedID: "metro", FetchedAt: time.Now(), Count: 1,
	})
	_ = app.Store.SetSnapshot(ctx, "alerts", "metro", []json.RawMessage{json.RawMessage(`{"id":"alert-1"}`)})

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"cached feed", "/api/snapshot?family=alerts&id=metro", http.StatusOK},
		{"unknown family", "/api/snapshot?family=weather&id=metro", http.StatusBadRequest},
		{"missing id", "/api/snapshot?family=alerts", http.StatusBadRequest},
		{"uncached feed", "/api/snapshot?family=alerts&id=ferries", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.handleSnapshot(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
			if tc.code != http.StatusOK {
				return
			}
			var resp snapshotResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Meta == nil || resp.Meta.Count != 1 {
				t.Errorf("meta = %+v", resp.Meta)
			}
			if len(resp.Items) != 1 {
				t.Errorf("expected 1 item, got %d", len(resp.Items))
			}
		})
	}
}

func TestHandleJourneyOptions(t *testing.T) {
	app := testApp(t)
	dep := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	body := func(strategy string) *bytes.Reader {
		req := journeyOptionsRequest{
			Strategy: strategy,
			Journeys: []journey.Journey{{Legs: []journey.Leg{{
				TransportRef:     "line-1",
				PlannedDeparture: dep,
				PlannedArrival:   dep.Add(30 * time.Minute),
				DurationSeconds:  1800,
			}}}},
		}
		b, _ := json.Marshal(req)
		return bytes.NewReader(b)
	}

	t.Run("ranked response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.handleJourneyOptions(rec, httptest.NewRequest(http.MethodPost, "/api/journeys/options", body("")))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var resp journeyOptionsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Strategy != "fastest" {
			t.Errorf("expected default strategy applied, got %q", resp.Strategy)
		}
		if len(resp.Journeys) != 1 || resp.Best == nil {
			t.Errorf("expected 1 ranked journey and a best pick, got %+v", resp)
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.handleJourneyOptions(rec, httptest.NewRequest(http.MethodPost, "/api/journeys/options", body("scenic")))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("empty journeys", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.handleJourneyOptions(rec, httptest.NewRequest(http.MethodPost, "/api/journeys/options", bytes.NewReader([]byte(`{"journeys":[]}`))))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("get rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.handleJourneyOptions(rec, httptest.NewRequest(http.MethodGet, "/api/journeys/options", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})
}
