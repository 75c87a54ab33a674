package ranking

import (
	"strings"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/transit-journeys/journey"
)

var rankBase = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

// transitJourney builds a single-vehicle-leg journey departing at base,
// lasting durationMinutes.
func transitJourney(durationMinutes int) journey.Journey {
	return journey.Journey{Legs: []journey.Leg{{
		TransportRef:     "line-1",
		PlannedDeparture: rankBase,
		PlannedArrival:   rankBase.Add(time.Duration(durationMinutes) * time.Minute),
		DurationSeconds:  durationMinutes * 60,
	}}}
}

func TestStrategyWeights(t *testing.T) {
	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			w, err := StrategyWeights(name)
			if err != nil {
				t.Fatalf("StrategyWeights: %v", err)
			}
			sum := w.ArrivalTime + w.Duration + w.WalkingDistance + w.TransferCount + w.Reliability
			if sum < 0.999 || sum > 1.001 {
				t.Errorf("weights sum to %v, want 1.0", sum)
			}
		})
	}
	if _, err := StrategyWeights("scenic"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestRank_UnknownStrategy(t *testing.T) {
	if _, err := Rank([]journey.Journey{transitJourney(30)}, "scenic"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestRank_EmptySet(t *testing.T) {
	ranked, err := Rank(nil, StrategyFastest)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked == nil || len(ranked) != 0 {
		t.Errorf("expected empty non-nil result, got %v", ranked)
	}
	if Best(ranked) != nil {
		t.Error("expected nil Best for empty set")
	}
}

func TestRank_FastestPrefersEarlierArrival(t *testing.T) {
	// A: 40 min direct, on time. B: 25 min with one transfer, 5 min delay.
	// Under fastest, B's earlier arrival and shorter duration dominate.
	one := 1
	a := transitJourney(40)
	b := transitJourney(25)
	b.Interchanges = &one
	b.DelayMinutes = 5

	ranked, err := Rank([]journey.Journey{a, b}, StrategyFastest)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].Journey.DurationSeconds() != 25*60 {
		t.Errorf("expected the 25 min journey ranked first, got %d s", ranked[0].Journey.DurationSeconds())
	}
	if ranked[0].Score.Total <= ranked[1].Score.Total {
		t.Errorf("expected descending totals, got %v then %v", ranked[0].Score.Total, ranked[1].Score.Total)
	}
}

func TestRank_MostReliablePrefersOnTime(t *testing.T) {
	onTime := transitJourney(30)
	delayed := transitJourney(30)
	delayed.DelayMinutes = 12

	ranked, err := Rank([]journey.Journey{delayed, onTime}, StrategyMostReliable)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].Journey.DelayMinutes != 0 {
		t.Error("expected the on-time journey ranked first under most_reliable")
	}
}

func TestRank_SingleCandidateNormalizesToOne(t *testing.T) {
	ranked, err := Rank([]journey.Journey{transitJourney(30)}, StrategyFastest)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	s := ranked[0].Score
	for name, f := range map[string]FactorScore{
		"arrival":   s.ArrivalTime,
		"duration":  s.Duration,
		"walking":   s.WalkingDistance,
		"transfers": s.TransferCount,
	} {
		if f.Normalized != 1.0 {
			t.Errorf("%s: expected degenerate set to normalize to 1.0, got %v", name, f.Normalized)
		}
	}
	if s.Total < 0.999 || s.Total > 1.001 {
		t.Errorf("expected total 1.0 for a lone on-time journey, got %v", s.Total)
	}
}

func TestRank_CancelledScoresZeroButStays(t *testing.T) {
	good := transitJourney(30)
	cancelled := transitJourney(20)
	cancelled.Cancelled = true

	ranked, err := Rank([]journey.Journey{cancelled, good}, StrategyFastest)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected cancelled journey kept in output, got %d", len(ranked))
	}
	if ranked[1].Score.Total != 0 {
		t.Errorf("expected cancelled journey total 0, got %v", ranked[1].Score.Total)
	}
	if best := Best(ranked); best == nil || best.Journey.Cancelled {
		t.Error("expected Best to skip the cancelled journey")
	}
}

func TestBest_AllCancelled(t *testing.T) {
	a := transitJourney(30)
	a.Cancelled = true
	b := transitJourney(20)
	b.Cancelled = true

	ranked, err := Rank([]journey.Journey{a, b}, StrategyFastest)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	best := Best(ranked)
	if best == nil {
		t.Fatal("expected a Best even when every journey is cancelled")
	}
	if best.Score.Total != 0 {
		t.Errorf("expected total 0, got %v", best.Score.Total)
	}
}

func TestRank_MissingArrivalRanksLast(t *testing.T) {
	timed := transitJourney(30)
	untimed := journey.Journey{Legs: []journey.Leg{{
		TransportRef:    "line-2",
		DurationSeconds: 20 * 60,
	}}}

	ranked, err := Rank([]journey.Journey{untimed, timed}, StrategyFastest)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked[0].Journey.Legs) == 0 || ranked[0].Journey.Legs[0].TransportRef != "line-1" {
		t.Error("expected the journey with timing ranked ahead of the untimed one")
	}
	if ranked[1].Score.ArrivalTime.Raw != farFutureArrival {
		t.Errorf("expected sentinel arrival for untimed journey, got %v", ranked[1].Score.ArrivalTime.Raw)
	}
}

func TestRank_StableOrderOnTies(t *testing.T) {
	a := transitJourney(30)
	a.Legs[0].TransportRef = "first"
	b := transitJourney(30)
	b.Legs[0].TransportRef = "second"

	ranked, err := Rank([]journey.Journey{a, b}, StrategyFastest)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].Journey.Legs[0].TransportRef != "first" {
		t.Error("expected input order preserved on equal totals")
	}
}

func TestTransferCount(t *testing.T) {
	two := 2
	walk := journey.Leg{Mode: "walk", DurationSeconds: 300}
	ride := journey.Leg{TransportRef: "line-1", DurationSeconds: 600}

	tests := []struct {
		name string
		j    journey.Journey
		want int
	}{
		{"explicit count wins", journey.Journey{Interchanges: &two, Legs: []journey.Leg{ride}}, 2},
		{"single ride", journey.Journey{Legs: []journey.Leg{walk, ride, walk}}, 0},
		{"three rides", journey.Journey{Legs: []journey.Leg{ride, walk, ride, ride}}, 2},
		{"walking only", journey.Journey{Legs: []journey.Leg{walk}}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := transferCount(tc.j); got != tc.want {
				t.Errorf("transferCount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReliabilityScore(t *testing.T) {
	tests := []struct {
		delay     int
		cancelled bool
		want      float64
	}{
		{0, false, 1.0},
		{1, false, 0.95},
		{2, false, 0.85},
		{4, false, 0.85},
		{5, false, 0.7},
		{9, false, 0.7},
		{10, false, 0.5},
		{14, false, 0.5},
		{15, false, 0.3},
		{60, false, 0.3},
		{0, true, 0},
	}
	for _, tc := range tests {
		if got := reliabilityScore(tc.delay, tc.cancelled); got != tc.want {
			t.Errorf("reliabilityScore(%d, %v) = %v, want %v", tc.delay, tc.cancelled, got, tc.want)
		}
	}
}

func TestExplain(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		c := transitJourney(30)
		c.Cancelled = true
		ranked, _ := Rank([]journey.Journey{c}, StrategyFastest)
		if got := ranked[0].Score.Explanation; got != "Service cancelled" {
			t.Errorf("explanation = %q", got)
		}
	})

	t.Run("delay and walking mentioned", func(t *testing.T) {
		j := transitJourney(50)
		j.DelayMinutes = 7
		j.Legs = append(j.Legs, journey.Leg{Mode: "walk", DistanceMeters: 800, DurationSeconds: 600})
		ranked, _ := Rank([]journey.Journey{j}, StrategyFastest)
		got := ranked[0].Score.Explanation
		for _, want := range []string{"longer", "delayed 7 min", "800 m walking", "direct"} {
			if !strings.Contains(got, want) {
				t.Errorf("explanation %q missing %q", got, want)
			}
		}
	})

	t.Run("fastest superlative", func(t *testing.T) {
		fast := transitJourney(15)
		slow := transitJourney(60)
		ranked, _ := Rank([]journey.Journey{fast, slow}, StrategyFastest)
		if got := ranked[0].Score.Explanation; !strings.HasPrefix(got, "Fastest option: ") {
			t.Errorf("expected superlative prefix, got %q", got)
		}
		if got := ranked[1].Score.Explanation; strings.HasPrefix(got, "Fastest option") {
			t.Errorf("expected no prefix on the slow journey, got %q", got)
		}
	})
}
