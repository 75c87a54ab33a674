package ranking

import (
	"fmt"
	"sort"
)

// Named strategies shipped as fixed weight profiles.
const (
	StrategyFastest         = "fastest"
	StrategyLeastWalking    = "least_walking"
	StrategyFewestTransfers = "fewest_transfers"
	StrategyMostReliable    = "most_reliable"
)

// Weights is one strategy's profile over the five scoring factors.
// Each profile sums to 1.0.
type Weights struct {
	ArrivalTime     float64
	Duration        float64
	WalkingDistance float64
	TransferCount   float64
	Reliability     float64
}

var strategies = map[string]Weights{
	StrategyFastest: {
		ArrivalTime:     0.50,
		Duration:        0.35,
		WalkingDistance: 0.05,
		TransferCount:   0.05,
		Reliability:     0.05,
	},
	StrategyLeastWalking: {
		ArrivalTime:     0.15,
		Duration:        0.20,
		WalkingDistance: 0.50,
		TransferCount:   0.10,
		Reliability:     0.05,
	},
	StrategyFewestTransfers: {
		ArrivalTime:     0.15,
		Duration:        0.20,
		WalkingDistance: 0.05,
		TransferCount:   0.50,
		Reliability:     0.10,
	},
	StrategyMostReliable: {
		ArrivalTime:     0.20,
		Duration:        0.15,
		WalkingDistance: 0.05,
		TransferCount:   0.10,
		Reliability:     0.50,
	},
}

// StrategyWeights resolves a strategy name to its weight profile.
func StrategyWeights(name string) (Weights, error) {
	w, ok := strategies[name]
	if !ok {
		return Weights{}, fmt.Errorf("unknown ranking strategy %q", name)
	}
	return w, nil
}

// Strategies lists the available strategy names, sorted.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
