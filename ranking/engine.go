package ranking

import (
	"sort"

	"github.com/theoremus-urban-solutions/transit-journeys/journey"
)

// farFutureArrival is the sentinel epoch used when a journey has no arrival
// timing at all, pushing it behind every timed candidate.
const farFutureArrival = float64(1 << 40)

// FactorScore explains one factor's contribution to a journey's total.
type FactorScore struct {
	Raw        float64 `json:"raw"`
	Weight     float64 `json:"weight"`
	Normalized float64 `json:"normalized"`
}

// Score is a journey's full scoring breakdown. Created fresh per ranking
// call and never mutated afterwards.
type Score struct {
	ArrivalTime     FactorScore `json:"arrival_time"`
	Duration        FactorScore `json:"duration"`
	WalkingDistance FactorScore `json:"walking_distance"`
	TransferCount   FactorScore `json:"transfer_count"`
	Reliability     FactorScore `json:"reliability"`
	Total           float64     `json:"total"`
	Explanation     string      `json:"explanation"`
}

// RankedJourney pairs a journey with its score, in rank order.
type RankedJourney struct {
	Journey journey.Journey `json:"journey"`
	Score   Score           `json:"score"`
}

type metrics struct {
	arrival     float64 // epoch seconds of final arrival
	duration    float64 // minutes
	walking     float64 // meters
	transfers   float64
	reliability float64
}

func computeMetrics(j journey.Journey) metrics {
	var m metrics
	m.duration = float64(j.DurationSeconds()) / 60.0
	for _, l := range j.Legs {
		if l.IsWalking() {
			m.walking += l.DistanceMeters
		}
	}
	m.transfers = float64(transferCount(j))
	if arr := j.Arrival(); !arr.IsZero() {
		m.arrival = float64(arr.Unix())
	} else {
		m.arrival = farFutureArrival
	}
	m.reliability = reliabilityScore(j.DelayMinutes, j.Cancelled)
	return m
}

// transferCount prefers the explicit interchange count; otherwise it counts
// non-walking legs minus one, floored at zero.
func transferCount(j journey.Journey) int {
	if j.Interchanges != nil {
		return *j.Interchanges
	}
	vehicleLegs := 0
	for _, l := range j.Legs {
		if !l.IsWalking() {
			vehicleLegs++
		}
	}
	if vehicleLegs <= 1 {
		return 0
	}
	return vehicleLegs - 1
}

// reliabilityScore steps down from 1.0 as the realtime delay grows and is
// forced to 0 for a cancelled journey.
func reliabilityScore(delayMinutes int, cancelled bool) float64 {
	if cancelled {
		return 0
	}
	switch {
	case delayMinutes <= 0:
		return 1.0
	case delayMinutes < 2:
		return 0.95
	case delayMinutes < 5:
		return 0.85
	case delayMinutes < 10:
		return 0.7
	case delayMinutes < 15:
		return 0.5
	default:
		return 0.3
	}
}

// normalize rescales a lower-is-better value to [0,1] against the candidate
// set's min/max, inverted so lower values score higher. A degenerate set
// where every candidate shares one value scores 1.0.
func normalize(v, min, max float64) float64 {
	if max == min {
		return 1.0
	}
	return (max - v) / (max - min)
}

// Rank scores the candidate set under the named strategy and returns the
// journeys in descending score order. Ties retain input-relative order.
// Cancelled journeys score 0 but are not removed.
func Rank(journeys []journey.Journey, strategy string) ([]RankedJourney, error) {
	weights, err := StrategyWeights(strategy)
	if err != nil {
		return nil, err
	}
	if len(journeys) == 0 {
		return []RankedJourney{}, nil
	}

	ms := make([]metrics, len(journeys))
	for i, j := range journeys {
		ms[i] = computeMetrics(j)
	}

	minArr, maxArr := ms[0].arrival, ms[0].arrival
	minDur, maxDur := ms[0].duration, ms[0].duration
	minWalk, maxWalk := ms[0].walking, ms[0].walking
	minTr, maxTr := ms[0].transfers, ms[0].transfers
	for _, m := range ms[1:] {
		minArr, maxArr = minMax(minArr, maxArr, m.arrival)
		minDur, maxDur = minMax(minDur, maxDur, m.duration)
		minWalk, maxWalk = minMax(minWalk, maxWalk, m.walking)
		minTr, maxTr = minMax(minTr, maxTr, m.transfers)
	}

	ranked := make([]RankedJourney, len(journeys))
	for i, j := range journeys {
		m := ms[i]
		s := Score{
			ArrivalTime:     FactorScore{Raw: m.arrival, Weight: weights.ArrivalTime, Normalized: normalize(m.arrival, minArr, maxArr)},
			Duration:        FactorScore{Raw: m.duration, Weight: weights.Duration, Normalized: normalize(m.duration, minDur, maxDur)},
			WalkingDistance: FactorScore{Raw: m.walking, Weight: weights.WalkingDistance, Normalized: normalize(m.walking, minWalk, maxWalk)},
			TransferCount:   FactorScore{Raw: m.transfers, Weight: weights.TransferCount, Normalized: normalize(m.transfers, minTr, maxTr)},
			Reliability:     FactorScore{Raw: m.reliability, Weight: weights.Reliability, Normalized: m.reliability},
		}
		s.Total = s.ArrivalTime.Weight*s.ArrivalTime.Normalized +
			s.Duration.Weight*s.Duration.Normalized +
			s.WalkingDistance.Weight*s.WalkingDistance.Normalized +
			s.TransferCount.Weight*s.TransferCount.Normalized +
			s.Reliability.Weight*s.Reliability.Normalized
		if j.Cancelled {
			s.Total = 0
		}
		s.Explanation = explain(j, m, strategy, s)
		ranked[i] = RankedJourney{Journey: j, Score: s}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score.Total > ranked[b].Score.Total
	})
	return ranked, nil
}

// Best returns the highest-scoring non-cancelled journey. If every journey
// is cancelled the highest-scoring one overall is still returned; nil only
// for an empty set.
func Best(ranked []RankedJourney) *RankedJourney {
	if len(ranked) == 0 {
		return nil
	}
	for i := range ranked {
		if !ranked[i].Journey.Cancelled {
			best := ranked[i]
			return &best
		}
	}
	best := ranked[0]
	return &best
}

func minMax(min, max, v float64) (float64, float64) {
	if v < min {
		min = v
	}
	if v > max {
		max = v
	}
	return min, max
}
