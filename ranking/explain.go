package ranking

import (
	"fmt"
	"strings"

	"github.com/theoremus-urban-solutions/transit-journeys/journey"
)

// superlativeThreshold is the normalized score a strategy's own factor must
// reach before its superlative prefix is applied.
const superlativeThreshold = 0.8

// explain builds a short human-readable summary of why a journey scored
// the way it did. A cancelled journey short-circuits to a fixed phrase.
func explain(j journey.Journey, m metrics, strategy string, s Score) string {
	if j.Cancelled {
		return "Service cancelled"
	}

	parts := []string{durationPhrase(m.duration), transferPhrase(int(m.transfers))}
	if m.walking > 500 {
		parts = append(parts, fmt.Sprintf("%.0f m walking", m.walking))
	}
	if j.DelayMinutes > 0 {
		parts = append(parts, fmt.Sprintf("delayed %d min", j.DelayMinutes))
	}

	text := strings.Join(parts, ", ")
	if prefix := superlative(strategy, s); prefix != "" {
		return prefix + ": " + text
	}
	return text
}

func durationPhrase(durationMinutes float64) string {
	min := int(durationMinutes + 0.5)
	switch {
	case min < 20:
		return fmt.Sprintf("quick %d min trip", min)
	case min < 45:
		return fmt.Sprintf("%d min trip", min)
	default:
		return fmt.Sprintf("longer %d min trip", min)
	}
}

func transferPhrase(transfers int) string {
	switch transfers {
	case 0:
		return "direct"
	case 1:
		return "1 transfer"
	default:
		return fmt.Sprintf("%d transfers", transfers)
	}
}

// superlative returns the strategy's prefix when its own weighted factor
// scores high within the candidate set.
func superlative(strategy string, s Score) string {
	switch strategy {
	case StrategyFastest:
		if s.Duration.Normalized > superlativeThreshold {
			return "Fastest option"
		}
	case StrategyLeastWalking:
		if s.WalkingDistance.Normalized > superlativeThreshold {
			return "Least walking"
		}
	case StrategyFewestTransfers:
		if s.TransferCount.Normalized > superlativeThreshold {
			return "Fewest transfers"
		}
	case StrategyMostReliable:
		if s.Reliability.Normalized > superlativeThreshold {
			return "Most reliable"
		}
	}
	return ""
}
