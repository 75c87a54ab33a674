package journey

import (
	"strings"
	"time"
)

// TripQuery identifies one origin/destination request. It doubles as the
// payload sent to the secondary fare source.
type TripQuery struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departure   time.Time `json:"departure"`
}

// Leg is one segment of a canonical journey.
type Leg struct {
	Mode               string    `json:"mode,omitempty"`
	TransportRef       string    `json:"transport_ref,omitempty"`
	Origin             string    `json:"origin,omitempty"`
	Destination        string    `json:"destination,omitempty"`
	PlannedDeparture   time.Time `json:"planned_departure,omitempty"`
	EstimatedDeparture time.Time `json:"estimated_departure,omitempty"`
	PlannedArrival     time.Time `json:"planned_arrival,omitempty"`
	EstimatedArrival   time.Time `json:"estimated_arrival,omitempty"`
	DurationSeconds    int       `json:"duration_seconds"`
	DistanceMeters     float64   `json:"distance_meters,omitempty"`
	PrimaryFare        float64   `json:"primary_fare,omitempty"`
}

// IsWalking reports whether the leg is a walking leg: either it carries no
// transportation reference or its mode explicitly marks it as on foot.
func (l Leg) IsWalking() bool {
	if l.TransportRef == "" {
		return true
	}
	m := strings.ToLower(l.Mode)
	return m == "walk" || m == "walking" || m == "footpath"
}

// Departure returns the estimated departure, falling back to planned.
// Zero when neither is known.
func (l Leg) Departure() time.Time {
	if !l.EstimatedDeparture.IsZero() {
		return l.EstimatedDeparture
	}
	return l.PlannedDeparture
}

// Arrival returns the estimated arrival, falling back to planned.
// Zero when neither is known.
func (l Leg) Arrival() time.Time {
	if !l.EstimatedArrival.IsZero() {
		return l.EstimatedArrival
	}
	return l.PlannedArrival
}

// Journey is a canonical trip option. Interchanges is the explicit
// interchange count from the primary source, nil when it did not report one.
// DelayMinutes and Cancelled are realtime annotations merged in upstream.
// Fare is attached by the enricher when a secondary option matches.
type Journey struct {
	Legs         []Leg `json:"legs"`
	Interchanges *int  `json:"interchanges,omitempty"`
	DelayMinutes int   `json:"delay_minutes,omitempty"`
	Cancelled    bool  `json:"cancelled,omitempty"`
	Fare         *Fare `json:"fare,omitempty"`
}

// Departure returns the journey's departure time: the first leg's estimated
// or planned departure. Zero when the journey has no legs or no timing.
func (j Journey) Departure() time.Time {
	if len(j.Legs) == 0 {
		return time.Time{}
	}
	return j.Legs[0].Departure()
}

// Arrival returns the last leg's estimated or planned arrival.
// Zero when absent.
func (j Journey) Arrival() time.Time {
	if len(j.Legs) == 0 {
		return time.Time{}
	}
	return j.Legs[len(j.Legs)-1].Arrival()
}

// DurationSeconds is the sum of leg durations.
func (j Journey) DurationSeconds() int {
	total := 0
	for _, l := range j.Legs {
		total += l.DurationSeconds
	}
	return total
}

// OptionLeg carries the per-leg fare amounts of an enrichment option,
// one amount per fare class plus the leg's station access fee.
type OptionLeg struct {
	Adult            float64 `json:"adult"`
	Child            float64 `json:"child"`
	Concession       float64 `json:"concession"`
	Senior           float64 `json:"senior"`
	StationAccessFee float64 `json:"station_access_fee,omitempty"`
}

// EnrichmentOption is one candidate trip from the secondary fare source.
type EnrichmentOption struct {
	Departure       time.Time   `json:"departure"`
	Arrival         time.Time   `json:"arrival"`
	DurationMinutes int         `json:"duration_minutes"`
	Legs            []OptionLeg `json:"legs"`
}

// Fare holds per-class totals for a matched journey. The station access fee
// is charged once per journey: the maximum single-leg fee, not a sum.
type Fare struct {
	Adult            float64     `json:"adult"`
	Child            float64     `json:"child"`
	Concession       float64     `json:"concession"`
	Senior           float64     `json:"senior"`
	StationAccessFee float64     `json:"station_access_fee,omitempty"`
	Source           string      `json:"source"`
	Legs             []OptionLeg `json:"legs,omitempty"`
}
