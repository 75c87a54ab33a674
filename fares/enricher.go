package fares

import (
	"context"
	"time"

	"github.com/theoremus-urban-solutions/transit-journeys/journey"
)

// FareSource tags fares produced by the secondary source.
const FareSource = "secondary"

// matchTolerance bounds both the departure-time and duration difference
// between a canonical journey and an enrichment option.
const matchTolerance = 2 * time.Minute

// OptionsFetcher is the enrichment source contract, satisfied by Client.
type OptionsFetcher interface {
	FetchOptions(ctx context.Context, q journey.TripQuery) []journey.EnrichmentOption
}

// Enricher correlates canonical journeys with enrichment options and merges
// fare totals. Enrichment is strictly additive: journeys without a match
// keep a nil fare and the primary result is never blocked.
type Enricher struct {
	fetcher OptionsFetcher
}

// NewEnricher creates an enricher over the given source.
func NewEnricher(fetcher OptionsFetcher) *Enricher {
	return &Enricher{fetcher: fetcher}
}

// Enrich fetches one batch of options for the request and attaches a fare
// to every journey that matches one. The input slice is not mutated.
func (e *Enricher) Enrich(ctx context.Context, q journey.TripQuery, journeys []journey.Journey) []journey.Journey {
	out := make([]journey.Journey, len(journeys))
	copy(out, journeys)

	options := e.fetcher.FetchOptions(ctx, q)
	if len(options) == 0 {
		return out
	}
	for i := range out {
		if opt := matchOption(out[i], options); opt != nil {
			fare := AggregateFare(*opt)
			out[i].Fare = &fare
		}
	}
	return out
}

// matchOption returns the first option, in source order, whose departure
// and duration both fall within tolerance of the journey's. Greedy and
// order-dependent rather than a globally optimal assignment.
func matchOption(j journey.Journey, options []journey.EnrichmentOption) *journey.EnrichmentOption {
	dep := j.Departure()
	if dep.IsZero() {
		return nil
	}
	durSeconds := j.DurationSeconds()
	for i := range options {
		opt := &options[i]
		if opt.Departure.IsZero() {
			continue
		}
		dt := dep.Sub(opt.Departure)
		if dt < 0 {
			dt = -dt
		}
		dd := time.Duration(durSeconds-opt.DurationMinutes*60) * time.Second
		if dd < 0 {
			dd = -dd
		}
		if dt <= matchTolerance && dd <= matchTolerance {
			return opt
		}
	}
	return nil
}

// AggregateFare sums the option's per-leg amounts per fare class. The
// station access fee is the maximum single-leg fee, applied once.
func AggregateFare(opt journey.EnrichmentOption) journey.Fare {
	fare := journey.Fare{Source: FareSource, Legs: opt.Legs}
	for _, l := range opt.Legs {
		fare.Adult += l.Adult
		fare.Child += l.Child
		fare.Concession += l.Concession
		fare.Senior += l.Senior
		if l.StationAccessFee > fare.StationAccessFee {
			fare.StationAccessFee = l.StationAccessFee
		}
	}
	return fare
}
