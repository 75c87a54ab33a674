// Package journey defines the shared trip-planning data model.
//
// A Journey is a canonical trip option from the primary planning source,
// composed of ordered legs. An EnrichmentOption is an independently-fetched
// candidate from the secondary fare source; when one is matched to a Journey
// its per-leg amounts are aggregated into a Fare.
package journey
