// Package fares provides best-effort fare enrichment of canonical journeys.
//
// The secondary fare source is unofficial and volatile, so all access goes
// through a circuit breaker: after repeated consecutive failures calls are
// short-circuited for a cooldown window. Every failure path degrades to a
// nil result; enrichment never blocks or fails the primary journey result.
package fares
