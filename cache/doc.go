// Package cache provides the shared feed cache store.
//
// The feed pipeline consumes only the Store contract: feed metadata and raw
// snapshots keyed by (family, feed identifier). Two backends ship: an
// in-memory TTL store for standalone operation and a Redis store for shared
// deployments.
package cache
