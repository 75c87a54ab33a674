// Package feeds implements the real-time feed polling pipeline.
//
// It supports three feed families:
//   - Trip Updates: real-time arrival/departure predictions
//   - Vehicle Positions: current vehicle locations
//   - Service Alerts: disruptions and service changes
//
// A Client fetches feeds conditionally (probe before fetch), a Refresher
// decodes and commits snapshots to the shared cache, a Poller drives one
// family on a fixed interval and the Orchestrator owns the three pollers.
package feeds
