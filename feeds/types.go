package feeds

import "time"

// Family is a category of upstream real-time transit data.
type Family string

const (
	FamilyAlerts           Family = "alerts"
	FamilyTripUpdates      Family = "trip-updates"
	FamilyVehiclePositions Family = "vehicle-positions"
)

// Feed payload encodings.
const (
	FormatProtobuf = "protobuf"
	FormatJSON     = "json"
)

// Descriptor fixes one poller's scope at construction: the family it owns,
// the feed identifiers it cycles through, the poll interval and the stagger
// delay inserted between identifiers within one cycle.
type Descriptor struct {
	Family   Family
	IDs      []string
	Interval time.Duration
	Stagger  time.Duration
}

// Validator is the opaque freshness token pair used to detect upstream
// change cheaply.
type Validator struct {
	LastModified string
	ETag         string
}

// IsZero reports whether no validator is known.
func (v Validator) IsZero() bool {
	return v.LastModified == "" && v.ETag == ""
}

// ProbeResult is the outcome of a metadata-only modification check.
type ProbeResult struct {
	Modified  bool
	Validator Validator
}

// Status is a point-in-time snapshot of one poller's counters.
type Status struct {
	Name        string    `json:"name"`
	Running     bool      `json:"running"`
	LastPoll    time.Time `json:"last_poll,omitempty"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	PollCount   int64     `json:"poll_count"`
	ErrorCount  int64     `json:"error_count"`
}
