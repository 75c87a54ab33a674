package feeds

import (
	"context"
	"log"
	"sync"
	"time"
)

// Orchestrator owns the three family pollers. Startup is staggered by a
// settle delay so independent pollers do not burst against the upstream at
// the same instant; this is distinct from the intra-cycle stagger between
// identifiers inside one poller.
type Orchestrator struct {
	pollers []*Poller
	settle  time.Duration
	clock   Clock

	mu        sync.Mutex
	running   bool
	startedAt time.Time
}

// OrchestratorStatus aggregates the orchestrator flag and all poller
// snapshots for the operations endpoint.
type OrchestratorStatus struct {
	Running   bool      `json:"running"`
	StartedAt time.Time `json:"started_at,omitempty"`
	Pollers   []Status  `json:"pollers"`
}

// NewOrchestrator wires the alerts, trip-updates and vehicle-positions
// pollers in startup order. clock defaults to the system clock when nil.
func NewOrchestrator(alerts, tripUpdates, vehiclePositions *Poller, settle time.Duration, clock Clock) *Orchestrator {
	if clock == nil {
		clock = SystemClock()
	}
	return &Orchestrator{
		pollers: []*Poller{alerts, tripUpdates, vehiclePositions},
		settle:  settle,
		clock:   clock,
	}
}

// Start launches the pollers in order, waiting the settle delay between
// starts. Idempotent.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return
	}
	o.running = true
	o.startedAt = o.clock.Now()
	o.mu.Unlock()

	log.Printf("orchestrator starting %d pollers, settle delay %s", len(o.pollers), o.settle)
	go func() {
		for i, p := range o.pollers {
			if i > 0 && o.settle > 0 {
				<-o.clock.After(o.settle)
			}
			if !o.isRunning() {
				return
			}
			p.Start()
		}
	}()
}

func (o *Orchestrator) isRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// Stop stops all pollers. Idempotent; in-flight cycles are not awaited.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	o.running = false
	o.mu.Unlock()

	for _, p := range o.pollers {
		p.Stop()
	}
	log.Printf("orchestrator stopped")
}

// Status aggregates the orchestrator state and every poller snapshot.
func (o *Orchestrator) Status() OrchestratorStatus {
	o.mu.Lock()
	s := OrchestratorStatus{Running: o.running, StartedAt: o.startedAt}
	o.mu.Unlock()
	for _, p := range o.pollers {
		s.Pollers = append(s.Pollers, p.Status())
	}
	return s
}

// TriggerFamily fires one manual cycle for the named family's poller.
// Returns false when no poller owns that family.
func (o *Orchestrator) TriggerFamily(ctx context.Context, family Family) bool {
	for _, p := range o.pollers {
		if p.desc.Family == family {
			p.PollAll(ctx)
			return true
		}
	}
	return false
}

// TriggerAll fires one manual cycle per poller concurrently, bypassing
// their timers. Blocks until every cycle returns; a poller mid-cycle skips
// per the reentrancy guard.
func (o *Orchestrator) TriggerAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, p := range o.pollers {
		wg.Add(1)
		go func(p *Poller) {
			defer wg.Done()
			p.PollAll(ctx)
		}(p)
	}
	wg.Wait()
}
