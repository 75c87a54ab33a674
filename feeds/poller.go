package feeds

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// Poller periodically refreshes one feed family's identifiers through its
// Source, tolerating per-identifier failure. Cycles run at a fixed
// wall-clock interval, not adjusted for prior cycle duration.
type Poller struct {
	name   string
	desc   Descriptor
	source Source
	clock  Clock

	cycleActive atomic.Bool // reentrancy guard: one cycle at a time

	mu     sync.Mutex
	status Status
	stop   chan struct{}
}

// NewPoller creates a poller. clock defaults to the system clock when nil.
func NewPoller(name string, desc Descriptor, source Source, clock Clock) *Poller {
	if clock == nil {
		clock = SystemClock()
	}
	return &Poller{
		name:   name,
		desc:   desc,
		source: source,
		clock:  clock,
		status: Status{Name: name},
	}
}

// Start performs an immediate cycle and schedules further cycles at the
// configured interval. Idempotent: a no-op if already running.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.status.Running {
		p.mu.Unlock()
		return
	}
	p.status.Running = true
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	log.Printf("poller[%s] started, interval %s, %d feeds", p.name, p.desc.Interval, len(p.desc.IDs))
	go p.run(stop)
}

func (p *Poller) run(stop chan struct{}) {
	p.PollAll(context.Background())
	ticker := p.clock.NewTicker(p.desc.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C():
			p.PollAll(context.Background())
		case <-stop:
			return
		}
	}
}

// Stop cancels future cycles. Idempotent; an in-flight cycle is not aborted.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.status.Running {
		return
	}
	p.status.Running = false
	close(p.stop)
	p.stop = nil
	log.Printf("poller[%s] stopped", p.name)
}

// PollAll runs one cycle over all configured feed identifiers, sleeping the
// stagger delay between identifiers. If the previous cycle has not finished
// the new cycle is skipped entirely, not queued. Each identifier's failure
// is isolated: it is counted and logged but never stops the loop.
func (p *Poller) PollAll(ctx context.Context) {
	if !p.cycleActive.CompareAndSwap(false, true) {
		log.Printf("poller[%s] previous cycle still running, skipping", p.name)
		return
	}
	defer p.cycleActive.Store(false)

	p.mu.Lock()
	p.status.PollCount++
	p.status.LastPoll = p.clock.Now()
	p.mu.Unlock()

	for i, id := range p.desc.IDs {
		if i > 0 && p.desc.Stagger > 0 {
			select {
			case <-p.clock.After(p.desc.Stagger):
			case <-ctx.Done():
				return
			}
		}
		count, err := p.source.FetchAndCache(ctx, id)
		if err != nil {
			p.mu.Lock()
			p.status.ErrorCount++
			p.status.LastError = err.Error()
			p.mu.Unlock()
			log.Printf("poller[%s] feed %s: %v", p.name, id, err)
			continue
		}
		p.mu.Lock()
		p.status.LastSuccess = p.clock.Now()
		p.mu.Unlock()
		if count > 0 {
			log.Printf("poller[%s] feed %s: cached %d entities", p.name, id, count)
		}
	}
}

// Status returns an immutable copy of the poller's counters, safe to read
// from any goroutine.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}
