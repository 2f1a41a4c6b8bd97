package client

import (
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// TickSource delivers the host's periodic idle notifications.
// Subscribe returns the matching unsubscribe; the pool calls it when
// it empties out, possibly from inside a tick.
type TickSource interface {
	Subscribe(tick func()) (unsubscribe func())
}

// Pool holds every request that still needs body reads. It listens to
// its tick source only while non-empty.
type Pool struct {
	source TickSource
	logger *slog.Logger

	mu          sync.Mutex
	requests    []*Request
	unsubscribe func()
}

func NewPool(source TickSource, logger *slog.Logger) *Pool {
	return &Pool{source: source, logger: logger}
}

func (p *Pool) add(r *Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r.pool = p
	p.requests = append(p.requests, r)
	if p.unsubscribe == nil {
		p.unsubscribe = p.source.Subscribe(p.Tick)
		p.logger.Debug("pool subscribed to ticks")
	}
}

// remove evicts r without waiting for a tick, dropping the tick
// subscription when it was the last one. Ticks evict finished requests
// on their own; this path exists for Cancel.
func (p *Pool) remove(r *Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	live := make([]*Request, 0, len(p.requests))
	for _, req := range p.requests {
		if req != r {
			live = append(live, req)
		}
	}
	p.requests = live

	p.maybeUnsubscribe()
}

// Tick advances every live request by one read slice and evicts the
// finished ones. Each request is visited exactly once per call.
func (p *Pool) Tick() {
	p.mu.Lock()
	batch := make([]*Request, len(p.requests))
	copy(batch, p.requests)
	p.mu.Unlock()

	for _, r := range batch {
		r.step()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Finished requests drop out; ones added or removed during the
	// tick are already reflected in the slice.
	live := p.requests[:0:0]
	for _, r := range p.requests {
		if !r.complete {
			live = append(live, r)
		}
	}
	p.requests = live

	p.maybeUnsubscribe()
}

// maybeUnsubscribe drops the tick subscription once nothing is in
// flight. Callers hold p.mu.
func (p *Pool) maybeUnsubscribe() {
	if len(p.requests) == 0 && p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
		p.logger.Debug("pool unsubscribed from ticks")
	}
}

// Len reports the number of in-flight requests.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// ClockTicker adapts a clock into a TickSource for hosts without an
// idle callback of their own.
type ClockTicker struct {
	clock    clock.Clock
	interval time.Duration
}

var _ TickSource = (*ClockTicker)(nil)

func NewClockTicker(clk clock.Clock, interval time.Duration) *ClockTicker {
	return &ClockTicker{clock: clk, interval: interval}
}

// Subscribe starts a goroutine calling tick on every interval. The
// returned unsubscribe only signals the goroutine; it does not wait,
// since the pool unsubscribes from inside a tick.
func (ct *ClockTicker) Subscribe(tick func()) (unsubscribe func()) {
	ticker := ct.clock.Ticker(ct.interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()

	return func() { close(done) }
}
