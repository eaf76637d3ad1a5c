package gamepad

import (
	"context"
	"strings"
	"sync"
)

// Pool is the set of adapters served by one process, ordered by slot.
type Pool struct {
	adapters []*Adapter
}

// NewPool returns a pool of the given adapters.
func NewPool(adapters ...*Adapter) *Pool {
	return &Pool{adapters: adapters}
}

// Adapters returns the adapters in slot order.
func (p *Pool) Adapters() []*Adapter {
	return p.adapters
}

// Get returns the adapter for slot, or nil.
func (p *Pool) Get(slot int) *Adapter {
	for _, a := range p.adapters {
		if a.Index() == slot {
			return a
		}
	}
	return nil
}

// HasSlot reports whether slot is served by the pool.
func (p *Pool) HasSlot(slot int) bool {
	return p.Get(slot) != nil
}

// Render returns the rendered snapshot of slot.
func (p *Pool) Render(slot int) (string, bool) {
	a := p.Get(slot)
	if a == nil {
		return "", false
	}
	return a.Scratchify(), true
}

// Poll renders every slot, concatenated in slot order.
func (p *Pool) Poll() string {
	var sb strings.Builder
	for _, a := range p.adapters {
		sb.WriteString(a.Scratchify())
	}
	return sb.String()
}

// Run runs every adapter until ctx is done.
func (p *Pool) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, a := range p.adapters {
		wg.Add(1)
		go func(a *Adapter) {
			defer wg.Done()
			_ = a.Run(ctx)
		}(a)
	}
	wg.Wait()
}
