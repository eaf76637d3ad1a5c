package gamepad

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// DefaultRetryDelay is the pause between failed connection attempts.
const DefaultRetryDelay = 2 * time.Second

// ErrDeviceUnavailable is returned by sources when no device occupies a slot.
var ErrDeviceUnavailable = errors.New("device unavailable")

// Source connects to one physical pad and streams its events. The channel is
// closed when the device goes away; a source may also send an ErrorEvent first.
type Source interface {
	Connect(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter's logger.
func WithLogger(l hclog.Logger) Option {
	return func(a *Adapter) { a.l = l }
}

// WithRetryDelay sets the fixed delay between connection attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.retryDelay = d
		}
	}
}

// WithChanges makes the adapter send its slot index on ch after every state
// change. Sends never block; a full channel drops the notification.
func WithChanges(ch chan<- int) Option {
	return func(a *Adapter) { a.changes = ch }
}

// Adapter owns the snapshot of one device slot and keeps it in sync with a
// Source, reconnecting forever when the device is missing or fails.
type Adapter struct {
	l          hclog.Logger
	index      int
	source     Source
	retryDelay time.Duration
	changes    chan<- int

	mu   sync.RWMutex
	snap *Snapshot
}

// NewAdapter creates the adapter for slot index fed by src.
func NewAdapter(index int, src Source, opts ...Option) *Adapter {
	a := &Adapter{
		l:          hclog.NewNullLogger(),
		index:      index,
		source:     src,
		retryDelay: DefaultRetryDelay,
		snap:       NewSnapshot(index),
	}
	for _, o := range opts {
		o(a)
	}
	a.l = a.l.With("slot", index)
	return a
}

// Index returns the device slot served by the adapter.
func (a *Adapter) Index() int {
	return a.index
}

// Snapshot returns the current snapshot. It is replaced on every reinitialize.
func (a *Adapter) Snapshot() *Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

// Scratchify renders the current snapshot.
func (a *Adapter) Scratchify() string {
	return a.Snapshot().Scratchify()
}

// Run connects to the source and applies its events until ctx is done.
// Connection failures are retried after the fixed delay; a device error
// discards the snapshot and reconnects immediately.
func (a *Adapter) Run(ctx context.Context) error {
	for {
		a.reset()

		events, err := a.source.Connect(ctx)
		if err != nil {
			a.l.Warn("Failed to connect to device", "error", err, "retry", a.retryDelay)
			if !a.wait(ctx) {
				return ctx.Err()
			}
			continue
		}
		a.l.Info("Device connected")

		err = a.consume(ctx, events)
		if cerr := a.source.Close(); cerr != nil {
			a.l.Debug("Error closing source", "error", cerr)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.l.Warn("Device lost, reinitializing", "error", err)
	}
}

// consume applies events until the device fails or ctx is done.
func (a *Adapter) consume(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return ErrDeviceUnavailable
			}
			if ee, isErr := e.(ErrorEvent); isErr {
				if ee.Err == nil {
					return ErrDeviceUnavailable
				}
				return ee.Err
			}
			if a.Snapshot().Apply(e) {
				a.l.Trace("Applied event", "event", e)
				a.notify()
			}
		}
	}
}

// wait sleeps for the retry delay. It returns false if ctx ended first.
func (a *Adapter) wait(ctx context.Context) bool {
	t := time.NewTimer(a.retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (a *Adapter) reset() {
	a.mu.Lock()
	a.snap = NewSnapshot(a.index)
	a.mu.Unlock()
	a.notify()
}

func (a *Adapter) notify() {
	if a.changes == nil {
		return
	}
	select {
	case a.changes <- a.index:
	default:
	}
}
