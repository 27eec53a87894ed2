package countdown

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultInterval is the recomputation period of a live countdown.
const DefaultInterval = time.Second

// ErrRunning is returned when Run is called on a Ticker that is already running.
var ErrRunning = errors.New("countdown ticker already running")

// Ticker republishes the remaining time for one deadline on a fixed interval.
// Each Ticker owns its timer; tickers never share state.
type Ticker struct {
	clock        Clock
	interval     time.Duration
	stopOnExpiry bool

	mu       sync.Mutex
	deadline time.Time
	current  RemainingTime
	running  bool
	done     chan struct{}

	stopCh   chan struct{}
	stopOnce sync.Once
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(t *Ticker) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithInterval sets the tick period. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithStopOnExpiry makes Run return once the expired value has been published.
func WithStopOnExpiry() Option {
	return func(t *Ticker) {
		t.stopOnExpiry = true
	}
}

// New creates a Ticker for deadline. It does nothing until Run is called.
func New(deadline time.Time, opts ...Option) *Ticker {
	t := &Ticker{
		clock:    RealClock{},
		interval: DefaultInterval,
		deadline: deadline,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run publishes the remaining time immediately and then once per interval.
// It blocks until ctx is cancelled, Stop is called, or (with WithStopOnExpiry)
// the deadline has passed. The underlying timer is always released on return.
func (t *Ticker) Run(ctx context.Context, publish func(RemainingTime)) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrRunning
	}
	t.running = true
	t.done = make(chan struct{})
	done := t.done
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
		close(done)
	}()

	select {
	case <-t.stopCh:
		return nil
	case <-ctx.Done():
		return nil
	default:
	}

	if t.tick(publish) && t.stopOnExpiry {
		return nil
	}

	tk := t.clock.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.stopCh:
			return nil
		case <-tk.C():
			if t.tick(publish) && t.stopOnExpiry {
				return nil
			}
		}
	}
}

// tick recomputes against the current deadline and reports whether it has expired.
func (t *Ticker) tick(publish func(RemainingTime)) bool {
	t.mu.Lock()
	r := Compute(t.deadline, t.clock.Now())
	t.current = r
	t.mu.Unlock()

	if publish != nil {
		publish(r)
	}
	return r.Expired
}

// SetDeadline retargets the ticker. The next tick computes against d.
func (t *Ticker) SetDeadline(d time.Time) {
	t.mu.Lock()
	t.deadline = d
	t.mu.Unlock()
}

// Deadline returns the current target.
func (t *Ticker) Deadline() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadline
}

// Current returns the most recently published value.
func (t *Ticker) Current() RemainingTime {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Stop ends Run and waits for it to return; no publish happens after Stop
// returns. It must not be called from inside the publish callback.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })

	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}
