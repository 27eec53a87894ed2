package countdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	ticks   chan time.Time
	created chan time.Duration
	stopped chan struct{}
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{
		now:     now,
		ticks:   make(chan time.Time),
		created: make(chan time.Duration, 1),
		stopped: make(chan struct{}, 1),
	}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	return f.now
}

func (f *fakeClock) NewTicker(d time.Duration) Tick {
	f.created <- d
	return &fakeTick{clock: f}
}

type fakeTick struct {
	clock *fakeClock
	once  sync.Once
}

func (t *fakeTick) C() <-chan time.Time { return t.clock.ticks }

func (t *fakeTick) Stop() {
	t.once.Do(func() { t.clock.stopped <- struct{}{} })
}

// fire advances the clock and delivers one tick to the running ticker.
func (f *fakeClock) fire(t *testing.T, d time.Duration) {
	t.Helper()
	now := f.Advance(d)
	select {
	case f.ticks <- now:
	case <-time.After(time.Second):
		t.Fatal("ticker did not accept tick")
	}
}

func receive(t *testing.T, ch <-chan RemainingTime) RemainingTime {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(time.Second):
		t.Fatal("no value published")
		return RemainingTime{}
	}
}

func startTicker(t *testing.T, tk *Ticker) (<-chan RemainingTime, <-chan error, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	published := make(chan RemainingTime, 16)
	errCh := make(chan error, 1)

	go func() {
		errCh <- tk.Run(ctx, func(r RemainingTime) { published <- r })
	}()

	t.Cleanup(cancel)
	return published, errCh, cancel
}

func TestTickerPublishesImmediatelyThenEveryTick(t *testing.T) {
	clk := newFakeClock(base)
	tk := New(base.Add(3*time.Second), WithClock(clk))

	published, errCh, cancel := startTicker(t, tk)

	assert.Equal(t, RemainingTime{Seconds: 3}, receive(t, published))
	assert.Equal(t, DefaultInterval, <-clk.created)

	var seq []int64
	for i := 0; i < 5; i++ {
		clk.fire(t, time.Second)
		seq = append(seq, receive(t, published).TotalSeconds())
	}
	assert.Equal(t, []int64{2, 1, 0, 0, 0}, seq)
	assert.True(t, tk.Current().Expired)

	cancel()
	require.NoError(t, <-errCh)
	<-clk.stopped
}

func TestTickerSetDeadlineAppliesOnNextTick(t *testing.T) {
	clk := newFakeClock(base)
	tk := New(base.Add(time.Hour), WithClock(clk), WithInterval(250*time.Millisecond))

	published, _, _ := startTicker(t, tk)
	assert.Equal(t, RemainingTime{Hours: 1}, receive(t, published))
	assert.Equal(t, 250*time.Millisecond, <-clk.created)

	tk.SetDeadline(base.Add(48 * time.Hour))
	assert.Equal(t, base.Add(48*time.Hour), tk.Deadline())

	clk.fire(t, time.Second)
	assert.Equal(t, RemainingTime{Days: 1, Hours: 23, Minutes: 59, Seconds: 59}, receive(t, published))

	tk.SetDeadline(base.Add(-time.Minute))
	clk.fire(t, time.Second)
	assert.Equal(t, RemainingTime{Expired: true}, receive(t, published))
}

func TestTickerStopIsDeterministic(t *testing.T) {
	clk := newFakeClock(base)
	tk := New(base.Add(time.Minute), WithClock(clk))

	published, errCh, _ := startTicker(t, tk)
	receive(t, published)
	<-clk.created

	tk.Stop()
	require.NoError(t, <-errCh)
	<-clk.stopped

	select {
	case r := <-published:
		t.Fatalf("published after stop: %+v", r)
	default:
	}

	// Second stop is a no-op.
	tk.Stop()
}

func TestTickerStopBeforeRun(t *testing.T) {
	clk := newFakeClock(base)
	tk := New(base.Add(time.Minute), WithClock(clk))
	tk.Stop()

	called := false
	err := tk.Run(context.Background(), func(RemainingTime) { called = true })
	require.NoError(t, err)
	assert.False(t, called)
	assert.Empty(t, clk.created)
}

func TestTickerStopOnExpiry(t *testing.T) {
	clk := newFakeClock(base)
	tk := New(base.Add(-time.Millisecond), WithClock(clk), WithStopOnExpiry())

	var got []RemainingTime
	err := tk.Run(context.Background(), func(r RemainingTime) { got = append(got, r) })
	require.NoError(t, err)
	assert.Equal(t, []RemainingTime{{Expired: true}}, got)
	assert.Empty(t, clk.created, "no timer should be allocated for an expired deadline")
}

func TestTickerStopOnExpiryAfterTicks(t *testing.T) {
	clk := newFakeClock(base)
	tk := New(base.Add(2*time.Second), WithClock(clk), WithStopOnExpiry())

	published, errCh, _ := startTicker(t, tk)
	assert.Equal(t, int64(2), receive(t, published).TotalSeconds())
	<-clk.created

	clk.fire(t, time.Second)
	assert.Equal(t, int64(1), receive(t, published).TotalSeconds())
	clk.fire(t, time.Second)
	assert.True(t, receive(t, published).Expired)

	require.NoError(t, <-errCh)
	<-clk.stopped
}

func TestTickerRejectsConcurrentRun(t *testing.T) {
	clk := newFakeClock(base)
	tk := New(base.Add(time.Minute), WithClock(clk))

	published, _, _ := startTicker(t, tk)
	receive(t, published)

	err := tk.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrRunning)
}

func TestTickersAreIndependent(t *testing.T) {
	clkA := newFakeClock(base)
	clkB := newFakeClock(base)
	a := New(base.Add(10*time.Second), WithClock(clkA))
	b := New(base.Add(24*time.Hour), WithClock(clkB))

	pubA, errA, _ := startTicker(t, a)
	pubB, _, _ := startTicker(t, b)
	receive(t, pubA)
	receive(t, pubB)

	clkA.fire(t, 4*time.Second)
	assert.Equal(t, int64(6), receive(t, pubA).TotalSeconds())

	a.Stop()
	require.NoError(t, <-errA)

	clkB.fire(t, time.Second)
	assert.Equal(t, RemainingTime{Hours: 23, Minutes: 59, Seconds: 59}, receive(t, pubB))
	assert.Equal(t, int64(6), a.Current().TotalSeconds())
}

func TestTickerWithRealClock(t *testing.T) {
	tk := New(time.Now().Add(time.Hour), WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var mu sync.Mutex
	count := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = tk.Run(ctx, func(r RemainingTime) {
			mu.Lock()
			count++
			n := count
			mu.Unlock()
			if n == 3 {
				cancel()
			}
		})
	}()

	<-done
	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, count, 3)
	assert.False(t, tk.Current().Expired)
}
