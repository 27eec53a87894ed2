package countdown

import "time"

// Clock abstracts the time source so tickers can be driven manually in tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Tick
}

// Tick is the subset of *time.Ticker a Ticker needs.
type Tick interface {
	C() <-chan time.Time
	Stop()
}

// RealClock uses the system wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) NewTicker(d time.Duration) Tick {
	return realTick{time.NewTicker(d)}
}

type realTick struct {
	t *time.Ticker
}

func (r realTick) C() <-chan time.Time { return r.t.C }
func (r realTick) Stop()               { r.t.Stop() }
