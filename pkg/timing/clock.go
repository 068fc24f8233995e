package timing

import "time"

// Clock abstracts timer creation so animation waits can be driven by a fake
// in tests. The zero value of engine code should fall back to SystemClock.
type Clock interface {
	// After returns a channel that delivers once, no sooner than d from now.
	After(d time.Duration) <-chan time.Time

	// Ticker returns a repeating tick channel and a stop function. The stop
	// function must be safe to call more than once.
	Ticker(d time.Duration) (<-chan time.Time, func())
}

// SystemClock is the real-time Clock used outside of tests.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (systemClock) Ticker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	stopped := false
	stop := func() {
		if !stopped {
			stopped = true
			t.Stop()
		}
	}
	return t.C, stop
}
