package clock

import "time"

// Ticker abstracts the periodic signal driving background loops so tests can
// fire ticks without real time passing.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker for the given interval.
type TickerFactory func(interval time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func NewRealTicker(interval time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(interval)}
}

func (r *realTicker) C() <-chan time.Time {
	return r.t.C
}

func (r *realTicker) Stop() {
	r.t.Stop()
}

type MockTicker struct {
	ch chan time.Time
}

func NewMockTicker() *MockTicker {
	return &MockTicker{ch: make(chan time.Time)}
}

func (m *MockTicker) C() <-chan time.Time {
	return m.ch
}

func (m *MockTicker) Stop() {}

// Tick delivers one tick and blocks until the loop receives it.
func (m *MockTicker) Tick(t time.Time) {
	m.ch <- t
}
