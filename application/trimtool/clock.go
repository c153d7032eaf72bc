package trimtool

import "time"

// DefaultTickInterval is the nominal playback tick. It does not follow the
// source frame rate.
const DefaultTickInterval = 30 * time.Millisecond

// Ticker delivers playback ticks
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a running Ticker
type TickerFactory func(interval time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time {
	return r.t.C
}

func (r realTicker) Stop() {
	r.t.Stop()
}

// NewTimeTicker is the production TickerFactory
func NewTimeTicker(interval time.Duration) Ticker {
	return realTicker{t: time.NewTicker(interval)}
}

// Clock is the playback timer. A stopped clock returns a nil channel from C,
// which blocks forever in a select.
type Clock struct {
	interval time.Duration
	factory  TickerFactory
	ticker   Ticker
}

// NewClock creates a stopped clock
func NewClock(interval time.Duration, factory TickerFactory) *Clock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if factory == nil {
		factory = NewTimeTicker
	}
	return &Clock{interval: interval, factory: factory}
}

// Start begins ticking; it is a no-op on a running clock
func (c *Clock) Start() {
	if c.ticker != nil {
		return
	}
	c.ticker = c.factory(c.interval)
}

// Stop halts ticking; it is a no-op on a stopped clock
func (c *Clock) Stop() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
}

// Running reports whether the clock is ticking
func (c *Clock) Running() bool {
	return c.ticker != nil
}

// Interval returns the tick interval
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// C returns the tick channel, or nil when stopped
func (c *Clock) C() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C()
}
