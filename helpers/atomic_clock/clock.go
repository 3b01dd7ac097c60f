// Package atomic_clock provides millisecond clocks for the telemetry time base.
// Clock is an atomic int64 set by hand (tests, interactive tool).
// Monotonic counts from its creation using the runtime monotonic reading,
// so wall clock steps (NTP, RTC sync) never move telemetry time backwards.
package atomic_clock

import (
	"sync/atomic"
	"time"
)

type Clock struct{ v int64 }

func (c *Clock) get() int64    { return atomic.LoadInt64(&c.v) }
func (c *Clock) set(new int64) { atomic.StoreInt64(&c.v, new) }

func (c *Clock) IsZero() bool { return c.get() == 0 }

func (c *Clock) Set(ms int64) { c.set(ms) }

// Add advances clock by d, truncated to whole milliseconds. Negative d is ignored.
func (c *Clock) Add(d time.Duration) {
	if d <= 0 {
		return
	}
	atomic.AddInt64(&c.v, int64(d/time.Millisecond))
}

func (c *Clock) Milliseconds() uint64 { return uint64(c.get()) }

func New(ms int64) *Clock { return &Clock{v: ms} }

type Monotonic struct{ base time.Time }

func NewMonotonic() *Monotonic { return &Monotonic{base: time.Now()} }

func (m *Monotonic) Milliseconds() uint64 {
	return uint64(time.Since(m.base) / time.Millisecond)
}
