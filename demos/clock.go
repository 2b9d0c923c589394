package demos

import (
	"slices"
	"sync"
	"time"

	"github.com/delaneyj/hookparty/hooks"
)

// Clock is the time source of the panels. Timer callbacks run on whatever
// goroutine the clock chooses, so they must go through Ctx.Dispatch to touch
// state.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) (stop func())
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// RealClock uses system time.
func RealClock() Clock {
	return realClock{}
}

// ClockContext carries the clock to the panels. Without a provider they use
// system time.
var ClockContext = hooks.CreateContext[Clock]("clock", realClock{})

// Every calls fn every d until stop is called.
func Every(clock Clock, d time.Duration, fn func()) (stop func()) {
	var (
		mu      sync.Mutex
		stopped bool
		cancel  func()
	)
	var arm func()
	arm = func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		cancel = clock.AfterFunc(d, func() {
			fn()
			arm()
		})
	}
	arm()
	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if cancel != nil {
			cancel()
		}
	}
}

// FakeClock provides controllable time for deterministic demo scripts.
// Timers only fire inside Advance, on the caller's goroutine. All methods
// are safe for concurrent use.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	at  time.Time
	seq uint64
	fn  func()
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{at: c.now.Add(d), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.timers = slices.DeleteFunc(c.timers, func(other *fakeTimer) bool {
			return other == t
		})
	}
}

// Advance moves the clock forward by d, firing every timer that comes due
// on the way in time order, including timers armed by those callbacks.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		c.now = t.at
		c.mu.Unlock()
		t.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *FakeClock) nextDue(target time.Time) *fakeTimer {
	var due *fakeTimer
	idx := -1
	for i, t := range c.timers {
		if t.at.After(target) {
			continue
		}
		if due == nil || t.at.Before(due.at) || (t.at.Equal(due.at) && t.seq < due.seq) {
			due, idx = t, i
		}
	}
	if due != nil {
		c.timers = slices.Delete(c.timers, idx, idx+1)
	}
	return due
}

// Pending returns the number of armed timers.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
