package demos_test

import (
	"testing"
	"time"

	"github.com/delaneyj/hookparty/demos"
	"github.com/stretchr/testify/assert"
)

// should fire due timers in time order while advancing
func TestFakeClockAdvance(t *testing.T) {
	clock := demos.NewFakeClock()
	start := clock.Now()
	var fired []string
	clock.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	clock.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	stop := clock.AfterFunc(time.Second, func() { fired = append(fired, "stopped") })
	stop()

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, start.Add(2500*time.Millisecond), clock.Now())
}

// should re-arm until stopped
func TestEvery(t *testing.T) {
	clock := demos.NewFakeClock()
	ticks := 0
	stop := demos.Every(clock, time.Second, func() { ticks++ })

	clock.Advance(3 * time.Second)
	assert.Equal(t, 3, ticks)

	stop()
	clock.Advance(3 * time.Second)
	assert.Equal(t, 3, ticks)
	assert.Zero(t, clock.Pending())
}
