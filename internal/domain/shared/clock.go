package shared

import (
	"fmt"
	"sync/atomic"
)

// StarDate is a point in simulated time, counted in ticks since the session began
type StarDate int64

// Since returns the number of ticks elapsed from earlier to d
func (d StarDate) Since(earlier StarDate) int64 {
	return int64(d - earlier)
}

// String returns a human-readable representation of the date
func (d StarDate) String() string {
	return fmt.Sprintf("SD%d", int64(d))
}

// SimulationClock is an abstraction over the simulation calendar, allowing the date to be
// controlled in tests
type SimulationClock interface {
	Now() StarDate
}

// GameClock is the session calendar advanced by the tick scheduler.
// Now may be called concurrently with Advance.
type GameClock struct {
	date atomic.Int64
}

// NewGameClock creates a GameClock starting at the given date
func NewGameClock(start StarDate) *GameClock {
	c := &GameClock{}
	c.date.Store(int64(start))
	return c
}

// Now returns the current simulated date
func (c *GameClock) Now() StarDate {
	return StarDate(c.date.Load())
}

// Advance moves the calendar forward by the given number of ticks and returns the new date
func (c *GameClock) Advance(ticks int64) StarDate {
	if ticks < 0 {
		ticks = 0
	}
	return StarDate(c.date.Add(ticks))
}

// SetDate moves the calendar to a specific date
func (c *GameClock) SetDate(d StarDate) {
	c.date.Store(int64(d))
}
