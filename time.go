package flycam

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration
}

func NewTime(now time.Time) *Time {
	return &Time{Time: now}
}

// Tick advances to a wall-clock reading. A reading earlier than the last
// one yields a zero delta.
func (t *Time) Tick(now time.Time) {
	if t.Time.IsZero() {
		t.Time = now
		t.Dt = 0
		return
	}
	t.Dt = now.Sub(t.Time)
	if t.Dt < 0 {
		t.Dt = 0
	}
	t.Time = now
}

// Advance steps by a fixed delta, for fixed-rate loops and replays.
func (t *Time) Advance(dt time.Duration) {
	t.Dt = dt
	t.Time = t.Time.Add(dt)
}

func (t *Time) DeltaSeconds() float32 {
	return float32(t.Dt.Seconds())
}
