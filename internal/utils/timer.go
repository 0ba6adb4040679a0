package utils

import "time"

// Timer measures elapsed wall-clock time. [NewTimer] starts it immediately;
// [Timer.Stop] captures the total since the start, and [Timer.Lap] captures
// the time since the previous lap without disturbing that total. One timer
// can therefore clock each stage of a staged pipeline and the whole run.
type Timer struct {
	startTime time.Time
	lapStart  time.Time
	duration  time.Duration
}

// NewTimer creates a Timer whose start and first lap begin now.
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{startTime: now, lapStart: now}
}

// Start resets the timer to now, discarding any captured duration and lap
// progress. It can be called to restart the timer without allocating a new
// instance.
func (t *Timer) Start() {
	now := time.Now()
	t.startTime = now
	t.lapStart = now
	t.duration = 0
}

// Lap returns the time elapsed since the previous Lap call (or since the
// start) and begins the next lap.
func (t *Timer) Lap() time.Duration {
	now := time.Now()
	lap := now.Sub(t.lapStart)
	t.lapStart = now
	return lap
}

// Stop records the elapsed time since the last call to [Timer.Start] (or
// since construction via [NewTimer]). The captured duration is available via
// [Timer.GetDuration]. Laps taken along the way do not shorten it.
func (t *Timer) Stop() {
	t.duration = time.Since(t.startTime)
}

// GetDuration returns the duration captured by the most recent call to
// [Timer.Stop]. If Stop has not been called yet, it returns zero.
func (t *Timer) GetDuration() time.Duration {
	return t.duration
}
