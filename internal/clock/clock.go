// Package clock turns an opaque monotonic tick counter into frame deltas.
package clock

import "time"

// Source reports an opaque, non-decreasing tick count.
type Source interface {
	Now() uint64
}

// Monotonic counts nanoseconds since it was created using the runtime's
// monotonic clock.
type Monotonic struct {
	start time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

func (m *Monotonic) Now() uint64 {
	return uint64(time.Since(m.start))
}

// Calibrate measures how many ticks src advances per second by stalling for
// interval once. A source that does not advance reports 1 tick per second so
// callers never divide by zero.
func Calibrate(src Source, stall func(time.Duration), interval time.Duration) float64 {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	before := src.Now()
	stall(interval)
	after := src.Now()

	if after <= before {
		return 1
	}
	return float64(after-before) / interval.Seconds()
}

// Stopwatch hands out the time between successive laps in seconds.
type Stopwatch struct {
	src            Source
	ticksPerSecond float64
	maxDelta       float64
	last           uint64
}

// NewStopwatch starts timing from src's current reading. Laps longer than
// maxDelta are clamped to it.
func NewStopwatch(src Source, ticksPerSecond float64, maxDelta time.Duration) *Stopwatch {
	return &Stopwatch{
		src:            src,
		ticksPerSecond: ticksPerSecond,
		maxDelta:       maxDelta.Seconds(),
		last:           src.Now(),
	}
}

// Lap returns the seconds elapsed since the previous lap, clamped to
// [0, maxDelta]. A reading that went backwards yields 0.
func (s *Stopwatch) Lap() float64 {
	now := s.src.Now()
	prev := s.last
	s.last = now

	if now <= prev || s.ticksPerSecond <= 0 {
		return 0
	}

	dt := float64(now-prev) / s.ticksPerSecond
	if dt > s.maxDelta {
		return s.maxDelta
	}
	return dt
}

// Elapsed returns the seconds since the last lap without starting a new one.
func (s *Stopwatch) Elapsed() float64 {
	now := s.src.Now()
	if now <= s.last || s.ticksPerSecond <= 0 {
		return 0
	}
	return float64(now-s.last) / s.ticksPerSecond
}
