// Package tick paces the UI loop at a fixed period without a background
// timer goroutine.
package tick

import "time"

// DefaultPeriod is the progress counter resolution.
const DefaultPeriod = time.Second

// Scheduler tracks when the next tick is due.
type Scheduler struct {
	period time.Duration
	last   time.Time
}

// New starts the first period at now.
func New(period time.Duration, now time.Time) *Scheduler {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Scheduler{period: period, last: now}
}

// Timeout returns how long the loop may wait for input before the next
// tick is due. It is never negative.
func (s *Scheduler) Timeout(now time.Time) time.Duration {
	remaining := s.period - now.Sub(s.last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Due reports whether a tick has elapsed and, if so, starts the next period
// at now. Missed periods are not replayed.
func (s *Scheduler) Due(now time.Time) bool {
	if now.Sub(s.last) < s.period {
		return false
	}
	s.last = now
	return true
}
