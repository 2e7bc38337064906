package limits

import "time"

// Window counts requests over one fixed rolling interval (minute or day).
//
// A Window does not enforce its own limit and is not safe for concurrent
// use on its own. The Ledger owns every Window, serializes access through
// its mutex, and performs the limit check before incrementing.
type Window struct {
	start    time.Time
	duration time.Duration
	count    int64
	limit    int64
}

// newWindow creates a window that starts counting at now.
func newWindow(limit int64, duration time.Duration, now time.Time) Window {
	return Window{
		start:    now,
		duration: duration,
		limit:    limit,
	}
}

// expired reports whether the window has run its full duration at now.
// The caller resets an expired window before evaluating admission, so
// rollover and the admission check happen in the same critical section.
func (w *Window) expired(now time.Time) bool {
	return now.Sub(w.start) >= w.duration
}

// reset starts a fresh interval: count drops to zero, the window begins
// at now.
func (w *Window) reset(now time.Time) {
	w.start = now
	w.count = 0
}

// full reports whether the window has no capacity left.
func (w *Window) full() bool {
	return w.count >= w.limit
}

// resetAt returns the instant the current interval ends.
func (w *Window) resetAt() time.Time {
	return w.start.Add(w.duration)
}

// remaining returns how many requests the window can still admit.
func (w *Window) remaining() int64 {
	if w.count >= w.limit {
		return 0
	}
	return w.limit - w.count
}
