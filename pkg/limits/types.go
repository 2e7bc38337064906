package limits

import "time"

// DenyReason identifies which rule rejected a request.
type DenyReason string

const (
	// DenyGlobalMinute means the shared per-minute window is full.
	DenyGlobalMinute DenyReason = "global_minute"

	// DenyGlobalDay means the shared per-day window is full.
	DenyGlobalDay DenyReason = "global_day"

	// DenyUserDay means the requester's own per-day window is full.
	DenyUserDay DenyReason = "user_day"

	// DenyCooldown means the requester's previous request was too recent.
	DenyCooldown DenyReason = "cooldown"
)

// Decision is the outcome of one CheckAndReserve call.
//
// When Allowed is false, Reason names the rule that rejected the request
// and the remaining fields describe the violated limit so callers can
// build a useful rejection message.
type Decision struct {
	// Allowed indicates if the request may proceed. When true, the
	// reservation has already been registered.
	Allowed bool

	// Reason identifies the rejecting rule (if Allowed=false).
	Reason DenyReason

	// Limit is the configured limit of the violated window
	// (zero for cooldown denials).
	Limit int64

	// Window is the duration of the violated window
	// (zero for cooldown denials).
	Window time.Duration

	// RetryAfter is how long until the request could succeed: time to
	// window reset, or remaining cooldown.
	RetryAfter time.Duration
}

// Config contains the quota rules the Ledger enforces.
//
// All limits apply to admitted requests only; denied requests never
// consume quota.
type Config struct {
	// GlobalPerMinute caps admitted requests across all users per minute.
	// Default: 10
	GlobalPerMinute int64

	// GlobalPerDay caps admitted requests across all users per day.
	// Default: 1000
	GlobalPerDay int64

	// UserPerDay caps admitted requests per nickname per day.
	// Default: 50
	UserPerDay int64

	// Cooldown is the minimum spacing between two admitted requests
	// from the same nickname.
	// Default: 3s
	Cooldown time.Duration

	// EvictAfter is how long an idle nickname's state is retained
	// before EvictStale removes it.
	// Default: 48h (twice the daily window)
	EvictAfter time.Duration
}

// applyDefaults fills zero values with the documented defaults.
func (c *Config) applyDefaults() {
	if c.GlobalPerMinute == 0 {
		c.GlobalPerMinute = 10
	}
	if c.GlobalPerDay == 0 {
		c.GlobalPerDay = 1000
	}
	if c.UserPerDay == 0 {
		c.UserPerDay = 50
	}
	if c.Cooldown == 0 {
		c.Cooldown = 3 * time.Second
	}
	if c.EvictAfter == 0 {
		c.EvictAfter = 48 * time.Hour
	}
}

// Stats is a point-in-time snapshot of ledger occupancy, exposed for
// operator surfaces. Counts reflect the current windows only.
type Stats struct {
	// TrackedUsers is the number of nicknames with live state.
	TrackedUsers int

	// MinuteCount is the count in the current global minute window.
	MinuteCount int64

	// MinuteRemaining is the capacity left in the global minute window.
	MinuteRemaining int64

	// DayCount is the count in the current global day window.
	DayCount int64

	// DayRemaining is the capacity left in the global day window.
	DayRemaining int64
}
