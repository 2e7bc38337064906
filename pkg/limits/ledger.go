package limits

import (
	"strings"
	"sync"
	"time"
)

const (
	minuteWindow = time.Minute
	dayWindow    = 24 * time.Hour
)

// userState holds the per-nickname quota state.
type userState struct {
	day Window

	// lastRequest is the time of the user's most recent admitted
	// request. Zero means the user has never been admitted. Only
	// admitted requests move it, and it never moves backwards.
	lastRequest time.Time

	// lastSeen is the time of the user's most recent check, admitted
	// or not. Retention bookkeeping only, never part of admission.
	lastSeen time.Time
}

// Ledger tracks the global and per-user quota windows plus the per-user
// cooldown stamp, and decides admission through a single atomic
// check-and-reserve operation.
//
// The ledger is the only shared mutable state between in-flight
// requests. All counters live in memory and reset on process restart.
//
// # Thread Safety
//
// Every operation takes the ledger mutex; CheckAndReserve evaluates the
// cooldown, rolls over expired windows, checks every limit, and
// registers the reservation inside one critical section, so no two
// concurrent callers can both claim the last slot of a window.
type Ledger struct {
	mu      sync.Mutex
	cfg     Config
	minute  Window
	day     Window
	users   map[string]*userState
	metrics *Metrics
}

// NewLedger creates a ledger enforcing the given rules. Zero config
// fields take the documented defaults.
//
// Global windows begin counting at the first check; per-user state is
// created lazily on a user's first check.
func NewLedger(cfg Config) *Ledger {
	cfg.applyDefaults()
	return &Ledger{
		cfg: cfg,
		// Zero start times make the first check roll both windows
		// over to its own clock, keeping synthetic clocks usable.
		minute: newWindow(cfg.GlobalPerMinute, minuteWindow, time.Time{}),
		day:    newWindow(cfg.GlobalPerDay, dayWindow, time.Time{}),
		users:  make(map[string]*userState),
	}
}

// SetMetrics attaches Prometheus instrumentation. Optional; a nil or
// absent Metrics disables recording. Must be called before the ledger
// is shared between goroutines.
func (l *Ledger) SetMetrics(m *Metrics) {
	l.metrics = m
}

// CheckAndReserve decides whether a request from nick at time now may
// proceed, and if so registers it against every relevant window in the
// same atomic step.
//
// Evaluation order:
//
//  1. Cooldown: if the user's previous admitted request is closer than
//     the configured cooldown, deny with the remaining wait. Checked
//     first so an immediate retry never consumes quota.
//  2. Window rollover: any window whose interval has elapsed at now is
//     reset before its limit is consulted.
//  3. Limits: global per-minute, global per-day, then the user's
//     per-day window.
//
// A denial mutates no counters and does not touch lastRequest. An
// admission increments the global minute, global day, and user day
// counters and advances lastRequest, all before the method returns.
//
// Nicknames are case-folded (ASCII lower) so quota identity does not
// depend on how the server relays the nick.
func (l *Ledger) CheckAndReserve(nick string, now time.Time) Decision {
	key := foldNick(nick)

	l.mu.Lock()
	defer l.mu.Unlock()

	user := l.userLocked(key, now)
	user.lastSeen = now

	// Cooldown precedes the window checks: it is the cheapest and most
	// common rejection, and a request that will be retried in seconds
	// must not consume window capacity.
	if !user.lastRequest.IsZero() {
		elapsed := now.Sub(user.lastRequest)
		if elapsed < l.cfg.Cooldown {
			return l.denyLocked(Decision{
				Reason:     DenyCooldown,
				RetryAfter: l.cfg.Cooldown - elapsed,
			})
		}
	}

	// Rollover happens while the lock is held so the reset and the
	// admission check below form one indivisible step.
	if l.minute.expired(now) {
		l.minute.reset(now)
	}
	if l.day.expired(now) {
		l.day.reset(now)
	}
	if user.day.expired(now) {
		user.day.reset(now)
	}

	if l.minute.full() {
		return l.denyLocked(Decision{
			Reason:     DenyGlobalMinute,
			Limit:      l.minute.limit,
			Window:     minuteWindow,
			RetryAfter: l.minute.resetAt().Sub(now),
		})
	}
	if l.day.full() {
		return l.denyLocked(Decision{
			Reason:     DenyGlobalDay,
			Limit:      l.day.limit,
			Window:     dayWindow,
			RetryAfter: l.day.resetAt().Sub(now),
		})
	}
	if user.day.full() {
		return l.denyLocked(Decision{
			Reason:     DenyUserDay,
			Limit:      user.day.limit,
			Window:     dayWindow,
			RetryAfter: user.day.resetAt().Sub(now),
		})
	}

	l.minute.count++
	l.day.count++
	user.day.count++
	if now.After(user.lastRequest) {
		user.lastRequest = now
	}

	if l.metrics != nil {
		l.metrics.RecordAllowed()
	}
	return Decision{Allowed: true}
}

// denyLocked finalizes a denial. Counters stay untouched.
func (l *Ledger) denyLocked(d Decision) Decision {
	if l.metrics != nil {
		l.metrics.RecordDenied(d.Reason)
	}
	return d
}

// userLocked returns the state for key, creating it on first sight.
func (l *Ledger) userLocked(key string, now time.Time) *userState {
	u, ok := l.users[key]
	if !ok {
		u = &userState{day: newWindow(l.cfg.UserPerDay, dayWindow, now)}
		l.users[key] = u
		if l.metrics != nil {
			l.metrics.SetTrackedUsers(len(l.users))
		}
	}
	return u
}

// EvictStale removes per-user state that has not been touched for
// longer than the configured retention (EvictAfter, twice the daily
// window by default) and returns how many entries were removed.
//
// Eviction only forgets idle users; an evicted user who returns starts
// from a fresh daily window, which is the same state a restart would
// give them.
func (l *Ledger) EvictStale(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, u := range l.users {
		if now.Sub(u.lastSeen) > l.cfg.EvictAfter {
			delete(l.users, key)
			evicted++
		}
	}
	if evicted > 0 && l.metrics != nil {
		l.metrics.RecordEvictions(evicted)
		l.metrics.SetTrackedUsers(len(l.users))
	}
	return evicted
}

// Stats returns a snapshot of current ledger occupancy.
func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Stats{
		TrackedUsers:    len(l.users),
		MinuteCount:     l.minute.count,
		MinuteRemaining: l.minute.remaining(),
		DayCount:        l.day.count,
		DayRemaining:    l.day.remaining(),
	}
}

// Config returns the rules the ledger was built with (defaults applied).
func (l *Ledger) Config() Config {
	return l.cfg
}

// foldNick maps a nickname to its quota identity. IRC nicks are case
// insensitive, so the ledger folds to ASCII lower case once at the
// boundary.
func foldNick(nick string) string {
	return strings.ToLower(nick)
}
