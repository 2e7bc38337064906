// Package limits implements the quota ledger that governs request
// admission for the bot.
//
// # Overview
//
// The ledger protects the upstream completion API from abuse and cost
// overrun by bounding how often the bot itself and each individual
// nickname may consume completions:
//
//   - Global per-minute and per-day windows shared by all users
//   - A per-nickname daily window
//   - A per-nickname cooldown between consecutive requests
//   - Stale user-state eviction on a cron schedule
//
// # Design
//
// All state is in memory and owned by a single Ledger value; counters
// reset on process restart. CheckAndReserve is the only mutating entry
// point: it evaluates the cooldown, rolls over expired windows, checks
// every limit, and registers the reservation in one critical section.
// Callers never read or write counters directly.
//
// # Usage
//
//	ledger := limits.NewLedger(limits.Config{
//	    GlobalPerMinute: 10,
//	    GlobalPerDay:    1000,
//	    UserPerDay:      50,
//	    Cooldown:        3 * time.Second,
//	})
//
//	d := ledger.CheckAndReserve("alice", time.Now())
//	if !d.Allowed {
//	    // d.Reason and d.RetryAfter describe the rejection
//	}
//
// # Thread Safety
//
// All Ledger methods are safe for concurrent use. The single mutex is
// deliberate: a check holds the lock for a handful of comparisons and
// increments, and the atomicity of check-and-increment across the
// shared windows is the property everything else depends on.
package limits
