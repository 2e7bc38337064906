package enforcement

import (
	"fmt"
	"time"

	"mercator-hq/europa/pkg/limits"
)

// Rejection messages are deliberately stable: users and channel logs
// learn them, and they must never leak limit internals beyond what the
// requester needs to act on.
const (
	msgGlobalMinute = "Rate limit exceeded. Please try again later."
	msgGlobalDay    = "Daily request budget exhausted. Please try again tomorrow."
	msgUserDay      = "You have reached your daily query limit. Try again tomorrow."
)

// Enforcer is the admission controller: it runs the ledger's atomic
// check and translates denials into user-facing rejection lines.
//
// Each Admit call performs exactly one ledger operation. A denial never
// mutates quota counters; an admission registers the reservation before
// Admit returns.
type Enforcer struct {
	ledger *limits.Ledger
}

// NewEnforcer creates an admission controller backed by the ledger.
func NewEnforcer(ledger *limits.Ledger) *Enforcer {
	return &Enforcer{ledger: ledger}
}

// Admit decides whether a request from nick at time now may proceed.
func (e *Enforcer) Admit(nick string, now time.Time) Result {
	d := e.ledger.CheckAndReserve(nick, now)
	if d.Allowed {
		return Result{Proceed: true, Decision: d}
	}
	return Result{
		UserMessage: rejectionMessage(d),
		Decision:    d,
	}
}

// rejectionMessage maps a denial to its one-line user message.
func rejectionMessage(d limits.Decision) string {
	switch d.Reason {
	case limits.DenyCooldown:
		return fmt.Sprintf("Rate limit: wait %d seconds before your next request.",
			ceilSeconds(d.RetryAfter))
	case limits.DenyGlobalMinute:
		return msgGlobalMinute
	case limits.DenyGlobalDay:
		return msgGlobalDay
	case limits.DenyUserDay:
		return msgUserDay
	default:
		// Unknown reasons should not exist; fail toward the mildest
		// stable message rather than leaking the raw reason.
		return msgGlobalMinute
	}
}

// ceilSeconds rounds a wait up to whole seconds, minimum 1, so the
// message never tells a user to wait zero seconds.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}
