// Package enforcement is the admission controller in front of the
// quota ledger.
//
// # Overview
//
// The enforcement package decides whether an incoming request may
// consume a completion and, when it may not, produces the one-line
// rejection relayed to the requester:
//
//   - Cooldown: wait N seconds between requests
//   - Global per-minute and per-day limits: shared capacity exhausted
//   - Per-user daily limit: the requester's own budget exhausted
//
// Denials are normal operation, not failures. The messages are stable
// strings so channel regulars recognize them, and they never carry
// internal detail.
//
// # Usage
//
//	enforcer := enforcement.NewEnforcer(ledger)
//
//	res := enforcer.Admit(req.Nick, time.Now())
//	if !res.Proceed {
//	    reply(req, res.UserMessage)
//	    return
//	}
//
// # Thread Safety
//
// The Enforcer is stateless apart from the ledger it wraps and is safe
// for concurrent use.
package enforcement
