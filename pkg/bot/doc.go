// Package bot contains the command parser and the request dispatcher,
// the pieces that turn channel chatter into answered questions.
//
// # Request Lifecycle
//
// The parser watches inbound PRIVMSG traffic for !ask, !code, and
// !help from the configured channels. Each recognized command becomes
// a Request and runs on its own goroutine through four stages:
// admission (the quota ledger's atomic check-and-reserve), prompt
// formatting, the completion call, and chunked delivery back to the
// originating channel. A denial or a completion failure short-circuits
// to exactly one user-facing line; the detail stays in operator logs,
// metrics, and the usage trail.
//
// Help is the exception on both ends: it is also accepted as a direct
// message, and it skips admission entirely so the usage text keeps
// working for users whose quota is exhausted.
//
// # Concurrency
//
// HandleMessage never blocks the connection's read loop. Concurrent
// requests synchronize only inside the quota ledger; the single
// blocking point per request is the completion call, bounded by the
// provider's timeout. Cancelling the handler context abandons
// in-flight completions and discards their output, and a panic in a
// request goroutine is recovered and answered with a generic error
// line rather than taking the process down.
//
// # Wiring
//
//	dispatcher, err := bot.New(bot.Options{
//		Config:    cfg,
//		Enforcer:  enforcer,
//		Formatter: promptManager,
//		Completer: provider,
//		Pipeline:  pipeline,
//		Transport: ircClient,
//	})
//	if err != nil {
//		return err
//	}
//	ircClient.SetHandler(dispatcher.Handler(ctx))
package bot
