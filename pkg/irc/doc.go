// Package irc implements the IRC transport: a TLS client that
// registers, joins the configured channels, answers server PINGs, and
// feeds parsed messages to a handler.
//
// # Connection Lifecycle
//
// Run owns the connection for the life of the process. Each attempt
// dials (TLS unless disabled), performs the NICK/USER handshake, waits
// for the server welcome (001) within the registration timeout, and
// joins the configured channels with a pause between JOINs. A nick
// collision (433) retries with an underscore appended. When the
// connection drops, Run waits the reconnect delay and starts over;
// cancelling the context sends QUIT and returns.
//
// # Outbound Pacing
//
// Outbound PRIVMSG lines go through a paced writer: one line per
// MessageDelay, keeping the bot under server flood limits. The queue
// is bounded and tied to the current connection. Lines sent while
// disconnected, or stranded in the queue when the connection dies, are
// dropped — a reply to a dead session has no useful destination, and
// request handling must never block on the transport.
//
// # Replies
//
// SendReply addresses a multi-line answer to its channel, prefixing
// the first line with "nick: " and continuations with "nick: ..." so
// the answer reads as one unit in channel scroll. ReplyPrefixLen
// exposes the prefix length for chunk budget arithmetic.
//
// # Basic Usage
//
//	client, err := irc.New(irc.Options{
//	    Config:  &cfg.IRC,
//	    Handler: irc.HandlerFunc(func(msg *irc.Message) {
//	        if msg.Command == "PRIVMSG" {
//	            // hand off to the dispatcher
//	        }
//	    }),
//	    Metrics: ircMetrics,
//	    Logger:  logger,
//	})
//	if err != nil {
//	    return err
//	}
//	err = client.Run(ctx) // blocks until ctx is cancelled
//
// Handlers run on the read loop goroutine. Anything that blocks —
// admission, completion calls — belongs in a goroutine of the
// handler's own.
package irc
