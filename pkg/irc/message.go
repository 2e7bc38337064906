package irc

import (
	"fmt"
	"strings"
)

// Message is a single parsed IRC protocol line.
type Message struct {
	// Raw is the line as received, without the trailing CRLF.
	Raw string

	// Prefix is the message source without the leading colon:
	// "nick!user@host" for user messages, a server name otherwise.
	// Empty when the line carries no prefix.
	Prefix string

	// Nick is the nickname portion of the prefix. For server-originated
	// messages this is the server name.
	Nick string

	// Command is the IRC verb or numeric ("PRIVMSG", "PING", "001").
	// Verbs are normalized to upper case.
	Command string

	// Params are the middle parameters, excluding the trailing one.
	Params []string

	// Trailing is the parameter after " :" — the message text for
	// PRIVMSG, the token for most PINGs.
	Trailing string
}

// ParseMessage parses one IRC line (RFC 1459 framing) into a Message.
// The caller strips the CRLF terminator before calling.
func ParseMessage(raw string) (*Message, error) {
	line := strings.TrimRight(raw, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil, fmt.Errorf("empty message")
	}

	msg := &Message{Raw: line}
	rest := line

	if strings.HasPrefix(rest, ":") {
		idx := strings.Index(rest, " ")
		if idx < 0 {
			return nil, fmt.Errorf("message %q has a prefix but no command", line)
		}
		msg.Prefix = rest[1:idx]
		msg.Nick = nickFromPrefix(msg.Prefix)
		rest = rest[idx+1:]
	}

	// Everything after " :" is a single trailing parameter, colons and
	// spaces included.
	if idx := strings.Index(rest, " :"); idx >= 0 {
		msg.Trailing = rest[idx+2:]
		rest = rest[:idx]
	} else if strings.HasPrefix(rest, ":") {
		msg.Trailing = rest[1:]
		rest = ""
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, fmt.Errorf("message %q has no command", line)
	}

	msg.Command = strings.ToUpper(fields[0])
	if len(fields) > 1 {
		msg.Params = fields[1:]
	}

	return msg, nil
}

// Target returns the destination of a PRIVMSG or NOTICE: a channel name
// or, for direct messages, the recipient's nick. Empty for messages
// without parameters.
func (m *Message) Target() string {
	if len(m.Params) == 0 {
		return ""
	}
	return m.Params[0]
}

// nickFromPrefix extracts the nickname from a "nick!user@host" prefix.
// Server prefixes have no "!" and are returned whole.
func nickFromPrefix(prefix string) string {
	if idx := strings.Index(prefix, "!"); idx >= 0 {
		return prefix[:idx]
	}
	return prefix
}
