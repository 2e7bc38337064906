package bot

import (
	"strings"
	"time"

	"mercator-hq/europa/pkg/irc"
)

// Command identifies a bot command. The set is closed: dispatch works
// from these constants only, so a typo can fail compilation instead of
// silently falling through to an unknown-command path at runtime.
type Command string

const (
	// CommandAsk is a general question, answered with the default
	// prompt template.
	CommandAsk Command = "ask"

	// CommandCode is a programming question, answered with the code
	// prompt template.
	CommandCode Command = "code"

	// CommandHelp returns the static usage text.
	CommandHelp Command = "help"
)

// Command syntax as it appears on the wire. The argument commands
// include the separating space in their prefix, so a bare "!ask" is
// ordinary chatter; help is an exact match.
const (
	askPrefix   = "!ask "
	codePrefix  = "!code "
	helpCommand = "!help"
)

// Request is one parsed command, the unit of work the dispatcher runs.
type Request struct {
	// Nick is the requesting nick.
	Nick string

	// Channel is where the reply goes: the originating channel, or the
	// requester's own nick when the command arrived as a direct
	// message.
	Channel string

	// Command is the recognized command.
	Command Command

	// Query is the argument text with surrounding whitespace trimmed,
	// empty for help.
	Query string

	// ReceivedAt is when the request arrived.
	ReceivedAt time.Time
}

// Parser extracts requests from inbound PRIVMSG traffic. Commands are
// accepted from the configured channels only; the lone exception is
// help, which is also honored as a direct message so users can check
// the syntax without broadcasting to a channel.
type Parser struct {
	channels map[string]struct{}
}

// NewParser creates a parser accepting commands from the given
// channels.
func NewParser(channels []string) *Parser {
	set := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		set[ch] = struct{}{}
	}
	return &Parser{channels: set}
}

// Parse extracts a request from one inbound message. The boolean is
// false for everything that is not a well-formed command from an
// accepted origin: ordinary chatter, unknown "!" prefixes, commands
// from unconfigured channels, and argument commands with an empty
// argument are all ignored rather than answered.
func (p *Parser) Parse(msg *irc.Message, botNick string, now time.Time) (*Request, bool) {
	if msg == nil || msg.Command != "PRIVMSG" || msg.Nick == "" {
		return nil, false
	}

	target := msg.Target()
	if target == "" {
		return nil, false
	}

	text := strings.TrimSpace(msg.Trailing)

	if target == botNick {
		// Direct messages carry help only; answering anything else
		// here would sidestep the channel allowlist.
		if text == helpCommand {
			return &Request{
				Nick:       msg.Nick,
				Channel:    msg.Nick,
				Command:    CommandHelp,
				ReceivedAt: now,
			}, true
		}
		return nil, false
	}

	if _, ok := p.channels[target]; !ok {
		return nil, false
	}

	switch {
	case text == helpCommand:
		return &Request{
			Nick:       msg.Nick,
			Channel:    target,
			Command:    CommandHelp,
			ReceivedAt: now,
		}, true

	case strings.HasPrefix(text, askPrefix):
		if query := strings.TrimSpace(text[len(askPrefix):]); query != "" {
			return &Request{
				Nick:       msg.Nick,
				Channel:    target,
				Command:    CommandAsk,
				Query:      query,
				ReceivedAt: now,
			}, true
		}

	case strings.HasPrefix(text, codePrefix):
		if query := strings.TrimSpace(text[len(codePrefix):]); query != "" {
			return &Request{
				Nick:       msg.Nick,
				Channel:    target,
				Command:    CommandCode,
				Query:      query,
				ReceivedAt: now,
			}, true
		}
	}

	return nil, false
}
