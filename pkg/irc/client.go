package irc

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"mercator-hq/europa/pkg/config"
	securitytls "mercator-hq/europa/pkg/security/tls"
	"mercator-hq/europa/pkg/telemetry/logging"
)

const (
	// maxLineLength is the longest raw line sent to the server. The IRC
	// frame is 512 bytes including the CRLF terminator.
	maxLineLength = 510

	// sendQueueSize bounds the paced writer's backlog. A full queue
	// drops new lines rather than blocking request handling.
	sendQueueSize = 64

	// dialTimeout bounds the TCP connect.
	dialTimeout = 30 * time.Second

	// writeTimeout bounds a single line write so a wedged connection
	// fails instead of hanging the writer.
	writeTimeout = 30 * time.Second

	// quitTimeout bounds the goodbye on shutdown. A wedged server must
	// not hold up process exit.
	quitTimeout = 2 * time.Second

	// quitMessage is sent with QUIT on graceful shutdown.
	quitMessage = "shutting down"
)

// Server reply numerics the client reacts to.
const (
	// replyWelcome is RPL_WELCOME, the registration acknowledgement.
	replyWelcome = "001"

	// replyNickInUse is ERR_NICKNAMEINUSE.
	replyNickInUse = "433"
)

// Handler receives parsed inbound messages from the read loop. Calls
// are sequential; handlers that do real work should hand off to their
// own goroutines rather than block the connection.
type Handler interface {
	HandleMessage(msg *Message)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(msg *Message)

// HandleMessage calls f(msg).
func (f HandlerFunc) HandleMessage(msg *Message) { f(msg) }

// Metrics receives connection and traffic observations from the
// client. *metrics.IRCMetrics satisfies this.
type Metrics interface {
	UpdateConnected(connected bool)
	RecordReconnect()
	RecordMessage(direction string)
	UpdateSendQueueDepth(depth int)
}

// nopMetrics is used when no metrics sink is configured.
type nopMetrics struct{}

func (nopMetrics) UpdateConnected(bool)     {}
func (nopMetrics) RecordReconnect()         {}
func (nopMetrics) RecordMessage(string)     {}
func (nopMetrics) UpdateSendQueueDepth(int) {}

// DialFunc opens the transport connection. Tests substitute an
// in-memory pipe here.
type DialFunc func(ctx context.Context) (net.Conn, error)

// Options configures a Client.
type Options struct {
	// Config is the IRC section of the application configuration.
	Config *config.IRCConfig

	// Handler receives parsed inbound messages. Optional.
	Handler Handler

	// Metrics receives connection and traffic metrics. Optional.
	Metrics Metrics

	// Logger receives connection lifecycle events.
	Logger *logging.Logger

	// Dial overrides the network dial. Optional; the default dials TCP
	// and wraps it in TLS per the configuration.
	Dial DialFunc
}

// Client maintains the IRC connection: registration, channel joins,
// PING handling, a paced writer for outbound lines, and reconnection
// with a fixed delay. Inbound PRIVMSG and other messages are handed to
// the configured Handler.
type Client struct {
	config  *config.IRCConfig
	handler Handler
	metrics Metrics
	logger  *logging.Logger
	dial    DialFunc

	mu        sync.RWMutex
	cur       *connState
	nick      string
	connected bool
}

// connState bundles the per-connection resources: the socket, its read
// buffer, the paced send queue, and the teardown signal. A fresh
// connState is built for every connection attempt; queued lines never
// carry over into the next connection.
type connState struct {
	conn      net.Conn
	reader    *bufio.Reader
	queue     chan string
	done      chan struct{}
	writeMu   sync.Mutex
	closeOnce sync.Once
}

// close tears the connection down exactly once, releasing the writer
// and unblocking any pending read.
func (cs *connState) close() {
	cs.closeOnce.Do(func() {
		close(cs.done)
		_ = cs.conn.Close()
	})
}

// New creates a Client from the given options. Zero or missing pacing
// fields fall back to the package defaults so a partially populated
// configuration cannot produce a busy-looping client.
func New(opts Options) (*Client, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("irc config is required")
	}

	cfg := *opts.Config
	if cfg.Port <= 0 {
		cfg.Port = config.DefaultIRCPort
	}
	if cfg.Nick == "" {
		cfg.Nick = config.DefaultIRCNick
	}
	if cfg.Realname == "" {
		cfg.Realname = config.DefaultIRCRealname
	}
	if cfg.MessageDelay <= 0 {
		cfg.MessageDelay = config.DefaultIRCMessageDelay
	}
	if cfg.JoinDelay <= 0 {
		cfg.JoinDelay = config.DefaultIRCJoinDelay
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = config.DefaultIRCReconnectDelay
	}
	if cfg.RegistrationTimeout <= 0 {
		cfg.RegistrationTimeout = config.DefaultIRCRegistrationTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger, _ = logging.New(logging.Config{}) // zero config cannot fail
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	c := &Client{
		config:  &cfg,
		handler: opts.Handler,
		metrics: metrics,
		logger:  logger.Component("irc"),
		nick:    cfg.Nick,
	}

	c.dial = opts.Dial
	if c.dial == nil {
		c.dial = c.dialServer
	}

	return c, nil
}

// SetHandler installs the inbound message handler, replacing whatever
// Options carried. Wiring that needs the client to exist first (the
// dispatcher holds the client as its reply transport) installs its
// handler here before calling Run. Messages arriving with no handler
// installed are dropped.
func (c *Client) SetHandler(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// currentHandler returns the installed handler, nil when none.
func (c *Client) currentHandler() Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handler
}

// dialServer opens the TCP connection and, unless TLS is disabled,
// completes the TLS handshake before any IRC traffic flows.
func (c *Client) dialServer(ctx context.Context) (net.Conn, error) {
	tlsConfig, err := securitytls.ClientConfig(&c.config.TLS, c.config.Server)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(c.config.Server, strconv.Itoa(c.config.Port))
	dialer := &net.Dialer{Timeout: dialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	if tlsConfig == nil {
		// Plaintext, for local test servers only.
		return conn, nil
	}

	handshakeCtx := ctx
	if c.config.TLS.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		handshakeCtx, cancel = context.WithTimeout(ctx, c.config.TLS.HandshakeTimeout)
		defer cancel()
	}

	tlsConn := tls.Client(conn, tlsConfig)
	if err := tlsConn.HandshakeContext(handshakeCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake with %s: %w", addr, err)
	}

	return tlsConn, nil
}

// Run connects to the server and processes traffic until ctx is
// cancelled, reconnecting after a fixed delay whenever the connection
// is lost. On cancellation the client sends QUIT, closes the
// connection, and returns the context error.
func (c *Client) Run(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if attempt > 0 {
			c.metrics.RecordReconnect()
			c.logger.Info("reconnecting",
				"delay", c.config.ReconnectDelay.String(),
				"attempt", attempt,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.config.ReconnectDelay):
			}
		}

		err := c.runConnection(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.Warn("connection lost", "error", err)
	}
}

// runConnection handles one connection from dial to disconnect.
func (c *Client) runConnection(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}

	cs := &connState{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, 4096),
		queue:  make(chan string, sendQueueSize),
		done:   make(chan struct{}),
	}

	c.mu.Lock()
	c.cur = cs
	c.nick = c.config.Nick
	c.mu.Unlock()

	defer func() {
		cs.close()
		c.mu.Lock()
		c.cur = nil
		c.connected = false
		c.mu.Unlock()
		c.metrics.UpdateConnected(false)
	}()

	// Cancellation path: say goodbye and unblock the read loop. The
	// QUIT itself is bounded; closing the connection is what actually
	// ends the session.
	go func() {
		select {
		case <-ctx.Done():
			quitDone := make(chan struct{})
			go func() {
				_ = c.writeLine(cs, "QUIT :"+quitMessage)
				close(quitDone)
			}()
			select {
			case <-quitDone:
			case <-time.After(quitTimeout):
			}
			cs.close()
		case <-cs.done:
		}
	}()

	if err := c.register(cs); err != nil {
		return err
	}

	c.joinChannels(ctx, cs)

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
	c.metrics.UpdateConnected(true)

	c.logger.Info("connected",
		"server", c.config.Server,
		"nick", c.Nick(),
		"channels", strings.Join(c.config.Channels, ","),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop(cs)
	}()

	err = c.readLoop(cs)
	cs.close()
	wg.Wait()
	return err
}

// register performs the NICK/USER handshake and waits for the server
// welcome (001). A nick collision (433) retries with an underscore
// appended. The whole exchange is bounded by RegistrationTimeout.
func (c *Client) register(cs *connState) error {
	nick := c.config.Nick

	if err := c.writeLine(cs, "NICK "+nick); err != nil {
		return fmt.Errorf("send NICK: %w", err)
	}
	if err := c.writeLine(cs, fmt.Sprintf("USER %s 0 * :%s", c.config.Nick, c.config.Realname)); err != nil {
		return fmt.Errorf("send USER: %w", err)
	}

	_ = cs.conn.SetReadDeadline(time.Now().Add(c.config.RegistrationTimeout))
	defer func() { _ = cs.conn.SetReadDeadline(time.Time{}) }()

	for {
		line, err := c.readLine(cs)
		if err != nil {
			return fmt.Errorf("registration read: %w", err)
		}
		if line == "" {
			continue
		}

		msg, err := ParseMessage(line)
		if err != nil {
			c.logger.Debug("unparseable line during registration", "line", line)
			continue
		}

		switch msg.Command {
		case "PING":
			c.pong(cs, msg)

		case replyWelcome:
			// 001's first parameter is the nick the server actually
			// registered, authoritative over what we asked for.
			if len(msg.Params) > 0 {
				nick = msg.Params[0]
			}
			c.mu.Lock()
			c.nick = nick
			c.mu.Unlock()
			c.logger.Info("registered", "nick", nick)
			return nil

		case replyNickInUse:
			nick += "_"
			c.logger.Warn("nick in use, retrying", "nick", nick)
			if err := c.writeLine(cs, "NICK "+nick); err != nil {
				return fmt.Errorf("send NICK: %w", err)
			}

		case "ERROR":
			return fmt.Errorf("server rejected registration: %s", msg.Trailing)
		}
	}
}

// joinChannels joins the configured channels, pacing consecutive JOINs
// so the server's anti-flood logic stays quiet.
func (c *Client) joinChannels(ctx context.Context, cs *connState) {
	for i, channel := range c.config.Channels {
		if i > 0 {
			select {
			case <-ctx.Done():
				return
			case <-cs.done:
				return
			case <-time.After(c.config.JoinDelay):
			}
		}

		if err := c.writeLine(cs, "JOIN "+channel); err != nil {
			c.logger.Warn("failed to join channel", "channel", channel, "error", err)
			return
		}
		c.logger.Info("joining channel", "channel", channel)
	}
}

// readLoop processes inbound lines until the connection fails. PINGs
// are answered inline, ERROR terminates the connection, and everything
// else goes to the handler.
func (c *Client) readLoop(cs *connState) error {
	for {
		line, err := c.readLine(cs)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if line == "" {
			continue
		}

		msg, err := ParseMessage(line)
		if err != nil {
			c.logger.Debug("unparseable line", "line", line)
			continue
		}

		switch msg.Command {
		case "PING":
			c.pong(cs, msg)

		case "ERROR":
			return fmt.Errorf("server error: %s", msg.Trailing)

		default:
			if h := c.currentHandler(); h != nil {
				h.HandleMessage(msg)
			}
		}
	}
}

// readLine reads one CRLF-terminated line, without the terminator.
func (c *Client) readLine(cs *connState) (string, error) {
	line, err := cs.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	c.metrics.RecordMessage("in")
	return strings.TrimRight(line, "\r\n"), nil
}

// pong answers a server PING, echoing its token.
func (c *Client) pong(cs *connState, msg *Message) {
	token := msg.Trailing
	if token == "" && len(msg.Params) > 0 {
		token = msg.Params[0]
	}
	if err := c.writeLine(cs, "PONG :"+token); err != nil {
		c.logger.Warn("failed to answer PING", "error", err)
	}
}

// writeLoop drains the send queue, pacing consecutive lines by
// MessageDelay. A failed write closes the connection so the read loop
// notices and Run reconnects.
func (c *Client) writeLoop(cs *connState) {
	for {
		select {
		case <-cs.done:
			c.discardQueued(cs)
			return

		case line := <-cs.queue:
			c.metrics.UpdateSendQueueDepth(len(cs.queue))

			if err := c.writeLine(cs, line); err != nil {
				c.logger.Warn("write failed, closing connection", "error", err)
				cs.close()
				c.discardQueued(cs)
				return
			}

			select {
			case <-cs.done:
				c.discardQueued(cs)
				return
			case <-time.After(c.config.MessageDelay):
			}
		}
	}
}

// discardQueued drops whatever is left in the queue at teardown.
// Replies to a dead session have nowhere useful to go, and stale
// replies delivered after a reconnect would confuse the channel.
func (c *Client) discardQueued(cs *connState) {
	dropped := 0
	for {
		select {
		case <-cs.queue:
			dropped++
		default:
			if dropped > 0 {
				c.logger.Debug("dropped queued lines on disconnect", "count", dropped)
			}
			c.metrics.UpdateSendQueueDepth(0)
			return
		}
	}
}

// writeLine writes one raw line, bounding the write so a wedged
// connection fails instead of blocking forever. Lines longer than the
// IRC frame allows are truncated.
func (c *Client) writeLine(cs *connState, line string) error {
	line = truncateLine(line)

	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()

	_ = cs.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	defer func() { _ = cs.conn.SetWriteDeadline(time.Time{}) }()

	if _, err := cs.conn.Write([]byte(line + "\r\n")); err != nil {
		return err
	}

	c.metrics.RecordMessage("out")
	return nil
}

// Privmsg enqueues one PRIVMSG line for the paced writer. When the
// client has no live connection the line is dropped rather than
// blocking the caller.
func (c *Client) Privmsg(target, text string) {
	c.enqueue("PRIVMSG " + target + " :" + text)
}

// SendReply sends a chunked reply to target, prefixing the first line
// with "nick: " and continuations with "nick: ..." so readers can
// follow a multi-line answer in channel scroll.
func (c *Client) SendReply(target string, lines []string) {
	nick := c.Nick()
	for i, line := range lines {
		if i == 0 {
			c.Privmsg(target, nick+": "+line)
		} else {
			c.Privmsg(target, nick+": ..."+line)
		}
	}
}

// enqueue hands a raw line to the paced writer, dropping it when there
// is no live connection or the queue is full.
func (c *Client) enqueue(line string) {
	c.mu.RLock()
	cs := c.cur
	c.mu.RUnlock()

	if cs == nil {
		c.logger.Debug("not connected, dropping outbound line")
		return
	}

	select {
	case cs.queue <- line:
		c.metrics.UpdateSendQueueDepth(len(cs.queue))
	case <-cs.done:
		c.logger.Debug("connection closing, dropping outbound line")
	default:
		c.logger.Warn("send queue full, dropping outbound line",
			"capacity", cap(cs.queue),
		)
	}
}

// Nick returns the nick currently registered with the server. It can
// differ from the configured nick after a collision fallback.
func (c *Client) Nick() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nick
}

// ReplyPrefixLen returns the length of the "nick: " reply prefix.
// Chunking subtracts this from the line budget so prefixed lines stay
// inside the frame.
func (c *Client) ReplyPrefixLen() int {
	return len(c.Nick()) + len(": ")
}

// Connected reports whether the client is registered and has joined
// its channels. Readiness probes use this.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// truncateLine caps a raw line at the IRC frame limit, backing off to
// the previous rune boundary so a multi-byte character is never split.
func truncateLine(line string) string {
	if len(line) <= maxLineLength {
		return line
	}

	cut := maxLineLength
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return line[:cut]
}
