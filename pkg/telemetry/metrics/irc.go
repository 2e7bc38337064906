package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// IRCMetrics tracks the health of the IRC connection.
//
// Metrics:
//   - europa_irc_connected: Connection status (1=registered, 0=down)
//   - europa_irc_reconnects_total: Reconnect attempts since start
//   - europa_irc_messages_total: Lines read from and written to the server
//   - europa_irc_send_queue_depth: Messages waiting on the paced writer
type IRCMetrics struct {
	connected      prometheus.Gauge
	reconnects     prometheus.Counter
	messages       *prometheus.CounterVec
	sendQueueDepth prometheus.Gauge
}

// NewIRCMetrics builds the IRC metric set and registers it.
func NewIRCMetrics(registry *prometheus.Registry) *IRCMetrics {
	im := &IRCMetrics{}

	im.connected = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "europa_irc_connected",
		Help: "IRC connection status (1=registered, 0=down)",
	})

	im.reconnects = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "europa_irc_reconnects_total",
		Help: "Total IRC reconnect attempts",
	})

	im.messages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "europa_irc_messages_total",
		Help: "Total IRC lines by direction (in, out)",
	}, []string{"direction"})

	im.sendQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "europa_irc_send_queue_depth",
		Help: "Messages waiting on the paced writer",
	})

	registry.MustRegister(im.connected, im.reconnects, im.messages, im.sendQueueDepth)
	return im
}

// UpdateConnected sets the connection gauge.
func (im *IRCMetrics) UpdateConnected(connected bool) {
	v := 0.0
	if connected {
		v = 1.0
	}
	im.connected.Set(v)
}

// RecordReconnect counts a reconnect attempt.
func (im *IRCMetrics) RecordReconnect() {
	im.reconnects.Inc()
}

// RecordMessage counts one line in the given direction ("in" or "out").
func (im *IRCMetrics) RecordMessage(direction string) {
	im.messages.WithLabelValues(direction).Inc()
}

// UpdateSendQueueDepth sets the outbound queue gauge.
func (im *IRCMetrics) UpdateSendQueueDepth(depth int) {
	im.sendQueueDepth.Set(float64(depth))
}
