// Package metrics exposes the relay's prometheus collectors. Pending
// confirmations are tracked here so the timer registry is observable from
// the outside rather than an implicit pile of callbacks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectedClients tracks currently open websocket connections.
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatrelay_connected_clients",
		Help: "Number of currently open client connections.",
	})

	// MessagesTotal counts messages appended to the log since start.
	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatrelay_messages_total",
		Help: "Total messages created.",
	})

	// PendingConfirmations tracks armed delivery-confirmation timers.
	PendingConfirmations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatrelay_pending_confirmations",
		Help: "Delivery-confirmation timers currently pending.",
	})

	// UnknownEventsTotal counts inbound envelopes with an unrecognized
	// event name.
	UnknownEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatrelay_unknown_events_total",
		Help: "Inbound events dropped because the event name is unknown.",
	})
)
