// Package metrics exposes the adapter counters on the default Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesDispatched counts inbound messages handed to a route.
	MessagesDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fxw",
		Name:      "messages_dispatched_total",
		Help:      "FIX messages routed to a handler.",
	}, []string{"provider", "service", "msg_type"})

	// DecodeFailures counts handlers that failed and dropped their message.
	DecodeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fxw",
		Name:      "decode_failures_total",
		Help:      "FIX messages dropped because their handler failed.",
	}, []string{"provider", "service", "msg_type"})

	// EventsEmitted counts domain events raised to listeners.
	EventsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fxw",
		Name:      "events_emitted_total",
		Help:      "Domain events raised to listeners.",
	}, []string{"provider", "service", "event"})

	// EventsDropped counts events a buffered listener could not accept.
	EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fxw",
		Name:      "events_dropped_total",
		Help:      "Domain events dropped by a full buffered listener.",
	}, []string{"provider", "service", "event"})

	// SessionLoggedOn is 1 while the bound session is logged on.
	SessionLoggedOn = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fxw",
		Name:      "session_logged_on",
		Help:      "Whether the adapter's bound FIX session is logged on.",
	}, []string{"provider", "service"})
)

// Event names used as the "event" label.
const (
	EventLogon            = "logon"
	EventLogout           = "logout"
	EventTick             = "tick"
	EventMarketDataReject = "market_data_rejection"
	EventNew              = "new"
	EventCancellation     = "cancellation"
	EventExecution        = "execution"
	EventRejection        = "rejection"
	EventOrderRejection   = "order_rejection"
)
