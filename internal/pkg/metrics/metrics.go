// Package metrics defines the Prometheus metrics for the medapp client and
// the sandbox backend.
//
// Client metrics live in ClientRegistry and leave the process through Export,
// since a CLI invocation is too short-lived to be scraped. Sandbox metrics
// register with the default registry and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "medapp"

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientRegistry holds the client metrics only, without Go runtime or process
// collectors.
var ClientRegistry = prometheus.NewRegistry()

var client = promauto.With(ClientRegistry)

// APIRequestsTotal counts outbound backend requests.
// Labels:
//   - method: HTTP method
//   - endpoint: the path template (e.g. "/consultas"), never the raw URL
//   - code: response status code, or "error" when no response arrived
var APIRequestsTotal = client.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of requests sent to the booking backend.",
	},
	[]string{"method", "endpoint", "code"},
)

// APIRequestDuration measures round-trip latency of backend requests.
var APIRequestDuration = client.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of requests sent to the booking backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "endpoint"},
)

// SessionEventsTotal counts session transitions.
// Label:
//   - event: "sign_in", "sign_out", "restore", "restore_cleared"
var SessionEventsTotal = client.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session transitions, by event.",
	},
	[]string{"event"},
)

// ── Sandbox metrics ───────────────────────────────────────────────────────────

// SandboxLoginsTotal counts login attempts against the sandbox.
// Label:
//   - result: "success" or "failure"
var SandboxLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "logins_total",
		Help:      "Total number of sandbox login attempts, by result.",
	},
	[]string{"result"},
)

// SandboxAppointmentsTotal counts appointment writes in the sandbox.
// Label:
//   - status: the backend status written (e.g. "AGENDADA", "CONFIRMADA")
var SandboxAppointmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "appointment_writes_total",
		Help:      "Total number of appointments created or updated in the sandbox, by status.",
	},
	[]string{"status"},
)
