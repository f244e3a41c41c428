// Package metrics defines and registers all custom Prometheus metrics for the
// face access API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "faceaccess"

// ── Verification metrics ──────────────────────────────────────────────────────

// AttemptsTotal counts verification attempts by decision.
// Labels:
//   - outcome: "granted" or "denied"
//   - reason: "matched", "no_match", "no_face", "no_registry"
var AttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_total",
		Help:      "Total number of verification attempts, by outcome and reason.",
	},
	[]string{"outcome", "reason"},
)

// MatchDuration measures how long the registry scan and distance evaluation
// take for a single verification.
var MatchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_duration_seconds",
		Help:      "Duration of candidate matching per verification call.",
		Buckets:   prometheus.DefBuckets,
	},
)

// RegistrySize tracks the number of enrolled candidates seen by the most
// recent verification.
var RegistrySize = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "registry_size",
		Help:      "Number of identities with embeddings loaded at last verification.",
	},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsTotal counts enrollment calls by result.
// Label:
//   - result: "success", "no_face", "multiple_faces", "error"
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enrollment calls, by result.",
	},
	[]string{"result"},
)

// ── Actuator metrics ──────────────────────────────────────────────────────────

// UnlockQueueDepth tracks the current number of unlock commands waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var UnlockQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unlock_queue_depth",
		Help:      "Current number of unlock commands pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)

// UnlocksTotal counts unlock commands sent to the door gateway.
// Label:
//   - result: "ok" or "error"
var UnlocksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unlocks_total",
		Help:      "Total number of unlock commands dispatched, by result.",
	},
	[]string{"result"},
)
