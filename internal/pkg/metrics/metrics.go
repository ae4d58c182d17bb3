// Package metrics defines and registers the custom Prometheus metrics for the
// gradebook portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on package init via promauto;
// HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gradebook"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// Gate outcomes, used as the "outcome" label of GateDecisionsTotal.
const (
	OutcomePublic            = "public"
	OutcomeAllowed           = "allowed"
	OutcomeMissingCredential = "missing_credential"
	OutcomeInvalidCredential = "invalid_credential"
	OutcomeExpiredCredential = "expired_credential"
	OutcomeRoleMismatch      = "role_mismatch"
	OutcomeMissingCourse     = "missing_course"
)

// GateDecisionsTotal counts access-control decisions.
// Label:
//   - outcome: one of the Outcome* constants
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access-control gate decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionChecksTotal counts GET /api/session calls.
// Label:
//   - result: "authenticated", "anonymous" (no cookie) or "invalid"
var SessionChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_checks_total",
		Help:      "Total number of session status queries, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts POST /api/logout calls.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// ── Course metrics ────────────────────────────────────────────────────────────

// CourseCacheTotal counts membership cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var CourseCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "course_cache_total",
		Help:      "Total number of course membership cache lookups, by result.",
	},
	[]string{"result"},
)

// CourseSelectionsTotal counts successful course switches.
var CourseSelectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "course_selections_total",
		Help:      "Total number of credentials re-issued with a selected course.",
	},
)
