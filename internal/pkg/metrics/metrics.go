// Package metrics defines and registers all custom Prometheus metrics for the
// cycle tracker. It is the single source of truth for metric names, labels,
// and help strings.
//
// Collectors are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cycletrack"

// Result label values shared by the counters below.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "exists", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Cycle log metrics ─────────────────────────────────────────────────────────

// CycleEntryOpsTotal counts cycle log mutations.
// Labels:
//   - op: "append", "edit", "remove" or "clear"
//   - result: "ok", "invalid_date", "out_of_range" or "error"
var CycleEntryOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycle_entry_ops_total",
		Help:      "Total number of cycle log mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// NotesSavedTotal counts note saves, including saves that clear the note.
var NotesSavedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_saved_total",
		Help:      "Total number of calendar notes saved.",
	},
)

// CalendarViewsTotal counts rendered calendar views.
var CalendarViewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_views_total",
		Help:      "Total number of calendar views built.",
	},
)
