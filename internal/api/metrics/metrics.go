// Package metrics defines and registers the custom Prometheus metrics for
// the election service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "election"

// CodesIssuedTotal counts one-time codes generated and handed to the notifier.
var CodesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "codes_issued_total",
		Help:      "Total number of verification codes issued.",
	},
)

// CodeMismatchesTotal counts failed one-time-code comparisons.
var CodeMismatchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "code_mismatches_total",
		Help:      "Total number of entered codes that did not match the challenge.",
	},
)

// DeliveryFailuresTotal counts code emails the SMTP transport failed to send.
var DeliveryFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_failures_total",
		Help:      "Total number of failed verification-code deliveries.",
	},
)

// BallotsCastTotal counts committed ballots.
// Label:
//   - source: "voter" (session flow) or "admin" (manual entry)
var BallotsCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ballots_cast_total",
		Help:      "Total number of ballots committed, by entry source.",
	},
	[]string{"source"},
)

// BallotsRejectedTotal counts ballot submissions refused before commit.
// Label:
//   - reason: "already_voted", "voting_closed", "too_many_selections", "no_selection"
var BallotsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ballots_rejected_total",
		Help:      "Total number of ballot submissions rejected, by reason.",
	},
	[]string{"reason"},
)
