// Package metrics defines and registers all custom Prometheus metrics for the
// LevelUp backend. It is the single source of truth for metric names, labels,
// and help strings. Registration happens via promauto at package init, before
// the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "levelup"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (all failure causes share one label value,
//     mirroring the single externally-visible credential error)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or "duplicate"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartUpdatesTotal counts wholesale cart replacements.
var CartUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_updates_total",
		Help:      "Total number of cart updates persisted.",
	},
)

// CartCacheTotal counts cart cache lookups.
// Label:
//   - result: "hit" or "miss"
var CartCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_cache_total",
		Help:      "Total number of cart cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Referral metrics ──────────────────────────────────────────────────────────

// ReferralsTotal counts referral events by outcome.
// Label:
//   - result: "awarded", "duplicate", "unknown_code", or "self_referral"
var ReferralsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "referrals_total",
		Help:      "Total number of referral events processed, by outcome.",
	},
	[]string{"result"},
)

// ReferralQueueDepth tracks the current number of referral events waiting in
// each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReferralQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "referral_queue_depth",
		Help:      "Current number of referral events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
