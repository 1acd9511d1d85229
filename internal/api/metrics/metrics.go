// Package metrics defines all custom Prometheus metrics for the budget
// tracker API. It is the single source of truth for metric names, labels,
// and help strings; everything registers with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "budget_tracker"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// SignupsTotal counts completed registrations.
// Label:
//   - role: requested role ("USER" or "ADMIN")
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful account registrations, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "not_found", "invalid_credentials", "banned", "pending_approval"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts bearer token validations at the auth gate.
// Label:
//   - result: "valid" or "invalid" (signature failure and expiry are not distinguished)
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations at the auth middleware.",
	},
	[]string{"result"},
)

// ── Admin metrics ────────────────────────────────────────────────────────────

// AdminActionsTotal counts privileged account mutations.
// Label:
//   - action: "ban", "unban", "approve_admin", "revoke_admin"
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of admin account mutations, by action.",
	},
	[]string{"action"},
)

// AuditQueueDepth tracks the number of audit entries waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Forum metrics ────────────────────────────────────────────────────────────

// ForumPostsCreatedTotal counts newly created forum posts.
var ForumPostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forum_posts_created_total",
		Help:      "Total number of forum posts created.",
	},
)

// ── Forecast metrics ─────────────────────────────────────────────────────────

// ForecastCacheTotal counts forecast cache lookups.
// Label:
//   - result: "hit" or "miss"
var ForecastCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forecast_cache_total",
		Help:      "Total number of forecast cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
