// Package metrics defines and registers the custom Prometheus metrics of the
// CRM API. It is the single source of truth for metric names, labels and
// help strings. HTTP request metrics come from echoprometheus and share the
// same namespace.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric exported by the service.
const Namespace = "crm"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "conflict", "invalid_credentials" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Pipeline metrics ──────────────────────────────────────────────────────────

// LeadsCreatedTotal counts newly created leads.
// Label:
//   - stage: the stage the lead was created in
var LeadsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "leads_created_total",
		Help:      "Total number of leads created, by initial stage.",
	},
	[]string{"stage"},
)

// LeadStageTransitionsTotal counts stage-only updates.
var LeadStageTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "lead_stage_transitions_total",
		Help:      "Total number of lead stage transitions.",
	},
	[]string{"from", "to"},
)

// TaskStatusTransitionsTotal counts status-only updates.
var TaskStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "task_status_transitions_total",
		Help:      "Total number of task status transitions.",
	},
	[]string{"from", "to"},
)

// EntitiesDeletedTotal counts deletions.
// Label:
//   - entity: "user", "customer", "lead", "task" or "interaction"
var EntitiesDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "entities_deleted_total",
		Help:      "Total number of deleted records, by entity.",
	},
	[]string{"entity"},
)

// ── Edge metrics ──────────────────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the per-IP limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)
