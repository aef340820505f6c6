package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all CareerBridge metrics
const namespace = "careerbridge"

// Registry is the global Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// ApprovalDecisions counts moderation decisions by entity kind and outcome.
var ApprovalDecisions = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_decisions_total",
		Help:      "Moderation decisions by entity kind and decision",
	},
	[]string{"kind", "decision"},
)

// SideEffectFailures counts audit/notification side effects that failed
// after a durable primary write. Non-zero values mean the platform has
// reconciliation work to do.
var SideEffectFailures = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "side_effect_failures_total",
		Help:      "Best-effort side effects (audit, notification) that failed",
	},
	[]string{"effect"},
)

// PartialApprovals counts graduation approvals whose paired user update
// failed. Each one needs operator attention.
var PartialApprovals = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "partial_approvals_total",
		Help:      "Approvals whose linked user update failed",
	},
)

// InterestDeclarations counts declare attempts by outcome
// (created, duplicate, not_eligible).
var InterestDeclarations = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interest_declarations_total",
		Help:      "Interest declarations by outcome",
	},
	[]string{"outcome"},
)

// PendingOverSLA tracks how many submissions sat in a pending queue past
// the review SLA at the last sweep.
var PendingOverSLA = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_over_sla",
		Help:      "Pending approvals older than the review SLA",
	},
	[]string{"kind"},
)

// NotificationsSent counts dispatched notifications by channel.
var NotificationsSent = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Notifications dispatched by channel",
	},
	[]string{"channel"},
)
