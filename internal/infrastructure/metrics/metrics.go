package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EscrowMetrics holds the service instrumentation.
type EscrowMetrics struct {
	EscrowsCreatedTotal       prometheus.CounterVec
	EscrowsCreatedAmountTotal prometheus.CounterVec
	EscrowsHeldCount          prometheus.GaugeVec

	EscrowsReleasedTotal       prometheus.CounterVec
	EscrowsReleasedAmountTotal prometheus.CounterVec

	EscrowsCancelledTotal prometheus.CounterVec

	ConditionsSatisfiedTotal prometheus.CounterVec
	ReleaseDuration          prometheus.HistogramVec

	AssessmentsTotal prometheus.CounterVec
	FlagsRaisedTotal prometheus.CounterVec

	DisputesOpenedTotal   prometheus.CounterVec
	DisputesResolvedTotal prometheus.CounterVec

	AppealsDecidedTotal prometheus.CounterVec

	EscrowErrorsTotal prometheus.CounterVec
}

func NewEscrowMetrics() *EscrowMetrics {
	return &EscrowMetrics{
		EscrowsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_created_total",
				Help: "Total escrow instances created",
			},
			[]string{"currency"},
		),
		EscrowsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_created_amount_total",
				Help: "Total amount placed into escrow",
			},
			[]string{"currency"},
		),
		EscrowsHeldCount: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "escrows_held_count",
				Help: "Escrows currently holding funds (HELD/RELEASING)",
			},
			[]string{"currency"},
		),
		EscrowsReleasedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_released_total",
				Help: "Total escrows released to sellers",
			},
			[]string{"currency"},
		),
		EscrowsReleasedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_released_amount_total",
				Help: "Total amount released from escrow",
			},
			[]string{"currency"},
		),
		EscrowsCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_cancelled_total",
				Help: "Total escrows cancelled before release",
			},
			[]string{"currency"},
		),
		ConditionsSatisfiedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_conditions_satisfied_total",
				Help: "Release conditions satisfied, by type",
			},
			[]string{"condition_type"},
		),
		ReleaseDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "escrow_release_duration_seconds",
				Help:    "Time from escrow creation to funds release",
				Buckets: prometheus.ExponentialBuckets(60, 2, 14), // 1m .. ~5d
			},
			[]string{"currency"},
		),
		AssessmentsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_assessments_total",
				Help: "Transaction risk assessments, by resulting level",
			},
			[]string{"risk_level", "recommended_action"},
		),
		FlagsRaisedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_flags_raised_total",
				Help: "Risk flags raised against users",
			},
			[]string{"severity", "raised_by"},
		),
		DisputesOpenedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_opened_total",
				Help: "Disputes opened against escrows",
			},
			[]string{"currency"},
		),
		DisputesResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_resolved_total",
				Help: "Disputes resolved, by resolution",
			},
			[]string{"resolution"},
		),
		AppealsDecidedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appeals_decided_total",
				Help: "Appeal decisions, by outcome and target type",
			},
			[]string{"decision", "target_type"},
		),
		EscrowErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_errors_total",
				Help: "Errors during escrow operations",
			},
			[]string{"operation", "error_kind"},
		),
	}
}

func (m *EscrowMetrics) RecordEscrowCreated(currency string, amount float64) {
	m.EscrowsCreatedTotal.WithLabelValues(currency).Inc()
	m.EscrowsCreatedAmountTotal.WithLabelValues(currency).Add(amount)
}

func (m *EscrowMetrics) RecordFundsHeld(currency string) {
	m.EscrowsHeldCount.WithLabelValues(currency).Inc()
}

func (m *EscrowMetrics) RecordEscrowReleased(currency string, amount, durationSeconds float64) {
	m.EscrowsReleasedTotal.WithLabelValues(currency).Inc()
	m.EscrowsReleasedAmountTotal.WithLabelValues(currency).Add(amount)
	m.EscrowsHeldCount.WithLabelValues(currency).Dec()
	m.ReleaseDuration.WithLabelValues(currency).Observe(durationSeconds)
}

func (m *EscrowMetrics) RecordEscrowCancelled(currency string, wasHeld bool) {
	m.EscrowsCancelledTotal.WithLabelValues(currency).Inc()
	if wasHeld {
		m.EscrowsHeldCount.WithLabelValues(currency).Dec()
	}
}

func (m *EscrowMetrics) RecordConditionSatisfied(conditionType string) {
	m.ConditionsSatisfiedTotal.WithLabelValues(conditionType).Inc()
}

func (m *EscrowMetrics) RecordAssessment(riskLevel, action string) {
	m.AssessmentsTotal.WithLabelValues(riskLevel, action).Inc()
}

func (m *EscrowMetrics) RecordFlagRaised(severity, raisedBy string) {
	m.FlagsRaisedTotal.WithLabelValues(severity, raisedBy).Inc()
}

func (m *EscrowMetrics) RecordDisputeOpened(currency string) {
	m.DisputesOpenedTotal.WithLabelValues(currency).Inc()
}

func (m *EscrowMetrics) RecordDisputeResolved(resolution string) {
	m.DisputesResolvedTotal.WithLabelValues(resolution).Inc()
}

func (m *EscrowMetrics) RecordAppealDecided(decision, targetType string) {
	m.AppealsDecidedTotal.WithLabelValues(decision, targetType).Inc()
}

func (m *EscrowMetrics) RecordError(operation, errorKind string) {
	m.EscrowErrorsTotal.WithLabelValues(operation, errorKind).Inc()
}
