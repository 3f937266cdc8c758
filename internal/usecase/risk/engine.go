package usecase

import (
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

// ScoringConfig carries the tunable thresholds. Zero value is never used
// directly; DefaultScoringConfig supplies production defaults.
type ScoringConfig struct {
	HighValueThreshold float64
	VelocityWindow     time.Duration
	VelocityMaxCount   int
	NightHourFrom      int
	NightHourTo        int
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		HighValueThreshold: 10000,
		VelocityWindow:     time.Hour,
		VelocityMaxCount:   5,
		NightHourFrom:      2,
		NightHourTo:        5,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// riskLevelFor maps a score onto the documented thresholds; boundaries
// belong to the higher level (0.5 is HIGH, 0.3 is MEDIUM).
func riskLevelFor(score float64) domain.RiskLevel {
	switch {
	case score >= 0.7:
		return domain.RiskCritical
	case score >= 0.5:
		return domain.RiskHigh
	case score >= 0.3:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func recommendedActionFor(score float64) domain.RecommendedAction {
	switch {
	case score >= 0.85:
		return domain.ActionDecline
	case score >= 0.7:
		return domain.ActionRequireVerification
	case score >= 0.5:
		return domain.ActionReview
	default:
		return domain.ActionAllow
	}
}

// ScoreTransaction computes the per-transaction fraud assessment from
// the buyer's history snapshot. It is a pure function: same snapshot,
// same result. An empty history scores neutrally through the
// first-transaction flag, never through a divide-by-zero.
func ScoreTransaction(txn *domain.Transaction, history []*domain.Transaction, cfg ScoringConfig) domain.RiskAssessment {
	avgAmount := txn.Amount
	if len(history) > 0 {
		var sum float64
		for _, prior := range history {
			sum += prior.Amount
		}
		avgAmount = sum / float64(len(history))
	}

	velocityCutoff := txn.CreatedAt.Add(-cfg.VelocityWindow)
	var recentCount int
	for _, prior := range history {
		if prior.CreatedAt.After(velocityCutoff) {
			recentCount++
		}
	}

	hour := txn.CreatedAt.Hour()

	assessment := domain.RiskAssessment{
		TransactionID:      txn.ID,
		UserID:             txn.BuyerID,
		IsFirstTransaction: len(history) == 0,
		UnusualAmount:      txn.Amount > 3*avgAmount,
		HighValue:          txn.Amount > cfg.HighValueThreshold,
		VelocityAnomaly:    recentCount > cfg.VelocityMaxCount,
		TimingAnomaly:      hour >= cfg.NightHourFrom && hour < cfg.NightHourTo,
	}

	// 0.3 base is the irreducible uncertainty of any transaction.
	score := 0.3
	if assessment.IsFirstTransaction {
		score += 0.1
	}
	if assessment.UnusualAmount {
		score += 0.2
	}
	if assessment.HighValue {
		score += 0.1
	}
	if assessment.VelocityAnomaly {
		score += 0.2
	}
	if assessment.TimingAnomaly {
		score += 0.1
	}
	assessment.RiskScore = clamp01(score)
	assessment.RiskLevel = riskLevelFor(assessment.RiskScore)
	assessment.RecommendedAction = recommendedActionFor(assessment.RiskScore)
	return assessment
}

// ProfileFacts is the persisted-fact snapshot a profile recomputation
// reads. Recomputing from facts instead of patching the prior profile
// keeps the operation idempotent under redundant triggers.
type ProfileFacts struct {
	TotalTransactions  int64
	FailedTransactions int64
	HighRiskCount      int64
	DisputeCount       int64
	KYB                domain.KYBResult
}

// ScoreUserProfile aggregates the four weighted components. All
// components express risk in [0,1]; higher is worse.
func ScoreUserProfile(userID string, facts ProfileFacts) domain.RiskProfile {
	payment := 0.3
	if facts.TotalTransactions > 0 {
		failedRatio := float64(facts.FailedTransactions) / float64(facts.TotalTransactions)
		payment = clamp01(2 * failedRatio)
	}

	transaction := clamp01(0.15 * float64(facts.HighRiskCount))

	var identity float64
	switch facts.KYB.Status {
	case domain.KYBVerified:
		identity = clamp01(facts.KYB.RiskScore)
	case domain.KYBRejected:
		identity = 1.0
	default:
		identity = 0.5
	}

	behavioral := clamp01(0.2 * float64(facts.DisputeCount))

	overall := clamp01(0.3*payment + 0.3*transaction + 0.2*identity + 0.2*behavioral)

	return domain.RiskProfile{
		UserID:           userID,
		OverallRiskScore: overall,
		OverallRiskLevel: riskLevelFor(overall),
		PaymentScore:     payment,
		TransactionScore: transaction,
		IdentityScore:    identity,
		BehavioralScore:  behavioral,
	}
}
