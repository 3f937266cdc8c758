package usecase

import (
	"testing"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

func txnAt(id string, amount float64, createdAt time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:        id,
		BuyerID:   "buyer-1",
		SellerID:  "seller-1",
		Amount:    amount,
		Currency:  "USD",
		Status:    domain.TxnCompleted,
		CreatedAt: createdAt,
	}
}

// noon keeps the timing component out of tests that are not about it.
var noon = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestScoreTransaction_FirstTransaction(t *testing.T) {
	txn := txnAt("txn-1", 500, noon)

	assessment := ScoreTransaction(txn, nil, DefaultScoringConfig())

	if !assessment.IsFirstTransaction {
		t.Fatalf("expected first-transaction flag")
	}
	if assessment.UnusualAmount {
		t.Fatalf("empty history must not mark the amount unusual")
	}
	if assessment.RiskScore != 0.4 {
		t.Fatalf("expected score 0.4, got %v", assessment.RiskScore)
	}
	if assessment.RiskLevel != domain.RiskMedium {
		t.Fatalf("expected MEDIUM, got %s", assessment.RiskLevel)
	}
	if assessment.RecommendedAction != domain.ActionAllow {
		t.Fatalf("expected ALLOW, got %s", assessment.RecommendedAction)
	}
}

func TestScoreTransaction_BaselineWithHistory(t *testing.T) {
	history := []*domain.Transaction{
		txnAt("txn-old-1", 450, noon.Add(-48*time.Hour)),
		txnAt("txn-old-2", 550, noon.Add(-72*time.Hour)),
	}
	txn := txnAt("txn-2", 500, noon)

	assessment := ScoreTransaction(txn, history, DefaultScoringConfig())

	if assessment.IsFirstTransaction || assessment.UnusualAmount || assessment.HighValue ||
		assessment.VelocityAnomaly || assessment.TimingAnomaly {
		t.Fatalf("expected no component flags, got %+v", assessment)
	}
	if assessment.RiskScore != 0.3 {
		t.Fatalf("expected base score 0.3, got %v", assessment.RiskScore)
	}
	if assessment.RiskLevel != domain.RiskMedium {
		t.Fatalf("base score sits on the MEDIUM boundary, got %s", assessment.RiskLevel)
	}
}

func TestScoreTransaction_UnusualAmountBoundary(t *testing.T) {
	// Average is 1000; 10000 is unusual but not above the high-value
	// threshold, landing exactly on the HIGH/REVIEW boundary.
	history := []*domain.Transaction{
		txnAt("txn-old-1", 1000, noon.Add(-48*time.Hour)),
		txnAt("txn-old-2", 1000, noon.Add(-72*time.Hour)),
	}
	txn := txnAt("txn-3", 10000, noon)

	assessment := ScoreTransaction(txn, history, DefaultScoringConfig())

	if !assessment.UnusualAmount {
		t.Fatalf("10000 against average 1000 must be unusual")
	}
	if assessment.HighValue {
		t.Fatalf("10000 does not exceed the 10000 threshold")
	}
	if assessment.RiskScore != 0.5 {
		t.Fatalf("expected score 0.5, got %v", assessment.RiskScore)
	}
	if assessment.RiskLevel != domain.RiskHigh {
		t.Fatalf("0.5 belongs to HIGH, got %s", assessment.RiskLevel)
	}
	if assessment.RecommendedAction != domain.ActionReview {
		t.Fatalf("expected REVIEW, got %s", assessment.RecommendedAction)
	}
}

func TestScoreTransaction_VelocityAndHighValue(t *testing.T) {
	history := make([]*domain.Transaction, 0, 6)
	for i := 0; i < 6; i++ {
		history = append(history, txnAt("txn-recent", 1000, noon.Add(-time.Duration(i+1)*time.Minute)))
	}
	txn := txnAt("txn-4", 15000, noon)

	assessment := ScoreTransaction(txn, history, DefaultScoringConfig())

	if !assessment.UnusualAmount || !assessment.HighValue || !assessment.VelocityAnomaly {
		t.Fatalf("expected unusual+high-value+velocity, got %+v", assessment)
	}
	if assessment.RiskScore != 0.8 {
		t.Fatalf("expected score 0.8, got %v", assessment.RiskScore)
	}
	if assessment.RiskLevel != domain.RiskCritical {
		t.Fatalf("expected CRITICAL, got %s", assessment.RiskLevel)
	}
	if assessment.RecommendedAction != domain.ActionRequireVerification {
		t.Fatalf("expected REQUIRE_VERIFICATION, got %s", assessment.RecommendedAction)
	}
}

func TestScoreTransaction_TimingAnomaly(t *testing.T) {
	night := time.Date(2026, 3, 10, 3, 30, 0, 0, time.UTC)
	history := []*domain.Transaction{
		txnAt("txn-old", 500, night.Add(-48*time.Hour)),
	}
	txn := txnAt("txn-5", 500, night)

	assessment := ScoreTransaction(txn, history, DefaultScoringConfig())

	if !assessment.TimingAnomaly {
		t.Fatalf("03:30 falls inside the night window")
	}
	if assessment.RiskScore != 0.4 {
		t.Fatalf("expected score 0.4, got %v", assessment.RiskScore)
	}
}

func TestScoreTransaction_AllFlagsClamped(t *testing.T) {
	night := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	txn := txnAt("txn-6", 50000, night)

	// First transaction cannot also have history anomalies, so feed a
	// synthetic history dense enough to trip velocity and average, then
	// check clamping with the remaining four flags plus velocity.
	history := make([]*domain.Transaction, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, txnAt("txn-burst", 100, night.Add(-time.Duration(i+1)*time.Minute)))
	}

	assessment := ScoreTransaction(txn, history, DefaultScoringConfig())

	if assessment.RiskScore < 0.85 {
		t.Fatalf("expected a DECLINE-grade score, got %v", assessment.RiskScore)
	}
	if assessment.RiskScore > 1 {
		t.Fatalf("score must be clamped to 1, got %v", assessment.RiskScore)
	}
	if assessment.RecommendedAction != domain.ActionDecline {
		t.Fatalf("expected DECLINE, got %s", assessment.RecommendedAction)
	}
}

func TestScoreTransaction_Deterministic(t *testing.T) {
	history := []*domain.Transaction{
		txnAt("txn-old", 900, noon.Add(-24*time.Hour)),
	}
	txn := txnAt("txn-7", 1000, noon)

	first := ScoreTransaction(txn, history, DefaultScoringConfig())
	second := ScoreTransaction(txn, history, DefaultScoringConfig())

	if first != second {
		t.Fatalf("same snapshot produced different assessments:\n%+v\n%+v", first, second)
	}
}

func TestScoreUserProfile_NewUser(t *testing.T) {
	profile := ScoreUserProfile("user-1", ProfileFacts{
		KYB: domain.KYBResult{Status: domain.KYBPending},
	})

	if profile.PaymentScore != 0.3 {
		t.Fatalf("no transactions must score payment neutrally, got %v", profile.PaymentScore)
	}
	if profile.IdentityScore != 0.5 {
		t.Fatalf("pending KYB must score identity 0.5, got %v", profile.IdentityScore)
	}
	if profile.TransactionScore != 0 || profile.BehavioralScore != 0 {
		t.Fatalf("clean record must contribute zero, got %+v", profile)
	}
	// 0.3*0.3 + 0.2*0.5 = 0.19
	if profile.OverallRiskScore != 0.19 {
		t.Fatalf("expected overall 0.19, got %v", profile.OverallRiskScore)
	}
	if profile.OverallRiskLevel != domain.RiskLow {
		t.Fatalf("expected LOW, got %s", profile.OverallRiskLevel)
	}
}

func TestScoreUserProfile_RejectedKYBAndDisputes(t *testing.T) {
	profile := ScoreUserProfile("user-2", ProfileFacts{
		TotalTransactions:  10,
		FailedTransactions: 3,
		HighRiskCount:      2,
		DisputeCount:       4,
		KYB:                domain.KYBResult{Status: domain.KYBRejected},
	})

	if profile.PaymentScore != 0.6 {
		t.Fatalf("expected payment 0.6, got %v", profile.PaymentScore)
	}
	if profile.TransactionScore != 0.3 {
		t.Fatalf("expected transaction 0.3, got %v", profile.TransactionScore)
	}
	if profile.IdentityScore != 1.0 {
		t.Fatalf("rejected KYB must max identity risk, got %v", profile.IdentityScore)
	}
	if profile.BehavioralScore != 0.8 {
		t.Fatalf("expected behavioral 0.8, got %v", profile.BehavioralScore)
	}
	if profile.OverallRiskLevel != domain.RiskHigh {
		t.Fatalf("expected HIGH, got %s (score %v)", profile.OverallRiskLevel, profile.OverallRiskScore)
	}
}

func TestScoreUserProfile_Idempotent(t *testing.T) {
	facts := ProfileFacts{
		TotalTransactions:  5,
		FailedTransactions: 1,
		HighRiskCount:      1,
		DisputeCount:       1,
		KYB:                domain.KYBResult{Status: domain.KYBVerified, RiskScore: 0.2},
	}

	first := ScoreUserProfile("user-3", facts)
	second := ScoreUserProfile("user-3", facts)

	if first != second {
		t.Fatalf("same facts produced different profiles:\n%+v\n%+v", first, second)
	}
}
