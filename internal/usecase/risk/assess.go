package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

// AssessTransaction scores a newly approved transaction against the
// buyer's history. The assessment is computed once; a repeat call for
// the same transaction returns the stored result.
func (uc *DefaultRiskUsecase) AssessTransaction(txn *domain.Transaction) (*domain.RiskAssessment, error) {
	if existing, err := uc.riskRepo.GetAssessmentByTransactionID(txn.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := uc.txnRepo.SaveTransaction(txn); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	history, err := uc.txnRepo.GetUserHistory(txn.BuyerID, txn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load buyer history: %w", err)
	}

	assessment := ScoreTransaction(txn, history, uc.cfg)
	assessment.ID = uc.newID()
	assessment.CreatedAt = time.Now()

	if err := uc.riskRepo.SaveAssessment(&assessment); err != nil {
		return nil, err
	}
	uc.metrics.RecordAssessment(string(assessment.RiskLevel), string(assessment.RecommendedAction))

	if assessment.RiskLevel == domain.RiskHigh || assessment.RiskLevel == domain.RiskCritical {
		if err := uc.raiseScoreFlag(&assessment); err != nil {
			slog.Error("failed to raise risk flag", "transaction_id", txn.ID, "error", err.Error())
		}
	}

	if _, err := uc.RecomputeProfile(txn.BuyerID, "transaction "+txn.ID+" scored"); err != nil {
		slog.Error("profile recompute failed after assessment", "user_id", txn.BuyerID, "error", err.Error())
	}

	return &assessment, nil
}

func (uc *DefaultRiskUsecase) raiseScoreFlag(assessment *domain.RiskAssessment) error {
	severity := domain.FlagSeverityHigh
	if assessment.RiskLevel == domain.RiskCritical {
		severity = domain.FlagSeverityCritical
	}
	now := time.Now()
	flag := &domain.Flag{
		ID:          uc.newID(),
		UserID:      assessment.UserID,
		FlagType:    "HIGH_RISK_TRANSACTION",
		Severity:    severity,
		Description: fmt.Sprintf("transaction %s scored %.2f (%s)", assessment.TransactionID, assessment.RiskScore, assessment.RiskLevel),
		Status:      domain.FlagActive,
		RaisedBy:    "risk-engine",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.flagRepo.CreateFlag(flag); err != nil {
		return err
	}
	uc.metrics.RecordFlagRaised(string(flag.Severity), flag.RaisedBy)

	go func(event domain.NotificationEvent) {
		if err := uc.publisher.PublishNotification(event); err != nil {
			slog.Error("failed to publish flag created event", "flag_id", flag.ID, "error", err.Error())
		}
	}(domain.NotificationEvent{
		UserID:       flag.UserID,
		Type:         domain.EventFlagCreated,
		ResourceType: "flag",
		ResourceID:   flag.ID,
		Message:      flag.Description,
	})
	return nil
}

// OverrideAssessment records the manual admin override; the computed
// score and level stay untouched for audit.
func (uc *DefaultRiskUsecase) OverrideAssessment(transactionID string, action domain.RecommendedAction, adminID string) error {
	switch action {
	case domain.ActionAllow, domain.ActionReview, domain.ActionRequireVerification, domain.ActionDecline:
	default:
		return fmt.Errorf("unknown action %q: %w", action, domain.ErrInvalidState)
	}
	return uc.riskRepo.OverrideAssessmentAction(transactionID, action, adminID)
}
