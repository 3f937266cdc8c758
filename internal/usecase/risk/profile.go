package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

// RecomputeProfile rebuilds the user's trust profile from persisted
// facts and overwrites the stored one. It runs on every trigger (new
// transaction, dispute resolution, new flag, appeal decision) and is
// safe to invoke redundantly: the same snapshot always produces the
// same profile, and each run appends exactly one history entry naming
// its trigger.
func (uc *DefaultRiskUsecase) RecomputeProfile(userID, trigger string) (*domain.RiskProfile, error) {
	failed, total, err := uc.txnRepo.CountFailedPayments(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}
	highRisk, err := uc.riskRepo.CountHighRiskAssessments(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count high-risk assessments: %w", err)
	}
	disputes, err := uc.disputeRepo.CountDisputesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count disputes: %w", err)
	}

	kyb := domain.KYBResult{Status: domain.KYBPending}
	if result, err := uc.kybClient.GetVerification(userID); err != nil {
		// identity falls back to the pending-neutral component; the
		// profile must not fail because a collaborator is down
		slog.Warn("kyb lookup failed, scoring identity as pending", "user_id", userID, "error", err.Error())
	} else {
		kyb = *result
	}

	profile := ScoreUserProfile(userID, ProfileFacts{
		TotalTransactions:  total,
		FailedTransactions: failed,
		HighRiskCount:      highRisk,
		DisputeCount:       disputes,
		KYB:                kyb,
	})
	profile.UpdatedAt = time.Now()

	var previousScore float64
	if prior, err := uc.riskRepo.GetProfile(userID); err == nil {
		previousScore = prior.OverallRiskScore
		profile.HasRestrictions = prior.HasRestrictions
		profile.IsMonitored = prior.IsMonitored
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if profile.OverallRiskLevel == domain.RiskHigh || profile.OverallRiskLevel == domain.RiskCritical {
		profile.IsMonitored = true
	}

	if err := uc.riskRepo.UpsertProfile(&profile); err != nil {
		return nil, err
	}

	entry := &domain.RiskHistoryEntry{
		ID:            uc.newID(),
		UserID:        userID,
		PreviousScore: previousScore,
		NewScore:      profile.OverallRiskScore,
		Delta:         profile.OverallRiskScore - previousScore,
		Trigger:       trigger,
		CreatedAt:     time.Now(),
	}
	if err := uc.riskRepo.AppendHistory(entry); err != nil {
		slog.Error("failed to append risk history", "user_id", userID, "error", err.Error())
	}

	return &profile, nil
}
