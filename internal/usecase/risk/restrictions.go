package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	riskdto "github.com/tradelink/escrow-service/internal/usecase/dto/risk"
)

// ApplyRestriction attaches a risk-based limit to the user's profile.
// The action itself is the audit event: a history entry is appended
// even though the computed score is unchanged.
func (uc *DefaultRiskUsecase) ApplyRestriction(input *riskdto.ApplyRestrictionInput) (*domain.Restriction, error) {
	restriction := &domain.Restriction{
		ID:               uc.newID(),
		UserID:           input.UserID,
		Type:             input.Type,
		DailyLimit:       input.DailyLimit,
		MonthlyLimit:     input.MonthlyLimit,
		PerTxnLimit:      input.PerTxnLimit,
		AffectedCategory: input.AffectedCategory,
		Reason:           input.Reason,
		Active:           true,
		CreatedAt:        time.Now(),
	}
	if err := uc.riskRepo.CreateRestriction(restriction); err != nil {
		return nil, err
	}

	profile, err := uc.riskRepo.GetProfile(input.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		fresh, recomputeErr := uc.RecomputeProfile(input.UserID, "restriction applied: "+input.Reason)
		if recomputeErr != nil {
			return nil, recomputeErr
		}
		profile = fresh
	} else if err != nil {
		return nil, err
	}

	currentScore := profile.OverallRiskScore
	profile.HasRestrictions = true
	profile.IsMonitored = true
	if err := uc.riskRepo.UpsertProfile(profile); err != nil {
		return nil, err
	}

	entry := &domain.RiskHistoryEntry{
		ID:            uc.newID(),
		UserID:        input.UserID,
		PreviousScore: currentScore,
		NewScore:      currentScore,
		Delta:         0,
		Trigger:       fmt.Sprintf("restriction %s applied by %s: %s", restriction.Type, input.AppliedBy, input.Reason),
		CreatedAt:     time.Now(),
	}
	if err := uc.riskRepo.AppendHistory(entry); err != nil {
		slog.Error("failed to append restriction history", "user_id", input.UserID, "error", err.Error())
	}

	alert := &domain.Alert{
		ID:        uc.newID(),
		UserID:    input.UserID,
		Severity:  domain.AlertHigh,
		Message:   fmt.Sprintf("restriction %s applied: %s", restriction.Type, input.Reason),
		CreatedAt: time.Now(),
	}
	if err := uc.riskRepo.CreateAlert(alert); err != nil {
		slog.Error("failed to create restriction alert", "user_id", input.UserID, "error", err.Error())
	}

	return restriction, nil
}

// RemoveRestriction deactivates one restriction; the profile's
// hasRestrictions clears only when no active restriction remains.
func (uc *DefaultRiskUsecase) RemoveRestriction(restrictionID string) error {
	restriction, err := uc.riskRepo.GetRestrictionByID(restrictionID)
	if err != nil {
		return err
	}
	if err := uc.riskRepo.DeactivateRestriction(restrictionID); err != nil {
		return err
	}

	remaining, err := uc.riskRepo.ListActiveRestrictions(restriction.UserID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		profile, err := uc.riskRepo.GetProfile(restriction.UserID)
		if err != nil {
			return err
		}
		profile.HasRestrictions = false
		if err := uc.riskRepo.UpsertProfile(profile); err != nil {
			return err
		}
	}

	entry := &domain.RiskHistoryEntry{
		ID:        uc.newID(),
		UserID:    restriction.UserID,
		Trigger:   fmt.Sprintf("restriction %s removed", restriction.Type),
		CreatedAt: time.Now(),
	}
	if profile, err := uc.riskRepo.GetProfile(restriction.UserID); err == nil {
		entry.PreviousScore = profile.OverallRiskScore
		entry.NewScore = profile.OverallRiskScore
	}
	if err := uc.riskRepo.AppendHistory(entry); err != nil {
		slog.Error("failed to append restriction history", "user_id", restriction.UserID, "error", err.Error())
	}
	return nil
}

// CheckTransactionAllowed is the enforcement query for the payment
// collaborator: it rejects a transaction that would exceed any active
// daily/monthly/per-transaction limit, touches a blocked category, or
// comes from a blacklisted user.
func (uc *DefaultRiskUsecase) CheckTransactionAllowed(userID string, amount float64, category string) (*riskdto.EnforcementResult, error) {
	blacklisted, err := uc.blacklistRepo.IsBlacklisted(userID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return &riskdto.EnforcementResult{Allowed: false, Reason: "user is blacklisted"}, nil
	}

	restrictions, err := uc.riskRepo.ListActiveRestrictions(userID)
	if err != nil {
		return nil, err
	}
	if len(restrictions) == 0 {
		return &riskdto.EnforcementResult{Allowed: true}, nil
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var dailySpent, monthlySpent float64
	var dailyLoaded, monthlyLoaded bool

	for _, restriction := range restrictions {
		switch restriction.Type {
		case domain.RestrictionPerTxnLimit:
			if restriction.PerTxnLimit > 0 && amount > restriction.PerTxnLimit {
				return &riskdto.EnforcementResult{
					Allowed: false,
					Reason:  fmt.Sprintf("amount %.2f exceeds per-transaction limit %.2f", amount, restriction.PerTxnLimit),
				}, nil
			}
		case domain.RestrictionCategoryBlock:
			if restriction.AffectedCategory != "" && restriction.AffectedCategory == category {
				return &riskdto.EnforcementResult{
					Allowed: false,
					Reason:  fmt.Sprintf("category %s is blocked", category),
				}, nil
			}
		case domain.RestrictionDailyLimit:
			if restriction.DailyLimit <= 0 {
				continue
			}
			if !dailyLoaded {
				dailySpent, err = uc.txnRepo.SumAmountsSince(userID, startOfDay)
				if err != nil {
					return nil, err
				}
				dailyLoaded = true
			}
			if dailySpent+amount > restriction.DailyLimit {
				return &riskdto.EnforcementResult{
					Allowed: false,
					Reason:  fmt.Sprintf("daily limit %.2f would be exceeded", restriction.DailyLimit),
				}, nil
			}
		case domain.RestrictionMonthlyLimit:
			if restriction.MonthlyLimit <= 0 {
				continue
			}
			if !monthlyLoaded {
				monthlySpent, err = uc.txnRepo.SumAmountsSince(userID, startOfMonth)
				if err != nil {
					return nil, err
				}
				monthlyLoaded = true
			}
			if monthlySpent+amount > restriction.MonthlyLimit {
				return &riskdto.EnforcementResult{
					Allowed: false,
					Reason:  fmt.Sprintf("monthly limit %.2f would be exceeded", restriction.MonthlyLimit),
				}, nil
			}
		}
	}

	return &riskdto.EnforcementResult{Allowed: true}, nil
}
