package usecase

import (
	"fmt"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	appealdto "github.com/tradelink/escrow-service/internal/usecase/dto/appeal"
)

// SubmitAppeal opens a PENDING appeal against a flag or blacklist
// entry. At most one pending appeal may reference a given target.
func (uc *DefaultAppealUsecase) SubmitAppeal(input *appealdto.SubmitAppealInput) (*domain.Appeal, error) {
	switch input.AppealType {
	case domain.AppealFlag:
		flag, err := uc.flagRepo.GetFlagByID(input.TargetID)
		if err != nil {
			return nil, err
		}
		if !flag.Punitive() {
			return nil, fmt.Errorf("flag %s is already %s: %w", flag.ID, flag.Status, domain.ErrInvalidState)
		}
	case domain.AppealBlacklist:
		if _, err := uc.blacklistRepo.GetEntryByID(input.TargetID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown appeal type %q: %w", input.AppealType, domain.ErrInvalidState)
	}

	pending, err := uc.appealRepo.HasPendingAppeal(input.AppealType, input.TargetID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("target %s already has a pending appeal: %w", input.TargetID, domain.ErrConflict)
	}

	appeal := &domain.Appeal{
		ID:         uc.newID(),
		UserID:     input.UserID,
		AppealType: input.AppealType,
		TargetID:   input.TargetID,
		Reason:     input.Reason,
		Status:     domain.AppealPending,
		CreatedAt:  time.Now(),
	}
	if err := uc.appealRepo.CreateAppeal(appeal); err != nil {
		return nil, err
	}

	if input.AppealType == domain.AppealFlag {
		if err := uc.flagRepo.UpdateFlagStatus(input.TargetID, domain.FlagUnderReview); err != nil {
			return nil, fmt.Errorf("failed to move flag under review: %w", err)
		}
	}
	return appeal, nil
}
