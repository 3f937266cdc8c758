package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	appealdto "github.com/tradelink/escrow-service/internal/usecase/dto/appeal"
)

// ReviewAppeal records an admin decision and applies its side effects.
// The decision write is conditional on the appeal still being PENDING,
// so a second reviewer gets ErrAlreadyDecided instead of a double
// application.
func (uc *DefaultAppealUsecase) ReviewAppeal(input *appealdto.ReviewAppealInput) error {
	switch input.Decision {
	case domain.AppealApproved, domain.AppealRejected, domain.AppealPartial:
	default:
		return fmt.Errorf("unknown appeal decision %q: %w", input.Decision, domain.ErrInvalidState)
	}

	appeal, err := uc.appealRepo.GetAppealByID(input.AppealID)
	if err != nil {
		return err
	}

	if err := uc.appealRepo.DecideAppeal(input.AppealID, input.Decision, input.Note, input.ReviewerID, time.Now()); err != nil {
		return err
	}
	uc.metrics.RecordAppealDecided(string(input.Decision), string(appeal.AppealType))

	// the decision is committed at this point, so the appellant is
	// notified even when a side effect below fails
	applyErr := uc.applyDecision(appeal, input.Decision)
	if applyErr != nil {
		slog.Error("failed to apply appeal decision side effects",
			"appeal_id", appeal.ID, "decision", input.Decision, "error", applyErr.Error())
	}

	go func(event domain.NotificationEvent) {
		if err := uc.publisher.PublishNotification(event); err != nil {
			slog.Error("failed to publish appeal decided event", "appeal_id", appeal.ID, "error", err.Error())
		}
	}(domain.NotificationEvent{
		UserID:       appeal.UserID,
		Type:         domain.EventAppealDecided,
		ResourceType: "appeal",
		ResourceID:   appeal.ID,
		Message:      fmt.Sprintf("appeal %s decided: %s", appeal.ID, input.Decision),
	})
	return applyErr
}

func (uc *DefaultAppealUsecase) applyDecision(appeal *domain.Appeal, decision domain.AppealStatus) error {
	switch appeal.AppealType {
	case domain.AppealFlag:
		return uc.applyFlagDecision(appeal, decision)
	case domain.AppealBlacklist:
		return uc.applyBlacklistDecision(appeal, decision)
	}
	return nil
}

func (uc *DefaultAppealUsecase) applyFlagDecision(appeal *domain.Appeal, decision domain.AppealStatus) error {
	var target domain.FlagStatus
	switch decision {
	case domain.AppealApproved:
		// The flag was wrong. It stops counting against the profile.
		target = domain.FlagFalsePositive
	case domain.AppealPartial:
		target = domain.FlagResolved
	case domain.AppealRejected:
		// Flag stands, leave UNDER_REVIEW behind.
		target = domain.FlagActive
	}
	if err := uc.flagRepo.UpdateFlagStatus(appeal.TargetID, target); err != nil {
		return fmt.Errorf("failed to update flag %s after appeal: %w", appeal.TargetID, err)
	}
	if target == domain.FlagFalsePositive || target == domain.FlagResolved {
		if _, err := uc.recomputer.RecomputeProfile(appeal.UserID, "appeal "+appeal.ID+" decided "+string(decision)); err != nil {
			slog.Error("profile recompute failed after appeal decision", "user_id", appeal.UserID, "error", err.Error())
		}
	}
	return nil
}

func (uc *DefaultAppealUsecase) applyBlacklistDecision(appeal *domain.Appeal, decision domain.AppealStatus) error {
	switch decision {
	case domain.AppealApproved:
		if err := uc.blacklistRepo.RemoveEntry(appeal.TargetID); err != nil {
			return fmt.Errorf("failed to remove blacklist entry %s: %w", appeal.TargetID, err)
		}
		if _, err := uc.recomputer.RecomputeProfile(appeal.UserID, "blacklist entry "+appeal.TargetID+" lifted"); err != nil {
			slog.Error("profile recompute failed after blacklist removal", "user_id", appeal.UserID, "error", err.Error())
		}
	case domain.AppealPartial:
		// Entry stays, the partial outcome lives in the decision note.
		slog.Info("blacklist appeal partially approved, entry retained",
			"appeal_id", appeal.ID, "entry_id", appeal.TargetID)
	case domain.AppealRejected:
		slog.Info("blacklist appeal rejected", "appeal_id", appeal.ID, "entry_id", appeal.TargetID)
	}
	return nil
}
