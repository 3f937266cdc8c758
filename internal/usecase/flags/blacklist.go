package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

// AddToBlacklist bars the user from new transactions until the entry is
// removed or a blacklist appeal succeeds. Enforcement happens at the
// transaction check, not here.
func (uc *DefaultFlagUsecase) AddToBlacklist(userID, reason, addedBy string) (*domain.BlacklistEntry, error) {
	blacklisted, err := uc.blacklistRepo.IsBlacklisted(userID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, fmt.Errorf("user %s is already blacklisted: %w", userID, domain.ErrConflict)
	}

	entry := &domain.BlacklistEntry{
		ID:        uc.newID(),
		UserID:    userID,
		Reason:    reason,
		AddedBy:   addedBy,
		CreatedAt: time.Now(),
	}
	if err := uc.blacklistRepo.AddEntry(entry); err != nil {
		return nil, err
	}
	slog.Info("user blacklisted", "user_id", userID, "entry_id", entry.ID, "added_by", addedBy)

	if _, err := uc.recomputer.RecomputeProfile(userID, "blacklist entry "+entry.ID+" added"); err != nil {
		slog.Error("profile recompute failed after blacklisting", "user_id", userID, "error", err.Error())
	}
	return entry, nil
}

func (uc *DefaultFlagUsecase) RemoveFromBlacklist(entryID string) error {
	entry, err := uc.blacklistRepo.GetEntryByID(entryID)
	if err != nil {
		return err
	}
	if err := uc.blacklistRepo.RemoveEntry(entryID); err != nil {
		return err
	}
	slog.Info("blacklist entry removed", "user_id", entry.UserID, "entry_id", entryID)

	if _, err := uc.recomputer.RecomputeProfile(entry.UserID, "blacklist entry "+entryID+" removed"); err != nil {
		slog.Error("profile recompute failed after blacklist removal", "user_id", entry.UserID, "error", err.Error())
	}
	return nil
}

func (uc *DefaultFlagUsecase) IsBlacklisted(userID string) (bool, error) {
	return uc.blacklistRepo.IsBlacklisted(userID)
}
