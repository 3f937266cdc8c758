package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/metrics"
)

// ProfileRecomputer is the slice of the risk engine the flag registry
// needs: every flag mutation forces a recompute from persisted facts.
type ProfileRecomputer interface {
	RecomputeProfile(userID, trigger string) (*domain.RiskProfile, error)
}

type FlagUsecase interface {
	RaiseFlag(userID, flagType string, severity domain.FlagSeverity, description, raisedBy string) (*domain.Flag, error)
	StartFlagReview(flagID string) error
	ResolveFlag(flagID string) error
	ListFlags(userID string, activeOnly bool) ([]*domain.Flag, error)
	GetFlagByID(flagID string) (*domain.Flag, error)

	AddToBlacklist(userID, reason, addedBy string) (*domain.BlacklistEntry, error)
	RemoveFromBlacklist(entryID string) error
	IsBlacklisted(userID string) (bool, error)
}

type DefaultFlagUsecase struct {
	flagRepo      domain.FlagRepository
	blacklistRepo domain.BlacklistRepository
	recomputer    ProfileRecomputer
	publisher     domain.EventPublisher
	metrics       *metrics.EscrowMetrics
	newID         func() string
}

func NewDefaultFlagUsecase(
	flagRepo domain.FlagRepository,
	blacklistRepo domain.BlacklistRepository,
	recomputer ProfileRecomputer,
	publisher domain.EventPublisher,
	escrowMetrics *metrics.EscrowMetrics,
	newID func() string,
) *DefaultFlagUsecase {
	return &DefaultFlagUsecase{
		flagRepo:      flagRepo,
		blacklistRepo: blacklistRepo,
		recomputer:    recomputer,
		publisher:     publisher,
		metrics:       escrowMetrics,
		newID:         newID,
	}
}

func (uc *DefaultFlagUsecase) RaiseFlag(userID, flagType string, severity domain.FlagSeverity, description, raisedBy string) (*domain.Flag, error) {
	now := time.Now()
	flag := &domain.Flag{
		ID:          uc.newID(),
		UserID:      userID,
		FlagType:    flagType,
		Severity:    severity,
		Description: description,
		Status:      domain.FlagActive,
		RaisedBy:    raisedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.flagRepo.CreateFlag(flag); err != nil {
		return nil, err
	}
	uc.metrics.RecordFlagRaised(string(severity), raisedBy)

	go func(event domain.NotificationEvent) {
		if err := uc.publisher.PublishNotification(event); err != nil {
			slog.Error("failed to publish flag created event", "flag_id", flag.ID, "error", err.Error())
		}
	}(domain.NotificationEvent{
		UserID:       userID,
		Type:         domain.EventFlagCreated,
		ResourceType: "flag",
		ResourceID:   flag.ID,
		Message:      description,
	})

	if _, err := uc.recomputer.RecomputeProfile(userID, "flag "+flag.ID+" raised"); err != nil {
		slog.Error("profile recompute failed after flag", "user_id", userID, "error", err.Error())
	}
	return flag, nil
}

func (uc *DefaultFlagUsecase) StartFlagReview(flagID string) error {
	flag, err := uc.flagRepo.GetFlagByID(flagID)
	if err != nil {
		return err
	}
	if flag.Status != domain.FlagActive {
		return fmt.Errorf("flag %s is %s: %w", flagID, flag.Status, domain.ErrInvalidState)
	}
	return uc.flagRepo.UpdateFlagStatus(flagID, domain.FlagUnderReview)
}

func (uc *DefaultFlagUsecase) ResolveFlag(flagID string) error {
	flag, err := uc.flagRepo.GetFlagByID(flagID)
	if err != nil {
		return err
	}
	if !flag.Punitive() {
		return fmt.Errorf("flag %s is %s: %w", flagID, flag.Status, domain.ErrInvalidState)
	}
	if err := uc.flagRepo.UpdateFlagStatus(flagID, domain.FlagResolved); err != nil {
		return err
	}
	if _, err := uc.recomputer.RecomputeProfile(flag.UserID, "flag "+flagID+" resolved"); err != nil {
		slog.Error("profile recompute failed after flag resolution", "user_id", flag.UserID, "error", err.Error())
	}
	return nil
}

func (uc *DefaultFlagUsecase) ListFlags(userID string, activeOnly bool) ([]*domain.Flag, error) {
	return uc.flagRepo.ListFlags(userID, activeOnly)
}

func (uc *DefaultFlagUsecase) GetFlagByID(flagID string) (*domain.Flag, error) {
	return uc.flagRepo.GetFlagByID(flagID)
}
