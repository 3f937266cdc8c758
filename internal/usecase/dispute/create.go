package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	disputedto "github.com/tradelink/escrow-service/internal/usecase/dto/dispute"
)

// OpenDispute freezes an escrow pending moderation. The escrow row is
// locked for the whole check-and-transition, so a dispute can never
// slip in after the release decision committed.
func (uc *DefaultDisputeUsecase) OpenDispute(input *disputedto.OpenDisputeInput) (*domain.Dispute, error) {
	if existing, err := uc.disputeRepo.GetOpenDisputeByEscrowID(input.EscrowID); err == nil {
		return nil, fmt.Errorf("escrow %s already has open dispute %s: %w", input.EscrowID, existing.ID, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	dispute := &domain.Dispute{
		ID:        uc.newID(),
		EscrowID:  input.EscrowID,
		FilerID:   input.FilerID,
		Reason:    input.Reason,
		Status:    domain.DisputePending,
		CreatedAt: time.Now(),
	}

	var currency string
	err := uc.escrowRepo.ProcessEscrowCriticalOperation(input.EscrowID, func(view *domain.EscrowView) error {
		escrow := view.Escrow
		if escrow.Status != domain.EscrowHeld && escrow.Status != domain.EscrowReleasing {
			return &domain.InvalidStateError{
				EscrowID:  escrow.ID,
				Status:    escrow.Status,
				Operation: "open dispute",
			}
		}
		// the dispute row is written through the locked transaction: a
		// rolled-back transition leaves no orphaned PENDING dispute to
		// block release
		if err := view.Disputes.CreateDispute(dispute); err != nil {
			return err
		}
		currency = escrow.Currency
		escrow.Status = domain.EscrowDisputed
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordDisputeOpened(currency)
	go func(event domain.NotificationEvent) {
		if err := uc.publisher.PublishNotification(event); err != nil {
			slog.Error("failed to publish dispute opened event", "dispute_id", dispute.ID, "error", err.Error())
		}
	}(domain.NotificationEvent{
		UserID:       input.FilerID,
		Type:         domain.EventDisputeOpened,
		ResourceType: "dispute",
		ResourceID:   dispute.ID,
		Message:      fmt.Sprintf("dispute opened on escrow %s", input.EscrowID),
	})
	return dispute, nil
}

// StartReview moves a freshly filed dispute into moderation.
func (uc *DefaultDisputeUsecase) StartReview(disputeID string) error {
	dispute, err := uc.disputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return err
	}
	if dispute.Status != domain.DisputePending {
		return fmt.Errorf("dispute %s is %s: %w", disputeID, dispute.Status, domain.ErrInvalidState)
	}
	return uc.disputeRepo.UpdateDisputeStatus(disputeID, domain.DisputeUnderReview)
}

// EscalateDispute hands the case to senior moderation. The escrow stays
// DISPUTED; escalation only changes who decides.
func (uc *DefaultDisputeUsecase) EscalateDispute(disputeID string) error {
	dispute, err := uc.disputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return err
	}
	if dispute.Status != domain.DisputePending && dispute.Status != domain.DisputeUnderReview {
		return fmt.Errorf("dispute %s is %s: %w", disputeID, dispute.Status, domain.ErrInvalidState)
	}
	return uc.disputeRepo.UpdateDisputeStatus(disputeID, domain.DisputeEscalated)
}
