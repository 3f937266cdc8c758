package usecase

import (
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

// ReleaseFunds finalizes RELEASING into RELEASED. It re-checks every
// condition and the dispute state under the row lock instead of trusting
// the automatic transition, so release is a single auditable action and
// cannot run twice.
func (uc *DefaultEscrowUsecase) ReleaseFunds(escrowID string) error {
	var released *domain.Escrow
	err := uc.escrowRepo.ProcessEscrowCriticalOperation(escrowID, func(view *domain.EscrowView) error {
		escrow := view.Escrow
		if escrow.Status != domain.EscrowReleasing {
			return &domain.NotReadyError{
				EscrowID:    escrow.ID,
				Status:      escrow.Status,
				Unsatisfied: escrow.UnsatisfiedConditions(),
			}
		}
		if unsatisfied := escrow.UnsatisfiedConditions(); len(unsatisfied) > 0 {
			return &domain.NotReadyError{
				EscrowID:    escrow.ID,
				Status:      escrow.Status,
				Unsatisfied: unsatisfied,
			}
		}
		if view.OpenDispute {
			return &domain.NotReadyError{
				EscrowID:    escrow.ID,
				Status:      escrow.Status,
				OpenDispute: true,
			}
		}
		now := time.Now()
		escrow.Status = domain.EscrowReleased
		escrow.ReleasedAt = &now
		released = escrow
		return nil
	})
	if err != nil {
		return err
	}

	uc.metrics.RecordEscrowReleased(
		released.Currency,
		released.TotalAmount,
		released.ReleasedAt.Sub(released.CreatedAt).Seconds(),
	)

	go func(event domain.NotificationEvent) {
		if err := uc.publisher.PublishNotification(event); err != nil {
			slog.Error("failed to publish escrow released event", "escrow_id", escrowID, "error", err.Error())
		}
	}(domain.NotificationEvent{
		UserID:       released.SellerID,
		Type:         domain.EventEscrowReleased,
		ResourceType: "escrow",
		ResourceID:   released.ID,
		Message:      "escrow funds released",
	})

	return nil
}
