package usecase

import (
	"github.com/tradelink/escrow-service/internal/domain"
)

// Cancel moves any non-terminal escrow to CANCELLED. Irreversible.
func (uc *DefaultEscrowUsecase) Cancel(escrowID, reason string) error {
	var currency string
	var wasHeld bool
	err := uc.escrowRepo.ProcessEscrowCriticalOperation(escrowID, func(view *domain.EscrowView) error {
		escrow := view.Escrow
		if escrow.Status.IsTerminal() {
			return &domain.InvalidStateError{
				EscrowID:  escrow.ID,
				Status:    escrow.Status,
				Operation: "cancel",
			}
		}
		currency = escrow.Currency
		wasHeld = escrow.Status == domain.EscrowHeld || escrow.Status == domain.EscrowReleasing
		escrow.Status = domain.EscrowCancelled
		escrow.CancelReason = reason
		return nil
	})
	if err != nil {
		return err
	}

	uc.metrics.RecordEscrowCancelled(currency, wasHeld)
	return nil
}
