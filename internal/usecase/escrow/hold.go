package usecase

import "github.com/tradelink/escrow-service/internal/domain"

// HoldFunds moves PENDING_PAYMENT to HELD on payment-gateway
// confirmation. The webhook may retry; a repeat call fails with
// INVALID_STATE and the caller treats that as already-processed.
func (uc *DefaultEscrowUsecase) HoldFunds(escrowID string) error {
	err := uc.escrowRepo.ProcessEscrowCriticalOperation(escrowID, func(view *domain.EscrowView) error {
		escrow := view.Escrow
		if escrow.Status != domain.EscrowPendingPayment {
			return &domain.InvalidStateError{
				EscrowID:  escrow.ID,
				Status:    escrow.Status,
				Operation: "hold funds",
			}
		}
		escrow.Status = domain.EscrowHeld
		return nil
	})
	if err != nil {
		return err
	}

	escrow, err := uc.escrowRepo.GetEscrowByID(escrowID)
	if err == nil {
		uc.metrics.RecordFundsHeld(escrow.Currency)
	}
	return nil
}
