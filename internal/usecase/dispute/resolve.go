package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	disputedto "github.com/tradelink/escrow-service/internal/usecase/dto/dispute"
)

// ResolveDispute records the moderation outcome and applies it to the
// escrow under the row lock. Buyer-favor outcomes cancel the escrow and
// refund through the payment gateway; a seller-favor outcome returns
// the escrow to condition evaluation and releases immediately when the
// condition set already holds.
func (uc *DefaultDisputeUsecase) ResolveDispute(input *disputedto.ResolveDisputeInput) error {
	switch input.Resolution {
	case domain.ResolutionBuyerFavor, domain.ResolutionSellerFavor, domain.ResolutionRefundIssued:
	default:
		return fmt.Errorf("unknown dispute resolution %q: %w", input.Resolution, domain.ErrInvalidState)
	}

	dispute, err := uc.disputeRepo.GetDisputeByID(input.DisputeID)
	if err != nil {
		return err
	}
	if !dispute.Status.Open() {
		return fmt.Errorf("dispute %s is %s: %w", dispute.ID, dispute.Status, domain.ErrAlreadyDecided)
	}

	var refundBuyer string
	var refundAmount float64
	err = uc.escrowRepo.ProcessEscrowCriticalOperation(dispute.EscrowID, func(view *domain.EscrowView) error {
		escrow := view.Escrow
		if escrow.Status != domain.EscrowDisputed {
			return &domain.InvalidStateError{
				EscrowID:  escrow.ID,
				Status:    escrow.Status,
				Operation: "apply dispute resolution",
			}
		}
		// the dispute is decided in the same transaction as the escrow
		// transition: if either write fails, the dispute stays open and
		// the resolution can be retried
		if err := view.Disputes.ResolveDispute(input.DisputeID, input.Resolution, input.ResolvedBy, time.Now()); err != nil {
			return err
		}
		switch input.Resolution {
		case domain.ResolutionBuyerFavor, domain.ResolutionRefundIssued:
			escrow.Status = domain.EscrowCancelled
			escrow.CancelReason = "dispute resolved in buyer favor"
			refundBuyer = escrow.BuyerID
			refundAmount = escrow.TotalAmount
		case domain.ResolutionSellerFavor:
			escrow.Status = domain.EscrowResolved
			if escrow.AllConditionsSatisfied() {
				escrow.Status = domain.EscrowReleasing
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.metrics.RecordDisputeResolved(string(input.Resolution))
	if refundBuyer != "" {
		if err := uc.paymentGateway.IssueRefund(dispute.EscrowID, refundBuyer, refundAmount); err != nil {
			slog.Error("refund failed after dispute resolution",
				"dispute_id", dispute.ID, "escrow_id", dispute.EscrowID, "error", err.Error())
		}
	}

	if _, err := uc.recomputer.RecomputeProfile(dispute.FilerID, "dispute "+dispute.ID+" resolved "+string(input.Resolution)); err != nil {
		slog.Error("profile recompute failed after dispute resolution", "user_id", dispute.FilerID, "error", err.Error())
	}

	go func(event domain.NotificationEvent) {
		if err := uc.publisher.PublishNotification(event); err != nil {
			slog.Error("failed to publish dispute resolved event", "dispute_id", dispute.ID, "error", err.Error())
		}
	}(domain.NotificationEvent{
		UserID:       dispute.FilerID,
		Type:         domain.EventDisputeResolved,
		ResourceType: "dispute",
		ResourceID:   dispute.ID,
		Message:      fmt.Sprintf("dispute %s resolved: %s", dispute.ID, input.Resolution),
	})
	return nil
}
