package usecase

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink/escrow-service/internal/domain"
	escrowdto "github.com/tradelink/escrow-service/internal/usecase/dto/escrow"
)

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// CreateEscrow opens a PENDING_PAYMENT instance with the standard
// conditions unsatisfied. The advance/balance split always sums back to
// the total: the balance is computed by subtraction, not by percentage.
func (uc *DefaultEscrowUsecase) CreateEscrow(input *escrowdto.CreateEscrowInput) (*domain.Escrow, error) {
	if input.TotalAmount <= 0 {
		return nil, fmt.Errorf("total amount %.2f: %w", input.TotalAmount, domain.ErrInvalidAmount)
	}
	advancePercent := input.AdvancePercent
	if advancePercent == 0 {
		advancePercent = uc.defaultAdvancePercent
	}
	if advancePercent < 0 || advancePercent > 100 {
		return nil, fmt.Errorf("advance percent %.2f: %w", advancePercent, domain.ErrInvalidAmount)
	}

	now := time.Now()
	escrowID := uuid.NewString()
	advance := round2(input.TotalAmount * advancePercent / 100)

	escrow := &domain.Escrow{
		ID:            escrowID,
		TransactionID: input.TransactionID,
		BuyerID:       input.BuyerID,
		SellerID:      input.SellerID,
		TotalAmount:   input.TotalAmount,
		AdvanceAmount: advance,
		BalanceAmount: round2(input.TotalAmount - advance),
		Currency:      input.Currency,
		Status:        domain.EscrowPendingPayment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, conditionType := range domain.StandardConditions() {
		escrow.Conditions = append(escrow.Conditions, domain.ReleaseCondition{
			ID:       uuid.NewString(),
			EscrowID: escrowID,
			Type:     conditionType,
		})
	}
	if input.ReleaseDeadline != nil {
		escrow.Conditions = append(escrow.Conditions, domain.ReleaseCondition{
			ID:       uuid.NewString(),
			EscrowID: escrowID,
			Type:     domain.ConditionTimeElapsed,
			DueAt:    input.ReleaseDeadline,
		})
	}

	if err := uc.escrowRepo.CreateEscrow(escrow); err != nil {
		return nil, err
	}

	uc.metrics.RecordEscrowCreated(escrow.Currency, escrow.TotalAmount)
	return escrow, nil
}
