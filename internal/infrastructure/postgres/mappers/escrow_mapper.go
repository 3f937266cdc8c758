package mappers

import (
	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainEscrow(model *models.EscrowModel) *domain.Escrow {
	conditions := make([]domain.ReleaseCondition, len(model.Conditions))
	for i, c := range model.Conditions {
		conditions[i] = ToDomainCondition(&c)
	}
	return &domain.Escrow{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		BuyerID:       model.BuyerID,
		SellerID:      model.SellerID,
		TotalAmount:   model.TotalAmount,
		AdvanceAmount: model.AdvanceAmount,
		BalanceAmount: model.BalanceAmount,
		Currency:      model.Currency,
		Status:        model.Status,
		Conditions:    conditions,
		CancelReason:  model.CancelReason,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		ReleasedAt:    model.ReleasedAt,
	}
}

func ToGORMEscrow(escrow *domain.Escrow) *models.EscrowModel {
	conditions := make([]models.ConditionModel, len(escrow.Conditions))
	for i, c := range escrow.Conditions {
		conditions[i] = *ToGORMCondition(&c)
	}
	return &models.EscrowModel{
		ID:            escrow.ID,
		TransactionID: escrow.TransactionID,
		BuyerID:       escrow.BuyerID,
		SellerID:      escrow.SellerID,
		TotalAmount:   escrow.TotalAmount,
		AdvanceAmount: escrow.AdvanceAmount,
		BalanceAmount: escrow.BalanceAmount,
		Currency:      escrow.Currency,
		Status:        escrow.Status,
		Conditions:    conditions,
		CancelReason:  escrow.CancelReason,
		CreatedAt:     escrow.CreatedAt,
		UpdatedAt:     escrow.UpdatedAt,
		ReleasedAt:    escrow.ReleasedAt,
	}
}

func ToDomainCondition(model *models.ConditionModel) domain.ReleaseCondition {
	return domain.ReleaseCondition{
		ID:          model.ID,
		EscrowID:    model.EscrowID,
		Type:        model.Type,
		Satisfied:   model.Satisfied,
		SatisfiedAt: model.SatisfiedAt,
		SatisfiedBy: model.SatisfiedBy,
		DueAt:       model.DueAt,
	}
}

func ToGORMCondition(condition *domain.ReleaseCondition) *models.ConditionModel {
	return &models.ConditionModel{
		ID:          condition.ID,
		EscrowID:    condition.EscrowID,
		Type:        condition.Type,
		Satisfied:   condition.Satisfied,
		SatisfiedAt: condition.SatisfiedAt,
		SatisfiedBy: condition.SatisfiedBy,
		DueAt:       condition.DueAt,
	}
}
