package mappers

import (
	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	return &domain.Dispute{
		ID:         model.ID,
		EscrowID:   model.EscrowID,
		FilerID:    model.FilerID,
		Reason:     model.Reason,
		Status:     domain.DisputeStatus(model.Status),
		Resolution: domain.DisputeResolution(model.Resolution),
		ResolvedBy: model.ResolvedBy,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
		ResolvedAt: model.ResolvedAt,
	}
}

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	return &models.DisputeModel{
		ID:         dispute.ID,
		EscrowID:   dispute.EscrowID,
		FilerID:    dispute.FilerID,
		Reason:     dispute.Reason,
		Status:     string(dispute.Status),
		Resolution: string(dispute.Resolution),
		ResolvedBy: dispute.ResolvedBy,
		CreatedAt:  dispute.CreatedAt,
		UpdatedAt:  dispute.UpdatedAt,
		ResolvedAt: dispute.ResolvedAt,
	}
}

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:        model.ID,
		BuyerID:   model.BuyerID,
		SellerID:  model.SellerID,
		Amount:    model.Amount,
		Currency:  model.Currency,
		Category:  model.Category,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMTransaction(txn *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:        txn.ID,
		BuyerID:   txn.BuyerID,
		SellerID:  txn.SellerID,
		Amount:    txn.Amount,
		Currency:  txn.Currency,
		Category:  txn.Category,
		Status:    txn.Status,
		CreatedAt: txn.CreatedAt,
	}
}
