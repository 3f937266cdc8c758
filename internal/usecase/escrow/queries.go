package usecase

import "github.com/tradelink/escrow-service/internal/domain"

func (uc *DefaultEscrowUsecase) GetEscrowByID(escrowID string) (*domain.Escrow, error) {
	return uc.escrowRepo.GetEscrowByID(escrowID)
}

func (uc *DefaultEscrowUsecase) GetEscrowByTransactionID(transactionID string) (*domain.Escrow, error) {
	return uc.escrowRepo.GetEscrowByTransactionID(transactionID)
}

func (uc *DefaultEscrowUsecase) ListEscrows(page, limit int64, filters domain.EscrowFilters) ([]*domain.Escrow, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.escrowRepo.ListEscrows(page, limit, filters)
}
