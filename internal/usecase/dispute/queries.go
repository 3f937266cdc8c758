package usecase

import (
	"github.com/tradelink/escrow-service/internal/domain"
	disputedto "github.com/tradelink/escrow-service/internal/usecase/dto/dispute"
)

func (uc *DefaultDisputeUsecase) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	return uc.disputeRepo.GetDisputeByID(disputeID)
}

func (uc *DefaultDisputeUsecase) GetOpenDisputeByEscrowID(escrowID string) (*domain.Dispute, error) {
	return uc.disputeRepo.GetOpenDisputeByEscrowID(escrowID)
}

func (uc *DefaultDisputeUsecase) ListDisputes(input *disputedto.ListDisputesInput) (*disputedto.ListDisputesOutput, error) {
	page, limit := input.Page, input.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	disputes, total, err := uc.disputeRepo.ListDisputes(page, limit, input.Status)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &disputedto.ListDisputesOutput{
		Disputes: disputes,
		Pagination: disputedto.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

func (uc *DefaultDisputeUsecase) Summary() (*disputedto.DisputeSummary, error) {
	open, resolved, err := uc.disputeRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	return &disputedto.DisputeSummary{
		Open:     open,
		Resolved: resolved,
		Total:    open + resolved,
	}, nil
}
