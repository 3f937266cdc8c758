package usecase

import "github.com/tradelink/escrow-service/internal/domain"

func (uc *DefaultRiskUsecase) GetProfile(userID string) (*domain.RiskProfile, error) {
	return uc.riskRepo.GetProfile(userID)
}

func (uc *DefaultRiskUsecase) GetAssessment(transactionID string) (*domain.RiskAssessment, error) {
	return uc.riskRepo.GetAssessmentByTransactionID(transactionID)
}

func (uc *DefaultRiskUsecase) ListActiveRestrictions(userID string) ([]*domain.Restriction, error) {
	return uc.riskRepo.ListActiveRestrictions(userID)
}

func (uc *DefaultRiskUsecase) ListAlerts(userID string, limit int64) ([]*domain.Alert, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return uc.riskRepo.ListAlerts(userID, limit)
}

func (uc *DefaultRiskUsecase) ListHistory(userID string, limit int64) ([]*domain.RiskHistoryEntry, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return uc.riskRepo.ListHistory(userID, limit)
}
