package mappers

import (
	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainAssessment(model *models.RiskAssessmentModel) *domain.RiskAssessment {
	return &domain.RiskAssessment{
		ID:                 model.ID,
		TransactionID:      model.TransactionID,
		UserID:             model.UserID,
		IsFirstTransaction: model.IsFirstTransaction,
		UnusualAmount:      model.UnusualAmount,
		VelocityAnomaly:    model.VelocityAnomaly,
		TimingAnomaly:      model.TimingAnomaly,
		HighValue:          model.HighValue,
		RiskScore:          model.RiskScore,
		RiskLevel:          model.RiskLevel,
		RecommendedAction:  model.RecommendedAction,
		OverrideAction:     model.OverrideAction,
		OverriddenBy:       model.OverriddenBy,
		CreatedAt:          model.CreatedAt,
	}
}

func ToGORMAssessment(assessment *domain.RiskAssessment) *models.RiskAssessmentModel {
	return &models.RiskAssessmentModel{
		ID:                 assessment.ID,
		TransactionID:      assessment.TransactionID,
		UserID:             assessment.UserID,
		IsFirstTransaction: assessment.IsFirstTransaction,
		UnusualAmount:      assessment.UnusualAmount,
		VelocityAnomaly:    assessment.VelocityAnomaly,
		TimingAnomaly:      assessment.TimingAnomaly,
		HighValue:          assessment.HighValue,
		RiskScore:          assessment.RiskScore,
		RiskLevel:          assessment.RiskLevel,
		RecommendedAction:  assessment.RecommendedAction,
		OverrideAction:     assessment.OverrideAction,
		OverriddenBy:       assessment.OverriddenBy,
		CreatedAt:          assessment.CreatedAt,
	}
}

func ToDomainProfile(model *models.RiskProfileModel) *domain.RiskProfile {
	return &domain.RiskProfile{
		UserID:           model.UserID,
		OverallRiskScore: model.OverallRiskScore,
		OverallRiskLevel: model.OverallRiskLevel,
		PaymentScore:     model.PaymentScore,
		TransactionScore: model.TransactionScore,
		IdentityScore:    model.IdentityScore,
		BehavioralScore:  model.BehavioralScore,
		HasRestrictions:  model.HasRestrictions,
		IsMonitored:      model.IsMonitored,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMProfile(profile *domain.RiskProfile) *models.RiskProfileModel {
	return &models.RiskProfileModel{
		UserID:           profile.UserID,
		OverallRiskScore: profile.OverallRiskScore,
		OverallRiskLevel: profile.OverallRiskLevel,
		PaymentScore:     profile.PaymentScore,
		TransactionScore: profile.TransactionScore,
		IdentityScore:    profile.IdentityScore,
		BehavioralScore:  profile.BehavioralScore,
		HasRestrictions:  profile.HasRestrictions,
		IsMonitored:      profile.IsMonitored,
		UpdatedAt:        profile.UpdatedAt,
	}
}

func ToDomainRestriction(model *models.RestrictionModel) *domain.Restriction {
	return &domain.Restriction{
		ID:               model.ID,
		UserID:           model.UserID,
		Type:             model.Type,
		DailyLimit:       model.DailyLimit,
		MonthlyLimit:     model.MonthlyLimit,
		PerTxnLimit:      model.PerTxnLimit,
		AffectedCategory: model.AffectedCategory,
		Reason:           model.Reason,
		Active:           model.Active,
		CreatedAt:        model.CreatedAt,
		RemovedAt:        model.RemovedAt,
	}
}

func ToGORMRestriction(restriction *domain.Restriction) *models.RestrictionModel {
	return &models.RestrictionModel{
		ID:               restriction.ID,
		UserID:           restriction.UserID,
		Type:             restriction.Type,
		DailyLimit:       restriction.DailyLimit,
		MonthlyLimit:     restriction.MonthlyLimit,
		PerTxnLimit:      restriction.PerTxnLimit,
		AffectedCategory: restriction.AffectedCategory,
		Reason:           restriction.Reason,
		Active:           restriction.Active,
		CreatedAt:        restriction.CreatedAt,
		RemovedAt:        restriction.RemovedAt,
	}
}

func ToDomainAlert(model *models.AlertModel) *domain.Alert {
	return &domain.Alert{
		ID:        model.ID,
		UserID:    model.UserID,
		Severity:  model.Severity,
		Message:   model.Message,
		CreatedAt: model.CreatedAt,
	}
}

func ToDomainHistoryEntry(model *models.RiskHistoryModel) *domain.RiskHistoryEntry {
	return &domain.RiskHistoryEntry{
		ID:            model.ID,
		UserID:        model.UserID,
		PreviousScore: model.PreviousScore,
		NewScore:      model.NewScore,
		Delta:         model.Delta,
		Trigger:       model.Trigger,
		CreatedAt:     model.CreatedAt,
	}
}
