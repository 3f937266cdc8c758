package repository

import (
	"errors"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultRiskRepository struct {
	DB *gorm.DB
}

func NewDefaultRiskRepository(db *gorm.DB) *DefaultRiskRepository {
	return &DefaultRiskRepository{DB: db}
}

func (r *DefaultRiskRepository) SaveAssessment(assessment *domain.RiskAssessment) error {
	return r.DB.Create(mappers.ToGORMAssessment(assessment)).Error
}

func (r *DefaultRiskRepository) GetAssessmentByTransactionID(transactionID string) (*domain.RiskAssessment, error) {
	var model models.RiskAssessmentModel
	if err := r.DB.First(&model, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainAssessment(&model), nil
}

func (r *DefaultRiskRepository) OverrideAssessmentAction(transactionID string, action domain.RecommendedAction, adminID string) error {
	res := r.DB.Model(&models.RiskAssessmentModel{}).
		Where("transaction_id = ?", transactionID).
		Updates(map[string]interface{}{
			"override_action": action,
			"overridden_by":   adminID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultRiskRepository) CountHighRiskAssessments(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.RiskAssessmentModel{}).
		Where("user_id = ?", userID).
		Where("risk_level IN (?)", []domain.RiskLevel{domain.RiskHigh, domain.RiskCritical}).
		Count(&count).Error
	return count, err
}

// UpsertProfile overwrites the derived profile row. Recomputation always
// replaces the prior value, never patches it incrementally.
func (r *DefaultRiskRepository) UpsertProfile(profile *domain.RiskProfile) error {
	model := mappers.ToGORMProfile(profile)
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(model).Error
}

func (r *DefaultRiskRepository) GetProfile(userID string) (*domain.RiskProfile, error) {
	var model models.RiskProfileModel
	if err := r.DB.First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainProfile(&model), nil
}

func (r *DefaultRiskRepository) CreateRestriction(restriction *domain.Restriction) error {
	return r.DB.Create(mappers.ToGORMRestriction(restriction)).Error
}

func (r *DefaultRiskRepository) GetRestrictionByID(restrictionID string) (*domain.Restriction, error) {
	var model models.RestrictionModel
	if err := r.DB.First(&model, "id = ?", restrictionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainRestriction(&model), nil
}

func (r *DefaultRiskRepository) DeactivateRestriction(restrictionID string) error {
	now := time.Now()
	res := r.DB.Model(&models.RestrictionModel{}).
		Where("id = ?", restrictionID).
		Where("active = ?", true).
		Updates(map[string]interface{}{
			"active":     false,
			"removed_at": &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultRiskRepository) ListActiveRestrictions(userID string) ([]*domain.Restriction, error) {
	var restrictionModels []models.RestrictionModel
	err := r.DB.
		Where("user_id = ?", userID).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&restrictionModels).Error
	if err != nil {
		return nil, err
	}
	restrictions := make([]*domain.Restriction, len(restrictionModels))
	for i := range restrictionModels {
		restrictions[i] = mappers.ToDomainRestriction(&restrictionModels[i])
	}
	return restrictions, nil
}

func (r *DefaultRiskRepository) CreateAlert(alert *domain.Alert) error {
	return r.DB.Create(&models.AlertModel{
		ID:        alert.ID,
		UserID:    alert.UserID,
		Severity:  alert.Severity,
		Message:   alert.Message,
		CreatedAt: alert.CreatedAt,
	}).Error
}

func (r *DefaultRiskRepository) ListAlerts(userID string, limit int64) ([]*domain.Alert, error) {
	var alertModels []models.AlertModel
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(int(limit)).
		Find(&alertModels).Error
	if err != nil {
		return nil, err
	}
	alerts := make([]*domain.Alert, len(alertModels))
	for i := range alertModels {
		alerts[i] = mappers.ToDomainAlert(&alertModels[i])
	}
	return alerts, nil
}

func (r *DefaultRiskRepository) AppendHistory(entry *domain.RiskHistoryEntry) error {
	return r.DB.Create(&models.RiskHistoryModel{
		ID:            entry.ID,
		UserID:        entry.UserID,
		PreviousScore: entry.PreviousScore,
		NewScore:      entry.NewScore,
		Delta:         entry.Delta,
		Trigger:       entry.Trigger,
		CreatedAt:     entry.CreatedAt,
	}).Error
}

func (r *DefaultRiskRepository) ListHistory(userID string, limit int64) ([]*domain.RiskHistoryEntry, error) {
	var historyModels []models.RiskHistoryModel
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(int(limit)).
		Find(&historyModels).Error
	if err != nil {
		return nil, err
	}
	entries := make([]*domain.RiskHistoryEntry, len(historyModels))
	for i := range historyModels {
		entries[i] = mappers.ToDomainHistoryEntry(&historyModels[i])
	}
	return entries, nil
}
