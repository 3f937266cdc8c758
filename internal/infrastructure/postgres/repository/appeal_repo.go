package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAppealRepository struct {
	DB *gorm.DB
}

func NewDefaultAppealRepository(db *gorm.DB) *DefaultAppealRepository {
	return &DefaultAppealRepository{DB: db}
}

func (r *DefaultAppealRepository) CreateAppeal(appeal *domain.Appeal) error {
	return r.DB.Create(mappers.ToGORMAppeal(appeal)).Error
}

func (r *DefaultAppealRepository) GetAppealByID(appealID string) (*domain.Appeal, error) {
	var model models.AppealModel
	if err := r.DB.First(&model, "id = ?", appealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainAppeal(&model), nil
}

func (r *DefaultAppealRepository) HasPendingAppeal(appealType domain.AppealType, targetID string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.AppealModel{}).
		Where("appeal_type = ?", string(appealType)).
		Where("target_id = ?", targetID).
		Where("status = ?", string(domain.AppealPending)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DecideAppeal is a conditional update: the WHERE on status PENDING makes
// a second decision lose the race and surface ErrAlreadyDecided.
func (r *DefaultAppealRepository) DecideAppeal(appealID string, status domain.AppealStatus, note, reviewerID string, decidedAt time.Time) error {
	res := r.DB.Model(&models.AppealModel{}).
		Where("id = ?", appealID).
		Where("status = ?", string(domain.AppealPending)).
		Updates(map[string]interface{}{
			"status":         string(status),
			"admin_decision": note,
			"reviewed_by":    reviewerID,
			"decided_at":     &decidedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.DB.Model(&models.AppealModel{}).Where("id = ?", appealID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return fmt.Errorf("appeal %s: %w", appealID, domain.ErrAlreadyDecided)
	}
	return nil
}

func (r *DefaultAppealRepository) ListAppeals(userID string, page, limit int64) ([]*domain.Appeal, int64, error) {
	var appealModels []models.AppealModel
	var total int64

	baseQuery := r.DB.Model(&models.AppealModel{}).Where("user_id = ?", userID)
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&appealModels).Error
	if err != nil {
		return nil, 0, err
	}

	appeals := make([]*domain.Appeal, len(appealModels))
	for i := range appealModels {
		appeals[i] = mappers.ToDomainAppeal(&appealModels[i])
	}
	return appeals, total, nil
}
