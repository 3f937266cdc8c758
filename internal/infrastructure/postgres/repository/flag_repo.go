package repository

import (
	"errors"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultFlagRepository struct {
	DB *gorm.DB
}

func NewDefaultFlagRepository(db *gorm.DB) *DefaultFlagRepository {
	return &DefaultFlagRepository{DB: db}
}

func (r *DefaultFlagRepository) CreateFlag(flag *domain.Flag) error {
	return r.DB.Create(mappers.ToGORMFlag(flag)).Error
}

func (r *DefaultFlagRepository) GetFlagByID(flagID string) (*domain.Flag, error) {
	var model models.FlagModel
	if err := r.DB.First(&model, "id = ?", flagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainFlag(&model), nil
}

func (r *DefaultFlagRepository) UpdateFlagStatus(flagID string, status domain.FlagStatus) error {
	res := r.DB.Model(&models.FlagModel{}).
		Where("id = ?", flagID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultFlagRepository) ListFlags(userID string, activeOnly bool) ([]*domain.Flag, error) {
	query := r.DB.Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("status IN (?)", []string{
			string(domain.FlagActive),
			string(domain.FlagUnderReview),
		})
	}
	var flagModels []models.FlagModel
	if err := query.Order("created_at DESC").Find(&flagModels).Error; err != nil {
		return nil, err
	}
	flags := make([]*domain.Flag, len(flagModels))
	for i := range flagModels {
		flags[i] = mappers.ToDomainFlag(&flagModels[i])
	}
	return flags, nil
}

type DefaultBlacklistRepository struct {
	DB *gorm.DB
}

func NewDefaultBlacklistRepository(db *gorm.DB) *DefaultBlacklistRepository {
	return &DefaultBlacklistRepository{DB: db}
}

func (r *DefaultBlacklistRepository) AddEntry(entry *domain.BlacklistEntry) error {
	return r.DB.Create(mappers.ToGORMBlacklistEntry(entry)).Error
}

func (r *DefaultBlacklistRepository) GetEntryByID(entryID string) (*domain.BlacklistEntry, error) {
	var model models.BlacklistModel
	if err := r.DB.First(&model, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBlacklistEntry(&model), nil
}

func (r *DefaultBlacklistRepository) RemoveEntry(entryID string) error {
	res := r.DB.Delete(&models.BlacklistModel{}, "id = ?", entryID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultBlacklistRepository) IsBlacklisted(userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.BlacklistModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
