package repository

import (
	"errors"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisputeRepository struct {
	DB *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{DB: db}
}

func (r *DefaultDisputeRepository) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	var model models.DisputeModel
	if err := r.DB.First(&model, "id = ?", disputeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&model), nil
}

func (r *DefaultDisputeRepository) GetOpenDisputeByEscrowID(escrowID string) (*domain.Dispute, error) {
	var model models.DisputeModel
	err := r.DB.
		Where("escrow_id = ?", escrowID).
		Where("status IN (?)", []string{
			string(domain.DisputePending),
			string(domain.DisputeUnderReview),
			string(domain.DisputeEscalated),
		}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&model), nil
}

func (r *DefaultDisputeRepository) UpdateDisputeStatus(disputeID string, status domain.DisputeStatus) error {
	res := r.DB.Model(&models.DisputeModel{}).
		Where("id = ?", disputeID).
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

func (r *DefaultDisputeRepository) CountDisputesByUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.DisputeModel{}).
		Where("filer_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *DefaultDisputeRepository) ListDisputes(page, limit int64, status string) ([]*domain.Dispute, int64, error) {
	var disputeModels []models.DisputeModel
	var total int64

	baseQuery := r.DB.Model(&models.DisputeModel{})
	if status != "" {
		baseQuery = baseQuery.Where("status = ?", status)
	}
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&disputeModels).Error
	if err != nil {
		return nil, 0, err
	}

	disputes := make([]*domain.Dispute, len(disputeModels))
	for i := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModels[i])
	}
	return disputes, total, nil
}

func (r *DefaultDisputeRepository) CountByStatus() (int64, int64, error) {
	var open, resolved int64
	err := r.DB.Model(&models.DisputeModel{}).
		Where("status IN (?)", []string{
			string(domain.DisputePending),
			string(domain.DisputeUnderReview),
			string(domain.DisputeEscalated),
		}).
		Count(&open).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&models.DisputeModel{}).
		Where("status = ?", string(domain.DisputeResolved)).
		Count(&resolved).Error
	if err != nil {
		return 0, 0, err
	}
	return open, resolved, nil
}
