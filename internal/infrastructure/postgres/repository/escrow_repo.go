package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultEscrowRepository struct {
	DB *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{DB: db}
}

func (r *DefaultEscrowRepository) CreateEscrow(escrow *domain.Escrow) error {
	escrowModel := mappers.ToGORMEscrow(escrow)
	if err := r.DB.Create(escrowModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultEscrowRepository) GetEscrowByID(escrowID string) (*domain.Escrow, error) {
	var escrowModel models.EscrowModel
	if err := r.DB.Preload("Conditions").First(&escrowModel, "id = ?", escrowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&escrowModel), nil
}

func (r *DefaultEscrowRepository) GetEscrowByTransactionID(transactionID string) (*domain.Escrow, error) {
	var escrowModel models.EscrowModel
	if err := r.DB.Preload("Conditions").First(&escrowModel, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&escrowModel), nil
}

func (r *DefaultEscrowRepository) ListEscrows(page, limit int64, filters domain.EscrowFilters) ([]*domain.Escrow, int64, error) {
	var escrowModels []models.EscrowModel
	var total int64

	baseQuery := r.DB.Model(&models.EscrowModel{}).Preload("Conditions")

	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filters.Statuses)
	}
	if filters.BuyerID != "" {
		baseQuery = baseQuery.Where("buyer_id = ?", filters.BuyerID)
	}
	if filters.SellerID != "" {
		baseQuery = baseQuery.Where("seller_id = ?", filters.SellerID)
	}
	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filters.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count escrows: %w", err)
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&escrowModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find escrows: %w", err)
	}

	escrows := make([]*domain.Escrow, len(escrowModels))
	for i := range escrowModels {
		escrows[i] = mappers.ToDomainEscrow(&escrowModels[i])
	}
	return escrows, total, nil
}

func (r *DefaultEscrowRepository) FindDueTimeConditions(now time.Time) ([]*domain.Escrow, error) {
	var conditionModels []models.ConditionModel
	err := r.DB.
		Where("type = ?", domain.ConditionTimeElapsed).
		Where("satisfied = ?", false).
		Where("due_at IS NOT NULL AND due_at <= ?", now).
		Find(&conditionModels).Error
	if err != nil {
		return nil, err
	}

	escrows := make([]*domain.Escrow, 0, len(conditionModels))
	for _, c := range conditionModels {
		escrow, err := r.GetEscrowByID(c.EscrowID)
		if err != nil {
			return nil, err
		}
		escrows = append(escrows, escrow)
	}
	return escrows, nil
}

// ProcessEscrowCriticalOperation serializes all writers of one escrow:
// the row is locked FOR UPDATE for the whole transaction, the dispute
// check reads inside the same transaction, and the mutated status and
// conditions are persisted before the lock drops. Writers of different
// escrows never block each other.
func (r *DefaultEscrowRepository) ProcessEscrowCriticalOperation(escrowID string, fn func(view *domain.EscrowView) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var escrowModel models.EscrowModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&escrowModel, "id = ?", escrowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Where("escrow_id = ?", escrowID).
			Order("id").
			Find(&escrowModel.Conditions).Error; err != nil {
			return err
		}

		var openDisputes int64
		err := tx.Model(&models.DisputeModel{}).
			Where("escrow_id = ?", escrowID).
			Where("status IN (?)", []string{
				string(domain.DisputePending),
				string(domain.DisputeUnderReview),
				string(domain.DisputeEscalated),
			}).
			Count(&openDisputes).Error
		if err != nil {
			return err
		}

		view := &domain.EscrowView{
			Escrow:      mappers.ToDomainEscrow(&escrowModel),
			OpenDispute: openDisputes > 0,
			Disputes:    &txDisputeWriter{tx: tx},
		}
		if err := fn(view); err != nil {
			return err
		}

		updated := mappers.ToGORMEscrow(view.Escrow)
		updated.UpdatedAt = time.Now()
		if err := tx.Omit("Conditions").Save(updated).Error; err != nil {
			return fmt.Errorf("failed to save escrow: %w", err)
		}
		for i := range updated.Conditions {
			if err := tx.Save(&updated.Conditions[i]).Error; err != nil {
				return fmt.Errorf("failed to save condition: %w", err)
			}
		}
		return nil
	})
}

// txDisputeWriter writes dispute rows through the transaction holding
// the escrow row lock. A rolled-back escrow transition takes the
// dispute write down with it.
type txDisputeWriter struct {
	tx *gorm.DB
}

func (w *txDisputeWriter) CreateDispute(dispute *domain.Dispute) error {
	return w.tx.Create(mappers.ToGORMDispute(dispute)).Error
}

func (w *txDisputeWriter) ResolveDispute(disputeID string, resolution domain.DisputeResolution, resolvedBy string, resolvedAt time.Time) error {
	res := w.tx.Model(&models.DisputeModel{}).
		Where("id = ?", disputeID).
		Where("status IN (?)", []string{
			string(domain.DisputePending),
			string(domain.DisputeUnderReview),
			string(domain.DisputeEscalated),
		}).
		Updates(map[string]interface{}{
			"status":      string(domain.DisputeResolved),
			"resolution":  string(resolution),
			"resolved_by": resolvedBy,
			"resolved_at": &resolvedAt,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyDecided
	}
	return nil
}
