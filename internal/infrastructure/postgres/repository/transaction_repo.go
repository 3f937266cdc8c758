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

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) SaveTransaction(txn *domain.Transaction) error {
	model := mappers.ToGORMTransaction(txn)
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model).Error
}

func (r *DefaultTransactionRepository) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.First(&model, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) GetUserHistory(userID string, excludeTxnID string) ([]*domain.Transaction, error) {
	var txnModels []models.TransactionModel
	query := r.DB.Where("buyer_id = ?", userID)
	if excludeTxnID != "" {
		query = query.Where("id <> ?", excludeTxnID)
	}
	if err := query.Order("created_at DESC").Find(&txnModels).Error; err != nil {
		return nil, err
	}
	txns := make([]*domain.Transaction, len(txnModels))
	for i := range txnModels {
		txns[i] = mappers.ToDomainTransaction(&txnModels[i])
	}
	return txns, nil
}

func (r *DefaultTransactionRepository) CountFailedPayments(userID string) (int64, int64, error) {
	var failed, total int64
	err := r.DB.Model(&models.TransactionModel{}).
		Where("buyer_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&models.TransactionModel{}).
		Where("buyer_id = ?", userID).
		Where("status = ?", domain.TxnFailed).
		Count(&failed).Error
	if err != nil {
		return 0, 0, err
	}
	return failed, total, nil
}

func (r *DefaultTransactionRepository) SumAmountsSince(userID string, since time.Time) (float64, error) {
	var sum float64
	err := r.DB.Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("buyer_id = ?", userID).
		Where("status IN (?)", []domain.TransactionStatus{domain.TxnApproved, domain.TxnCompleted}).
		Where("created_at >= ?", since).
		Scan(&sum).Error
	return sum, err
}
