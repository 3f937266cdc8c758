package models

import (
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

type TransactionModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	BuyerID   string `gorm:"index:idx_txn_buyer"`
	SellerID  string `gorm:"index:idx_txn_seller"`
	Amount    float64
	Currency  string
	Category  string
	Status    domain.TransactionStatus `gorm:"index:idx_txn_status"`
	CreatedAt time.Time                `gorm:"index:idx_txn_created_at"`
	UpdatedAt time.Time
}
