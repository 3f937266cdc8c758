package models

import (
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

type EscrowModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	TransactionID string `gorm:"type:uuid;uniqueIndex"`
	BuyerID       string `gorm:"index:idx_escrow_buyer"`
	SellerID      string `gorm:"index:idx_escrow_seller"`
	TotalAmount   float64
	AdvanceAmount float64
	BalanceAmount float64
	Currency      string
	Status        domain.EscrowStatus `gorm:"index:idx_escrow_status"`
	CancelReason  string
	Conditions    []ConditionModel `gorm:"foreignKey:EscrowID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt     time.Time        `gorm:"index:idx_escrow_created_at"`
	UpdatedAt     time.Time
	ReleasedAt    *time.Time
}

type ConditionModel struct {
	ID          string               `gorm:"primaryKey;type:uuid"`
	EscrowID    string               `gorm:"type:uuid;index;uniqueIndex:idx_escrow_condition_type"`
	Type        domain.ConditionType `gorm:"uniqueIndex:idx_escrow_condition_type"`
	Satisfied   bool
	SatisfiedAt *time.Time
	SatisfiedBy string
	DueAt       *time.Time `gorm:"index:idx_condition_due_at"`
}
