package models

import "time"

type DisputeModel struct {
	ID         string      `gorm:"primaryKey"`
	EscrowID   string      `gorm:"type:uuid;index:idx_dispute_escrow"`
	Escrow     EscrowModel `gorm:"foreignKey:EscrowID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	FilerID    string
	Reason     string
	Status     string `gorm:"index:idx_dispute_status"`
	Resolution string
	ResolvedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}
