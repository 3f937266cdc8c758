package models

import "time"

type FlagModel struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index:idx_flag_user"`
	FlagType    string
	Severity    string
	Description string
	Status      string `gorm:"index:idx_flag_status"`
	RaisedBy    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BlacklistModel struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex:idx_blacklist_user"`
	Reason    string
	AddedBy   string
	CreatedAt time.Time
}

type AppealModel struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index:idx_appeal_user"`
	AppealType    string
	TargetID      string `gorm:"index:idx_appeal_target"`
	Reason        string
	Status        string `gorm:"index:idx_appeal_status"`
	AdminDecision string
	ReviewedBy    string
	CreatedAt     time.Time
	DecidedAt     *time.Time
}
