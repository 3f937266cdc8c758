package models

import (
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

type RiskAssessmentModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	TransactionID string `gorm:"type:uuid;uniqueIndex"`
	UserID        string `gorm:"index:idx_assessment_user"`

	IsFirstTransaction bool
	UnusualAmount      bool
	VelocityAnomaly    bool
	TimingAnomaly      bool
	HighValue          bool

	RiskScore         float64
	RiskLevel         domain.RiskLevel `gorm:"index:idx_assessment_level"`
	RecommendedAction domain.RecommendedAction

	OverrideAction domain.RecommendedAction
	OverriddenBy   string

	CreatedAt time.Time
}

type RiskProfileModel struct {
	UserID           string `gorm:"primaryKey"`
	OverallRiskScore float64
	OverallRiskLevel domain.RiskLevel

	PaymentScore     float64
	TransactionScore float64
	IdentityScore    float64
	BehavioralScore  float64

	HasRestrictions bool
	IsMonitored     bool
	UpdatedAt       time.Time
}

type RestrictionModel struct {
	ID               string `gorm:"primaryKey"`
	UserID           string `gorm:"index:idx_restriction_user"`
	Type             domain.RestrictionType
	DailyLimit       float64
	MonthlyLimit     float64
	PerTxnLimit      float64
	AffectedCategory string
	Reason           string
	Active           bool `gorm:"index:idx_restriction_active"`
	CreatedAt        time.Time
	RemovedAt        *time.Time
}

type AlertModel struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_alert_user"`
	Severity  domain.AlertSeverity
	Message   string
	CreatedAt time.Time `gorm:"index:idx_alert_created_at"`
}

// RiskHistoryModel rows are write-once; concurrent recomputations append
// independent rows.
type RiskHistoryModel struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index:idx_history_user"`
	PreviousScore float64
	NewScore      float64
	Delta         float64
	Trigger       string
	CreatedAt     time.Time `gorm:"index:idx_history_created_at"`
}
