package domain

import "time"

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

type RecommendedAction string

const (
	ActionAllow               RecommendedAction = "ALLOW"
	ActionReview              RecommendedAction = "REVIEW"
	ActionRequireVerification RecommendedAction = "REQUIRE_VERIFICATION"
	ActionDecline             RecommendedAction = "DECLINE"
)

// RiskAssessment is computed once per transaction and immutable after
// creation, except for the manual admin override.
type RiskAssessment struct {
	ID            string
	TransactionID string
	UserID        string

	IsFirstTransaction bool
	UnusualAmount      bool
	VelocityAnomaly    bool
	TimingAnomaly      bool
	HighValue          bool

	RiskScore         float64
	RiskLevel         RiskLevel
	RecommendedAction RecommendedAction

	OverrideAction RecommendedAction
	OverriddenBy   string

	CreatedAt time.Time
}

// EffectiveAction returns the admin override when present.
func (a *RiskAssessment) EffectiveAction() RecommendedAction {
	if a.OverrideAction != "" {
		return a.OverrideAction
	}
	return a.RecommendedAction
}

type RestrictionType string

const (
	RestrictionDailyLimit    RestrictionType = "DAILY_LIMIT"
	RestrictionMonthlyLimit  RestrictionType = "MONTHLY_LIMIT"
	RestrictionPerTxnLimit   RestrictionType = "PER_TRANSACTION_LIMIT"
	RestrictionCategoryBlock RestrictionType = "CATEGORY_BLOCK"
)

type Restriction struct {
	ID               string
	UserID           string
	Type             RestrictionType
	DailyLimit       float64
	MonthlyLimit     float64
	PerTxnLimit      float64
	AffectedCategory string
	Reason           string
	Active           bool
	CreatedAt        time.Time
	RemovedAt        *time.Time
}

type AlertSeverity string

const (
	AlertLow      AlertSeverity = "LOW"
	AlertMedium   AlertSeverity = "MEDIUM"
	AlertHigh     AlertSeverity = "HIGH"
	AlertCritical AlertSeverity = "CRITICAL"
)

type Alert struct {
	ID        string
	UserID    string
	Severity  AlertSeverity
	Message   string
	CreatedAt time.Time
}

// RiskHistoryEntry is an append-only audit row. One is written on every
// recomputation and on every restriction action, even when the score is
// unchanged.
type RiskHistoryEntry struct {
	ID            string
	UserID        string
	PreviousScore float64
	NewScore      float64
	Delta         float64
	Trigger       string
	CreatedAt     time.Time
}

// RiskProfile is the cumulative per-user assessment. It is never deleted,
// only superseded by recomputation and new history entries.
type RiskProfile struct {
	UserID           string
	OverallRiskScore float64
	OverallRiskLevel RiskLevel

	PaymentScore     float64
	TransactionScore float64
	IdentityScore    float64
	BehavioralScore  float64

	HasRestrictions bool
	IsMonitored     bool
	UpdatedAt       time.Time
}

type RiskRepository interface {
	SaveAssessment(assessment *RiskAssessment) error
	GetAssessmentByTransactionID(transactionID string) (*RiskAssessment, error)
	OverrideAssessmentAction(transactionID string, action RecommendedAction, adminID string) error
	CountHighRiskAssessments(userID string) (int64, error)

	UpsertProfile(profile *RiskProfile) error
	GetProfile(userID string) (*RiskProfile, error)

	CreateRestriction(restriction *Restriction) error
	GetRestrictionByID(restrictionID string) (*Restriction, error)
	DeactivateRestriction(restrictionID string) error
	ListActiveRestrictions(userID string) ([]*Restriction, error)

	CreateAlert(alert *Alert) error
	ListAlerts(userID string, limit int64) ([]*Alert, error)

	AppendHistory(entry *RiskHistoryEntry) error
	ListHistory(userID string, limit int64) ([]*RiskHistoryEntry, error)
}
