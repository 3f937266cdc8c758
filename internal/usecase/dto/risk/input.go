package riskdto

import "github.com/tradelink/escrow-service/internal/domain"

type ApplyRestrictionInput struct {
	UserID           string
	Type             domain.RestrictionType
	DailyLimit       float64
	MonthlyLimit     float64
	PerTxnLimit      float64
	AffectedCategory string
	Reason           string
	AppliedBy        string
}

// EnforcementResult tells the payment collaborator whether a transaction
// may proceed and, if not, which limit it would break.
type EnforcementResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
