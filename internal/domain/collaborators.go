package domain

type KYBStatus string

const (
	KYBVerified KYBStatus = "VERIFIED"
	KYBRejected KYBStatus = "REJECTED"
	KYBPending  KYBStatus = "PENDING"
)

// KYBResult is the external verification signal feeding the identity
// component of the user profile score.
type KYBResult struct {
	Status    KYBStatus `json:"status"`
	RiskScore float64   `json:"risk_score"`
}

type KYBClient interface {
	GetVerification(userID string) (*KYBResult, error)
}

// PaymentGateway is the external processor used for refunds on dispute
// resolution. Card capture and settlement live entirely outside this
// service.
type PaymentGateway interface {
	IssueRefund(escrowID, userID string, amount float64) error
}
