package escrowdto

import "time"

type CreateEscrowInput struct {
	TransactionID  string
	BuyerID        string
	SellerID       string
	TotalAmount    float64
	Currency       string
	AdvancePercent float64
	// ReleaseDeadline adds an optional TIME_ELAPSED condition satisfied
	// by the scheduler once the deadline passes.
	ReleaseDeadline *time.Time
}
