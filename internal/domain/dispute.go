package domain

import "time"

type DisputeStatus string

const (
	DisputePending     DisputeStatus = "PENDING"
	DisputeUnderReview DisputeStatus = "UNDER_REVIEW"
	DisputeResolved    DisputeStatus = "RESOLVED"
	DisputeEscalated   DisputeStatus = "ESCALATED"
)

// Open reports whether the dispute still blocks escrow release.
func (s DisputeStatus) Open() bool {
	return s == DisputePending || s == DisputeUnderReview || s == DisputeEscalated
}

type DisputeResolution string

const (
	ResolutionBuyerFavor   DisputeResolution = "BUYER_FAVOR"
	ResolutionSellerFavor  DisputeResolution = "SELLER_FAVOR"
	ResolutionRefundIssued DisputeResolution = "REFUND_ISSUED"
)

type Dispute struct {
	ID         string
	EscrowID   string
	FilerID    string
	Reason     string
	Status     DisputeStatus
	Resolution DisputeResolution
	ResolvedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// DisputeRepository reads dispute state and moves an open dispute
// through review. Creation and resolution touch the escrow row too, so
// those writes go through the DisputeTxWriter of an escrow critical
// operation instead.
type DisputeRepository interface {
	GetDisputeByID(disputeID string) (*Dispute, error)
	GetOpenDisputeByEscrowID(escrowID string) (*Dispute, error)
	UpdateDisputeStatus(disputeID string, status DisputeStatus) error
	CountDisputesByUser(userID string) (int64, error)
	ListDisputes(page, limit int64, status string) ([]*Dispute, int64, error)
	// CountByStatus backs the admin summary: total is open plus resolved,
	// both computed from data.
	CountByStatus() (open int64, resolved int64, err error)
}
