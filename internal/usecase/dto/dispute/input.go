package disputedto

import "github.com/tradelink/escrow-service/internal/domain"

type OpenDisputeInput struct {
	EscrowID string
	FilerID  string
	Reason   string
}

type ResolveDisputeInput struct {
	DisputeID  string
	Resolution domain.DisputeResolution
	ResolvedBy string
}

type ListDisputesInput struct {
	Page   int64
	Limit  int64
	Status string
}
