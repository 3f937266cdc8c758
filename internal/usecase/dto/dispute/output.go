package disputedto

import "github.com/tradelink/escrow-service/internal/domain"

type ListDisputesOutput struct {
	Disputes   []*domain.Dispute
	Pagination Pagination
}

type Pagination struct {
	CurrentPage  int64 `json:"current_page"`
	TotalPages   int64 `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int64 `json:"items_per_page"`
}

// DisputeSummary backs the admin dashboard. Total is derived, never
// stored.
type DisputeSummary struct {
	Open     int64 `json:"open"`
	Resolved int64 `json:"resolved"`
	Total    int64 `json:"total"`
}
