package usecase

import (
	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/metrics"
	disputedto "github.com/tradelink/escrow-service/internal/usecase/dto/dispute"
)

// ProfileRecomputer triggers trust recomputation for the dispute filer
// once a resolution lands.
type ProfileRecomputer interface {
	RecomputeProfile(userID, trigger string) (*domain.RiskProfile, error)
}

type DisputeUsecase interface {
	OpenDispute(input *disputedto.OpenDisputeInput) (*domain.Dispute, error)
	StartReview(disputeID string) error
	EscalateDispute(disputeID string) error
	ResolveDispute(input *disputedto.ResolveDisputeInput) error
	GetDisputeByID(disputeID string) (*domain.Dispute, error)
	GetOpenDisputeByEscrowID(escrowID string) (*domain.Dispute, error)
	ListDisputes(input *disputedto.ListDisputesInput) (*disputedto.ListDisputesOutput, error)
	Summary() (*disputedto.DisputeSummary, error)
}

type DefaultDisputeUsecase struct {
	disputeRepo    domain.DisputeRepository
	escrowRepo     domain.EscrowRepository
	paymentGateway domain.PaymentGateway
	recomputer     ProfileRecomputer
	publisher      domain.EventPublisher
	metrics        *metrics.EscrowMetrics
	newID          func() string
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	escrowRepo domain.EscrowRepository,
	paymentGateway domain.PaymentGateway,
	recomputer ProfileRecomputer,
	publisher domain.EventPublisher,
	escrowMetrics *metrics.EscrowMetrics,
	newID func() string,
) *DefaultDisputeUsecase {
	return &DefaultDisputeUsecase{
		disputeRepo:    disputeRepo,
		escrowRepo:     escrowRepo,
		paymentGateway: paymentGateway,
		recomputer:     recomputer,
		publisher:      publisher,
		metrics:        escrowMetrics,
		newID:          newID,
	}
}
