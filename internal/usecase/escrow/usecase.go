package usecase

import (
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/metrics"
	escrowdto "github.com/tradelink/escrow-service/internal/usecase/dto/escrow"
)

type EscrowUsecase interface {
	CreateEscrow(input *escrowdto.CreateEscrowInput) (*domain.Escrow, error)
	HoldFunds(escrowID string) error
	MarkConditionSatisfied(escrowID string, conditionType domain.ConditionType, actor domain.Actor) error
	ReleaseFunds(escrowID string) error
	Cancel(escrowID, reason string) error
	SatisfyDueTimeConditions(now time.Time) error
	GetEscrowByID(escrowID string) (*domain.Escrow, error)
	GetEscrowByTransactionID(transactionID string) (*domain.Escrow, error)
	ListEscrows(page, limit int64, filters domain.EscrowFilters) ([]*domain.Escrow, int64, error)
}

type DefaultEscrowUsecase struct {
	escrowRepo domain.EscrowRepository
	publisher  domain.EventPublisher
	metrics    *metrics.EscrowMetrics

	defaultAdvancePercent float64
}

func NewDefaultEscrowUsecase(
	escrowRepo domain.EscrowRepository,
	publisher domain.EventPublisher,
	escrowMetrics *metrics.EscrowMetrics,
	defaultAdvancePercent float64,
) *DefaultEscrowUsecase {
	return &DefaultEscrowUsecase{
		escrowRepo:            escrowRepo,
		publisher:             publisher,
		metrics:               escrowMetrics,
		defaultAdvancePercent: defaultAdvancePercent,
	}
}
