package usecase

import (
	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/metrics"
	riskdto "github.com/tradelink/escrow-service/internal/usecase/dto/risk"
)

type RiskUsecase interface {
	AssessTransaction(txn *domain.Transaction) (*domain.RiskAssessment, error)
	RecomputeProfile(userID, trigger string) (*domain.RiskProfile, error)
	OverrideAssessment(transactionID string, action domain.RecommendedAction, adminID string) error

	ApplyRestriction(input *riskdto.ApplyRestrictionInput) (*domain.Restriction, error)
	RemoveRestriction(restrictionID string) error
	CheckTransactionAllowed(userID string, amount float64, category string) (*riskdto.EnforcementResult, error)

	GetProfile(userID string) (*domain.RiskProfile, error)
	GetAssessment(transactionID string) (*domain.RiskAssessment, error)
	ListActiveRestrictions(userID string) ([]*domain.Restriction, error)
	ListAlerts(userID string, limit int64) ([]*domain.Alert, error)
	ListHistory(userID string, limit int64) ([]*domain.RiskHistoryEntry, error)
}

type DefaultRiskUsecase struct {
	riskRepo      domain.RiskRepository
	txnRepo       domain.TransactionRepository
	flagRepo      domain.FlagRepository
	disputeRepo   domain.DisputeRepository
	blacklistRepo domain.BlacklistRepository
	kybClient     domain.KYBClient
	publisher     domain.EventPublisher
	metrics       *metrics.EscrowMetrics
	cfg           ScoringConfig
	newID         func() string
}

func NewDefaultRiskUsecase(
	riskRepo domain.RiskRepository,
	txnRepo domain.TransactionRepository,
	flagRepo domain.FlagRepository,
	disputeRepo domain.DisputeRepository,
	blacklistRepo domain.BlacklistRepository,
	kybClient domain.KYBClient,
	publisher domain.EventPublisher,
	escrowMetrics *metrics.EscrowMetrics,
	cfg ScoringConfig,
	newID func() string,
) *DefaultRiskUsecase {
	return &DefaultRiskUsecase{
		riskRepo:      riskRepo,
		txnRepo:       txnRepo,
		flagRepo:      flagRepo,
		disputeRepo:   disputeRepo,
		blacklistRepo: blacklistRepo,
		kybClient:     kybClient,
		publisher:     publisher,
		metrics:       escrowMetrics,
		cfg:           cfg,
		newID:         newID,
	}
}
