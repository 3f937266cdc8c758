package usecase

import (
	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/metrics"
	appealdto "github.com/tradelink/escrow-service/internal/usecase/dto/appeal"
)

// ProfileRecomputer triggers trust recomputation after a decision
// changes the punitive record.
type ProfileRecomputer interface {
	RecomputeProfile(userID, trigger string) (*domain.RiskProfile, error)
}

type AppealUsecase interface {
	SubmitAppeal(input *appealdto.SubmitAppealInput) (*domain.Appeal, error)
	ReviewAppeal(input *appealdto.ReviewAppealInput) error
	GetAppealByID(appealID string) (*domain.Appeal, error)
	ListAppeals(userID string, page, limit int64) ([]*domain.Appeal, int64, error)
}

type DefaultAppealUsecase struct {
	appealRepo    domain.AppealRepository
	flagRepo      domain.FlagRepository
	blacklistRepo domain.BlacklistRepository
	recomputer    ProfileRecomputer
	publisher     domain.EventPublisher
	metrics       *metrics.EscrowMetrics
	newID         func() string
}

func NewDefaultAppealUsecase(
	appealRepo domain.AppealRepository,
	flagRepo domain.FlagRepository,
	blacklistRepo domain.BlacklistRepository,
	recomputer ProfileRecomputer,
	publisher domain.EventPublisher,
	escrowMetrics *metrics.EscrowMetrics,
	newID func() string,
) *DefaultAppealUsecase {
	return &DefaultAppealUsecase{
		appealRepo:    appealRepo,
		flagRepo:      flagRepo,
		blacklistRepo: blacklistRepo,
		recomputer:    recomputer,
		publisher:     publisher,
		metrics:       escrowMetrics,
		newID:         newID,
	}
}

func (uc *DefaultAppealUsecase) GetAppealByID(appealID string) (*domain.Appeal, error) {
	return uc.appealRepo.GetAppealByID(appealID)
}

func (uc *DefaultAppealUsecase) ListAppeals(userID string, page, limit int64) ([]*domain.Appeal, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.appealRepo.ListAppeals(userID, page, limit)
}
