package domain

import "time"

type AppealType string

const (
	AppealFlag      AppealType = "FLAG"
	AppealBlacklist AppealType = "BLACKLIST"
)

type AppealStatus string

const (
	AppealPending  AppealStatus = "PENDING"
	AppealApproved AppealStatus = "APPROVED"
	AppealRejected AppealStatus = "REJECTED"
	AppealPartial  AppealStatus = "PARTIAL"
)

// Appeal is created by the affected user and mutated exactly once by an
// admin decision.
type Appeal struct {
	ID            string
	UserID        string
	AppealType    AppealType
	TargetID      string
	Reason        string
	Status        AppealStatus
	AdminDecision string
	ReviewedBy    string
	CreatedAt     time.Time
	DecidedAt     *time.Time
}

type AppealRepository interface {
	CreateAppeal(appeal *Appeal) error
	GetAppealByID(appealID string) (*Appeal, error)
	// HasPendingAppeal checks the at-most-one-pending-appeal-per-target
	// invariant.
	HasPendingAppeal(appealType AppealType, targetID string) (bool, error)
	// DecideAppeal writes the decision iff the appeal is still PENDING,
	// returning ErrAlreadyDecided otherwise. The conditional update is
	// what makes a double decision impossible under concurrency.
	DecideAppeal(appealID string, status AppealStatus, note, reviewerID string, decidedAt time.Time) error
	ListAppeals(userID string, page, limit int64) ([]*Appeal, int64, error)
}
