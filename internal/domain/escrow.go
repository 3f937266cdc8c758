package domain

import "time"

type EscrowStatus string

const (
	EscrowPendingPayment EscrowStatus = "PENDING_PAYMENT"
	EscrowHeld           EscrowStatus = "HELD"
	EscrowReleasing      EscrowStatus = "RELEASING"
	EscrowReleased       EscrowStatus = "RELEASED"
	EscrowDisputed       EscrowStatus = "DISPUTED"
	EscrowResolved       EscrowStatus = "RESOLVED"
	EscrowCancelled      EscrowStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed.
func (s EscrowStatus) IsTerminal() bool {
	return s == EscrowReleased || s == EscrowCancelled
}

type ConditionType string

const (
	ConditionDeliveryConfirmed ConditionType = "DELIVERY_CONFIRMED"
	ConditionQualityApproved   ConditionType = "QUALITY_APPROVED"
	ConditionDocumentsVerified ConditionType = "DOCUMENTS_VERIFIED"
	ConditionTimeElapsed       ConditionType = "TIME_ELAPSED"
)

// StandardConditions are attached to every new escrow, unsatisfied.
func StandardConditions() []ConditionType {
	return []ConditionType{
		ConditionDeliveryConfirmed,
		ConditionQualityApproved,
		ConditionDocumentsVerified,
	}
}

type ActorRole string

const (
	RoleBuyer     ActorRole = "BUYER"
	RoleAdmin     ActorRole = "ADMIN"
	RoleScheduler ActorRole = "SCHEDULER"
)

// Actor identifies who satisfied a condition. The scheduler has no user
// id; its role doubles as the reference.
type Actor struct {
	ID   string
	Role ActorRole
}

// Reference is what gets recorded in satisfiedBy.
func (a Actor) Reference() string {
	if a.ID == "" {
		return string(a.Role)
	}
	return a.ID
}

// MaySatisfy enforces per-condition authorization: buyers confirm
// delivery and quality, the ops team verifies documents, the scheduler
// owns elapsed-time conditions.
func (a Actor) MaySatisfy(t ConditionType) bool {
	switch t {
	case ConditionDeliveryConfirmed, ConditionQualityApproved:
		return a.Role == RoleBuyer
	case ConditionDocumentsVerified:
		return a.Role == RoleAdmin
	case ConditionTimeElapsed:
		return a.Role == RoleScheduler
	}
	return false
}

type ReleaseCondition struct {
	ID          string
	EscrowID    string
	Type        ConditionType
	Satisfied   bool
	SatisfiedAt *time.Time
	SatisfiedBy string
	// DueAt is set only for TIME_ELAPSED conditions; the scheduler
	// satisfies the condition once wall-clock time passes it.
	DueAt *time.Time
}

type Escrow struct {
	ID            string
	TransactionID string
	BuyerID       string
	SellerID      string
	TotalAmount   float64
	AdvanceAmount float64
	BalanceAmount float64
	Currency      string
	Status        EscrowStatus
	Conditions    []ReleaseCondition
	CancelReason  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ReleasedAt    *time.Time
}

// Condition returns the condition of the given type, or nil.
func (e *Escrow) Condition(t ConditionType) *ReleaseCondition {
	for i := range e.Conditions {
		if e.Conditions[i].Type == t {
			return &e.Conditions[i]
		}
	}
	return nil
}

// UnsatisfiedConditions lists the condition types still blocking release.
func (e *Escrow) UnsatisfiedConditions() []ConditionType {
	var out []ConditionType
	for _, c := range e.Conditions {
		if !c.Satisfied {
			out = append(out, c.Type)
		}
	}
	return out
}

// AllConditionsSatisfied reports whether every attached condition holds.
func (e *Escrow) AllConditionsSatisfied() bool {
	for _, c := range e.Conditions {
		if !c.Satisfied {
			return false
		}
	}
	return len(e.Conditions) > 0
}

// DisputeTxWriter persists dispute writes inside the transaction that
// row-locks the escrow, so a dispute row and the escrow transition it
// belongs to commit or roll back together.
type DisputeTxWriter interface {
	CreateDispute(dispute *Dispute) error
	ResolveDispute(disputeID string, resolution DisputeResolution, resolvedBy string, resolvedAt time.Time) error
}

// EscrowView is the snapshot handed to a critical-operation callback.
// OpenDispute is read inside the same transaction that row-locks the
// escrow, so the release decision and the dispute check cannot race.
// Disputes writes through that same transaction.
type EscrowView struct {
	Escrow      *Escrow
	OpenDispute bool
	Disputes    DisputeTxWriter
}

type EscrowFilters struct {
	Statuses []EscrowStatus
	BuyerID  string
	SellerID string
	DateFrom time.Time
	DateTo   time.Time
}

type EscrowRepository interface {
	CreateEscrow(escrow *Escrow) error
	GetEscrowByID(escrowID string) (*Escrow, error)
	GetEscrowByTransactionID(transactionID string) (*Escrow, error)
	ListEscrows(page, limit int64, filters EscrowFilters) ([]*Escrow, int64, error)
	FindDueTimeConditions(now time.Time) ([]*Escrow, error)

	// ProcessEscrowCriticalOperation loads the escrow and its conditions
	// under a row lock, invokes fn, and persists the mutated status and
	// conditions in the same transaction. All state transitions and
	// condition writes go through here.
	ProcessEscrowCriticalOperation(escrowID string, fn func(view *EscrowView) error) error
}
