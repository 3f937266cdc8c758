package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
)

// MarkConditionSatisfied is the only permitted mutation on a condition;
// there is no unsatisfy. When the write completes the set and no open
// dispute exists, the escrow auto-transitions to RELEASING inside the
// same locked transaction, so two racing writers cannot both trigger it.
func (uc *DefaultEscrowUsecase) MarkConditionSatisfied(escrowID string, conditionType domain.ConditionType, actor domain.Actor) error {
	return uc.markCondition(escrowID, conditionType, actor, time.Now())
}

func (uc *DefaultEscrowUsecase) markCondition(escrowID string, conditionType domain.ConditionType, actor domain.Actor, satisfiedAt time.Time) error {
	if !actor.MaySatisfy(conditionType) {
		return fmt.Errorf("actor %s (%s) cannot satisfy condition %s: %w",
			actor.Reference(), actor.Role, conditionType, domain.ErrInvalidState)
	}

	var satisfied, transitioned bool
	err := uc.escrowRepo.ProcessEscrowCriticalOperation(escrowID, func(view *domain.EscrowView) error {
		escrow := view.Escrow
		switch escrow.Status {
		case domain.EscrowHeld, domain.EscrowResolved:
			// condition-driven transitions allowed
		case domain.EscrowDisputed:
			// condition writes still allowed while disputed, but they
			// never trigger release
		default:
			return &domain.InvalidStateError{
				EscrowID:  escrow.ID,
				Status:    escrow.Status,
				Operation: "mark condition",
			}
		}

		condition := escrow.Condition(conditionType)
		if condition == nil {
			return fmt.Errorf("condition %s on escrow %s: %w", conditionType, escrow.ID, domain.ErrNotFound)
		}
		if condition.Satisfied {
			// idempotent: the external event may be redelivered
			return nil
		}
		condition.Satisfied = true
		condition.SatisfiedAt = &satisfiedAt
		condition.SatisfiedBy = actor.Reference()
		satisfied = true

		if escrow.Status != domain.EscrowDisputed && escrow.AllConditionsSatisfied() && !view.OpenDispute {
			escrow.Status = domain.EscrowReleasing
			transitioned = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	// a redelivered event that found the condition already satisfied is
	// a no-op and must not count again
	if satisfied {
		uc.metrics.RecordConditionSatisfied(string(conditionType))
	}
	if transitioned {
		slog.Info("escrow ready for release", "escrow_id", escrowID)
	}
	return nil
}

// SatisfyDueTimeConditions is invoked by the wall-clock ticker in main.
// The engine itself never blocks waiting for time to pass.
func (uc *DefaultEscrowUsecase) SatisfyDueTimeConditions(now time.Time) error {
	escrows, err := uc.escrowRepo.FindDueTimeConditions(now)
	if err != nil {
		return err
	}
	scheduler := domain.Actor{Role: domain.RoleScheduler}
	for _, escrow := range escrows {
		if err := uc.markCondition(escrow.ID, domain.ConditionTimeElapsed, scheduler, now); err != nil {
			slog.Error("failed to satisfy elapsed-time condition", "escrow_id", escrow.ID, "error", err.Error())
		}
	}
	return nil
}
