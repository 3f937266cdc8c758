package usecase

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/metrics"
)

var testMetrics = metrics.NewEscrowMetrics()

type fakeFlagRepo struct {
	mu    sync.Mutex
	flags map[string]*domain.Flag
}

func newFakeFlagRepo() *fakeFlagRepo {
	return &fakeFlagRepo{flags: make(map[string]*domain.Flag)}
}

func (r *fakeFlagRepo) CreateFlag(flag *domain.Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *flag
	r.flags[flag.ID] = &cp
	return nil
}

func (r *fakeFlagRepo) GetFlagByID(flagID string) (*domain.Flag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	flag, ok := r.flags[flagID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *flag
	return &cp, nil
}

func (r *fakeFlagRepo) UpdateFlagStatus(flagID string, status domain.FlagStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	flag, ok := r.flags[flagID]
	if !ok {
		return domain.ErrNotFound
	}
	flag.Status = status
	return nil
}

func (r *fakeFlagRepo) ListFlags(userID string, activeOnly bool) ([]*domain.Flag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Flag
	for _, flag := range r.flags {
		if flag.UserID != userID {
			continue
		}
		if activeOnly && !flag.Punitive() {
			continue
		}
		cp := *flag
		out = append(out, &cp)
	}
	return out, nil
}

type fakeBlacklistRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.BlacklistEntry
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{entries: make(map[string]*domain.BlacklistEntry)}
}

func (r *fakeBlacklistRepo) AddEntry(entry *domain.BlacklistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeBlacklistRepo) GetEntryByID(entryID string) (*domain.BlacklistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (r *fakeBlacklistRepo) RemoveEntry(entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entryID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entries, entryID)
	return nil
}

func (r *fakeBlacklistRepo) IsBlacklisted(userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeRecomputer struct {
	mu       sync.Mutex
	triggers []string
}

func (f *fakeRecomputer) RecomputeProfile(userID, trigger string) (*domain.RiskProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, trigger)
	return &domain.RiskProfile{UserID: userID}, nil
}

func (f *fakeRecomputer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.triggers)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.NotificationEvent
}

func (p *fakePublisher) PublishNotification(event domain.NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newTestUsecase() (*DefaultFlagUsecase, *fakeFlagRepo, *fakeBlacklistRepo, *fakeRecomputer) {
	flagRepo := newFakeFlagRepo()
	blacklistRepo := newFakeBlacklistRepo()
	recomputer := &fakeRecomputer{}
	var n int
	uc := NewDefaultFlagUsecase(flagRepo, blacklistRepo, recomputer, &fakePublisher{}, testMetrics, func() string {
		n++
		return fmt.Sprintf("flag-%03d", n)
	})
	return uc, flagRepo, blacklistRepo, recomputer
}

func TestRaiseFlag(t *testing.T) {
	uc, _, _, recomputer := newTestUsecase()

	flag, err := uc.RaiseFlag("user-1", "MANUAL_REVIEW", domain.FlagSeverityMedium, "suspicious invoices", "admin-1")
	if err != nil {
		t.Fatalf("RaiseFlag: %v", err)
	}
	if flag.Status != domain.FlagActive {
		t.Fatalf("new flag must be ACTIVE, got %s", flag.Status)
	}
	if recomputer.count() != 1 {
		t.Fatalf("raising a flag must trigger one recompute, got %d", recomputer.count())
	}

	active, err := uc.ListFlags("user-1", true)
	if err != nil {
		t.Fatalf("ListFlags: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected the flag in the active list, got %d", len(active))
	}
}

func TestFlagLifecycle(t *testing.T) {
	uc, _, _, recomputer := newTestUsecase()
	flag, _ := uc.RaiseFlag("user-1", "MANUAL_REVIEW", domain.FlagSeverityHigh, "pattern", "admin-1")

	if err := uc.StartFlagReview(flag.ID); err != nil {
		t.Fatalf("StartFlagReview: %v", err)
	}
	if err := uc.StartFlagReview(flag.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("review of a non-active flag: expected ErrInvalidState, got %v", err)
	}

	if err := uc.ResolveFlag(flag.ID); err != nil {
		t.Fatalf("ResolveFlag: %v", err)
	}
	stored, _ := uc.GetFlagByID(flag.ID)
	if stored.Status != domain.FlagResolved {
		t.Fatalf("expected RESOLVED, got %s", stored.Status)
	}
	// raise + resolve
	if recomputer.count() != 2 {
		t.Fatalf("resolution must trigger a second recompute, got %d", recomputer.count())
	}

	if err := uc.ResolveFlag(flag.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("re-resolving: expected ErrInvalidState, got %v", err)
	}

	active, _ := uc.ListFlags("user-1", true)
	if len(active) != 0 {
		t.Fatalf("resolved flag must leave the active list, got %d", len(active))
	}
	all, _ := uc.ListFlags("user-1", false)
	if len(all) != 1 {
		t.Fatalf("resolved flag must stay in the full history, got %d", len(all))
	}
}

func TestBlacklist(t *testing.T) {
	uc, _, _, recomputer := newTestUsecase()

	entry, err := uc.AddToBlacklist("user-1", "confirmed fraud ring", "admin-1")
	if err != nil {
		t.Fatalf("AddToBlacklist: %v", err)
	}
	if blacklisted, _ := uc.IsBlacklisted("user-1"); !blacklisted {
		t.Fatalf("user must be blacklisted after add")
	}

	if _, err := uc.AddToBlacklist("user-1", "again", "admin-2"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("double blacklisting: expected ErrConflict, got %v", err)
	}

	if err := uc.RemoveFromBlacklist(entry.ID); err != nil {
		t.Fatalf("RemoveFromBlacklist: %v", err)
	}
	if blacklisted, _ := uc.IsBlacklisted("user-1"); blacklisted {
		t.Fatalf("user must be clear after removal")
	}
	if err := uc.RemoveFromBlacklist(entry.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("removing a missing entry: expected ErrNotFound, got %v", err)
	}

	// add + remove
	if recomputer.count() != 2 {
		t.Fatalf("both blacklist mutations must recompute, got %d", recomputer.count())
	}
}
