package usecase

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/metrics"
	disputedto "github.com/tradelink/escrow-service/internal/usecase/dto/dispute"
)

var testMetrics = metrics.NewEscrowMetrics()

type fakeDisputeRepo struct {
	mu       sync.Mutex
	disputes map[string]*domain.Dispute
}

func newFakeDisputeRepo() *fakeDisputeRepo {
	return &fakeDisputeRepo{disputes: make(map[string]*domain.Dispute)}
}

func (r *fakeDisputeRepo) put(dispute *domain.Dispute) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *dispute
	r.disputes[dispute.ID] = &cp
}

func (r *fakeDisputeRepo) hasOpen(escrowID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dispute := range r.disputes {
		if dispute.EscrowID == escrowID && dispute.Status.Open() {
			return true
		}
	}
	return false
}

func (r *fakeDisputeRepo) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dispute, ok := r.disputes[disputeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *dispute
	return &cp, nil
}

func (r *fakeDisputeRepo) GetOpenDisputeByEscrowID(escrowID string) (*domain.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dispute := range r.disputes {
		if dispute.EscrowID == escrowID && dispute.Status.Open() {
			cp := *dispute
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeDisputeRepo) UpdateDisputeStatus(disputeID string, status domain.DisputeStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dispute, ok := r.disputes[disputeID]
	if !ok {
		return domain.ErrNotFound
	}
	dispute.Status = status
	return nil
}

func (r *fakeDisputeRepo) resolve(disputeID string, resolution domain.DisputeResolution, resolvedBy string, resolvedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dispute, ok := r.disputes[disputeID]
	if !ok {
		return
	}
	dispute.Status = domain.DisputeResolved
	dispute.Resolution = resolution
	dispute.ResolvedBy = resolvedBy
	dispute.ResolvedAt = &resolvedAt
}

func (r *fakeDisputeRepo) CountDisputesByUser(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, dispute := range r.disputes {
		if dispute.FilerID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeDisputeRepo) ListDisputes(page, limit int64, status string) ([]*domain.Dispute, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Dispute
	for _, dispute := range r.disputes {
		if status == "" || string(dispute.Status) == status {
			cp := *dispute
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeDisputeRepo) CountByStatus() (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var open, resolved int64
	for _, dispute := range r.disputes {
		if dispute.Status.Open() {
			open++
		} else {
			resolved++
		}
	}
	return open, resolved, nil
}

type fakeEscrowRepo struct {
	mu       sync.Mutex
	escrows  map[string]*domain.Escrow
	disputes *fakeDisputeRepo
}

func newFakeEscrowRepo(disputes *fakeDisputeRepo) *fakeEscrowRepo {
	return &fakeEscrowRepo{
		escrows:  make(map[string]*domain.Escrow),
		disputes: disputes,
	}
}

// stagedDisputeWriter mirrors the transactional writer: buffered writes
// apply only when the whole critical operation succeeds.
type stagedDisputeWriter struct {
	repo    *fakeDisputeRepo
	pending []func()
}

func (w *stagedDisputeWriter) CreateDispute(dispute *domain.Dispute) error {
	cp := *dispute
	w.pending = append(w.pending, func() { w.repo.put(&cp) })
	return nil
}

func (w *stagedDisputeWriter) ResolveDispute(disputeID string, resolution domain.DisputeResolution, resolvedBy string, resolvedAt time.Time) error {
	dispute, err := w.repo.GetDisputeByID(disputeID)
	if err != nil {
		return err
	}
	if !dispute.Status.Open() {
		return domain.ErrAlreadyDecided
	}
	w.pending = append(w.pending, func() { w.repo.resolve(disputeID, resolution, resolvedBy, resolvedAt) })
	return nil
}

func (w *stagedDisputeWriter) commit() {
	for _, apply := range w.pending {
		apply()
	}
}

func copyEscrow(e *domain.Escrow) *domain.Escrow {
	cp := *e
	cp.Conditions = append([]domain.ReleaseCondition(nil), e.Conditions...)
	return &cp
}

func (r *fakeEscrowRepo) CreateEscrow(escrow *domain.Escrow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.escrows[escrow.ID] = copyEscrow(escrow)
	return nil
}

func (r *fakeEscrowRepo) GetEscrowByID(escrowID string) (*domain.Escrow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	escrow, ok := r.escrows[escrowID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyEscrow(escrow), nil
}

func (r *fakeEscrowRepo) GetEscrowByTransactionID(transactionID string) (*domain.Escrow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, escrow := range r.escrows {
		if escrow.TransactionID == transactionID {
			return copyEscrow(escrow), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeEscrowRepo) ListEscrows(page, limit int64, filters domain.EscrowFilters) ([]*domain.Escrow, int64, error) {
	return nil, 0, nil
}

func (r *fakeEscrowRepo) FindDueTimeConditions(now time.Time) ([]*domain.Escrow, error) {
	return nil, nil
}

func (r *fakeEscrowRepo) ProcessEscrowCriticalOperation(escrowID string, fn func(view *domain.EscrowView) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	escrow, ok := r.escrows[escrowID]
	if !ok {
		return domain.ErrNotFound
	}
	working := copyEscrow(escrow)
	writer := &stagedDisputeWriter{repo: r.disputes}
	view := &domain.EscrowView{
		Escrow:      working,
		OpenDispute: r.disputes.hasOpen(escrowID),
		Disputes:    writer,
	}
	if err := fn(view); err != nil {
		return err
	}
	writer.commit()
	r.escrows[escrowID] = working
	return nil
}

func (r *fakeEscrowRepo) setStatus(escrowID string, status domain.EscrowStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.escrows[escrowID].Status = status
}

type fakeGateway struct {
	mu      sync.Mutex
	refunds []float64
	payees  []string
	err     error
}

func (g *fakeGateway) IssueRefund(escrowID, userID string, amount float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.refunds = append(g.refunds, amount)
	g.payees = append(g.payees, userID)
	return nil
}

type fakeRecomputer struct {
	mu    sync.Mutex
	users []string
}

func (f *fakeRecomputer) RecomputeProfile(userID, trigger string) (*domain.RiskProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, userID)
	return &domain.RiskProfile{UserID: userID}, nil
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

type disputeFixture struct {
	uc          *DefaultDisputeUsecase
	disputeRepo *fakeDisputeRepo
	escrowRepo  *fakeEscrowRepo
	gateway     *fakeGateway
	recomputer  *fakeRecomputer
}

func newDisputeFixture() *disputeFixture {
	disputeRepo := newFakeDisputeRepo()
	f := &disputeFixture{
		disputeRepo: disputeRepo,
		escrowRepo:  newFakeEscrowRepo(disputeRepo),
		gateway:     &fakeGateway{},
		recomputer:  &fakeRecomputer{},
	}
	var n int
	f.uc = NewDefaultDisputeUsecase(
		f.disputeRepo,
		f.escrowRepo,
		f.gateway,
		f.recomputer,
		&fakePublisher{},
		testMetrics,
		func() string {
			n++
			return fmt.Sprintf("dispute-%03d", n)
		},
	)
	return f
}

func (f *disputeFixture) seedEscrow(t *testing.T, escrowID string, status domain.EscrowStatus, satisfied bool) {
	t.Helper()
	err := f.escrowRepo.CreateEscrow(&domain.Escrow{
		ID:            escrowID,
		TransactionID: "txn-" + escrowID,
		BuyerID:       "buyer-1",
		SellerID:      "seller-1",
		TotalAmount:   10000,
		AdvanceAmount: 3000,
		BalanceAmount: 7000,
		Currency:      "USD",
		Status:        status,
		Conditions: []domain.ReleaseCondition{
			{Type: domain.ConditionDeliveryConfirmed, Satisfied: satisfied},
			{Type: domain.ConditionQualityApproved, Satisfied: satisfied},
			{Type: domain.ConditionDocumentsVerified, Satisfied: satisfied},
		},
	})
	if err != nil {
		t.Fatalf("seed escrow: %v", err)
	}
}

func TestOpenDispute_FreezesHeldEscrow(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)

	dispute, err := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "goods never arrived",
	})
	if err != nil {
		t.Fatalf("OpenDispute: %v", err)
	}
	if dispute.Status != domain.DisputePending {
		t.Fatalf("new dispute must be PENDING, got %s", dispute.Status)
	}

	escrow, _ := f.escrowRepo.GetEscrowByID("esc-1")
	if escrow.Status != domain.EscrowDisputed {
		t.Fatalf("escrow must freeze to DISPUTED, got %s", escrow.Status)
	}
}

func TestOpenDispute_SecondOpenRejected(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)

	input := &disputedto.OpenDisputeInput{EscrowID: "esc-1", FilerID: "buyer-1", Reason: "first"}
	if _, err := f.uc.OpenDispute(input); err != nil {
		t.Fatalf("first OpenDispute: %v", err)
	}
	if _, err := f.uc.OpenDispute(input); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second open dispute: expected ErrConflict, got %v", err)
	}
}

func TestOpenDispute_RequiresHeldOrReleasing(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-pending", domain.EscrowPendingPayment, false)
	f.seedEscrow(t, "esc-releasing", domain.EscrowReleasing, true)

	_, err := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-pending", FilerID: "buyer-1", Reason: "too early",
	})
	var stateErr *domain.InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("dispute before funds held: expected InvalidStateError, got %v", err)
	}

	if _, err := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-releasing", FilerID: "buyer-1", Reason: "last-moment claim",
	}); err != nil {
		t.Fatalf("RELEASING escrow must still accept a dispute: %v", err)
	}
	escrow, _ := f.escrowRepo.GetEscrowByID("esc-releasing")
	if escrow.Status != domain.EscrowDisputed {
		t.Fatalf("disputed RELEASING escrow must freeze, got %s", escrow.Status)
	}
}

func TestResolveDispute_BuyerFavorCancelsAndRefunds(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)
	dispute, _ := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "damaged goods",
	})

	err := f.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID: dispute.ID, Resolution: domain.ResolutionBuyerFavor, ResolvedBy: "admin-1",
	})
	if err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}

	escrow, _ := f.escrowRepo.GetEscrowByID("esc-1")
	if escrow.Status != domain.EscrowCancelled {
		t.Fatalf("buyer-favor must cancel the escrow, got %s", escrow.Status)
	}
	if escrow.CancelReason == "" {
		t.Fatalf("cancellation must record a reason")
	}

	f.gateway.mu.Lock()
	defer f.gateway.mu.Unlock()
	if len(f.gateway.refunds) != 1 || f.gateway.refunds[0] != 10000 || f.gateway.payees[0] != "buyer-1" {
		t.Fatalf("expected one full refund to the buyer, got %v to %v", f.gateway.refunds, f.gateway.payees)
	}
}

func TestResolveDispute_SellerFavorResumesEvaluation(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)
	dispute, _ := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "claim",
	})

	if err := f.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID: dispute.ID, Resolution: domain.ResolutionSellerFavor, ResolvedBy: "admin-1",
	}); err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}

	escrow, _ := f.escrowRepo.GetEscrowByID("esc-1")
	if escrow.Status != domain.EscrowResolved {
		t.Fatalf("seller-favor with unmet conditions must leave RESOLVED, got %s", escrow.Status)
	}
	f.gateway.mu.Lock()
	refunds := len(f.gateway.refunds)
	f.gateway.mu.Unlock()
	if refunds != 0 {
		t.Fatalf("seller-favor must not refund")
	}
}

func TestResolveDispute_SellerFavorReleasesWhenConditionsHold(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowReleasing, true)
	dispute, _ := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "last-moment claim",
	})

	if err := f.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID: dispute.ID, Resolution: domain.ResolutionSellerFavor, ResolvedBy: "admin-1",
	}); err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}

	escrow, _ := f.escrowRepo.GetEscrowByID("esc-1")
	if escrow.Status != domain.EscrowReleasing {
		t.Fatalf("satisfied conditions must resume release, got %s", escrow.Status)
	}
}

func TestResolveDispute_SecondResolutionFails(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)
	dispute, _ := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "claim",
	})

	first := &disputedto.ResolveDisputeInput{
		DisputeID: dispute.ID, Resolution: domain.ResolutionBuyerFavor, ResolvedBy: "admin-1",
	}
	if err := f.uc.ResolveDispute(first); err != nil {
		t.Fatalf("first ResolveDispute: %v", err)
	}

	second := &disputedto.ResolveDisputeInput{
		DisputeID: dispute.ID, Resolution: domain.ResolutionSellerFavor, ResolvedBy: "admin-2",
	}
	if err := f.uc.ResolveDispute(second); !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("second resolution: expected ErrAlreadyDecided, got %v", err)
	}
}

func TestResolveDispute_FailedEscrowTransitionKeepsDisputeOpen(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)
	dispute, _ := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "claim",
	})

	// an admin cancel lands while the dispute is still open
	f.escrowRepo.setStatus("esc-1", domain.EscrowCancelled)

	input := &disputedto.ResolveDisputeInput{
		DisputeID: dispute.ID, Resolution: domain.ResolutionBuyerFavor, ResolvedBy: "admin-1",
	}
	err := f.uc.ResolveDispute(input)
	var stateErr *domain.InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("resolution against a cancelled escrow: expected InvalidStateError, got %v", err)
	}

	// the dispute must not be half-decided: no resolution recorded, no refund
	stored, _ := f.uc.GetDisputeByID(dispute.ID)
	if !stored.Status.Open() {
		t.Fatalf("dispute must stay open after a failed escrow transition, got %s", stored.Status)
	}
	f.gateway.mu.Lock()
	refunds := len(f.gateway.refunds)
	f.gateway.mu.Unlock()
	if refunds != 0 {
		t.Fatalf("no refund may be issued when the resolution did not apply")
	}

	// a retry still reports the real problem instead of a stale decision
	if err := f.uc.ResolveDispute(input); errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("retry must not be blocked by a phantom decision: %v", err)
	}
}

func TestOpenDispute_FailedTransitionLeavesNoDisputeRow(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowPendingPayment, false)

	if _, err := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "too early",
	}); err == nil {
		t.Fatalf("dispute before funds held must fail")
	}

	// the rejected open must not leave a PENDING row behind; a leftover
	// row would block auto-release of the escrow forever
	if _, err := f.uc.GetOpenDisputeByEscrowID("esc-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no dispute row after a failed open, got %v", err)
	}
	if n := len(f.disputeRepo.disputes); n != 0 {
		t.Fatalf("expected empty dispute store, found %d rows", n)
	}
}

func TestResolveDispute_InvalidResolution(t *testing.T) {
	f := newDisputeFixture()
	err := f.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID: "whatever", Resolution: "SPLIT_THE_BABY", ResolvedBy: "admin-1",
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("unknown resolution: expected ErrInvalidState, got %v", err)
	}
}

func TestResolveDispute_RecomputesFilerProfile(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)
	dispute, _ := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "claim",
	})

	if err := f.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID: dispute.ID, Resolution: domain.ResolutionSellerFavor, ResolvedBy: "admin-1",
	}); err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}

	f.recomputer.mu.Lock()
	defer f.recomputer.mu.Unlock()
	if len(f.recomputer.users) != 1 || f.recomputer.users[0] != "buyer-1" {
		t.Fatalf("resolution must recompute the filer's profile, got %v", f.recomputer.users)
	}
}

func TestEscalateDispute(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)
	dispute, _ := f.uc.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: "esc-1", FilerID: "buyer-1", Reason: "claim",
	})

	if err := f.uc.StartReview(dispute.ID); err != nil {
		t.Fatalf("StartReview: %v", err)
	}
	if err := f.uc.StartReview(dispute.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("review of a non-pending dispute: expected ErrInvalidState, got %v", err)
	}

	if err := f.uc.EscalateDispute(dispute.ID); err != nil {
		t.Fatalf("EscalateDispute: %v", err)
	}
	stored, _ := f.uc.GetDisputeByID(dispute.ID)
	if stored.Status != domain.DisputeEscalated {
		t.Fatalf("expected ESCALATED, got %s", stored.Status)
	}

	// escalation changes the handler, not the escrow
	escrow, _ := f.escrowRepo.GetEscrowByID("esc-1")
	if escrow.Status != domain.EscrowDisputed {
		t.Fatalf("escrow must stay DISPUTED through escalation, got %s", escrow.Status)
	}

	if err := f.uc.EscalateDispute(dispute.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("re-escalation: expected ErrInvalidState, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	f := newDisputeFixture()
	f.seedEscrow(t, "esc-1", domain.EscrowHeld, false)
	f.seedEscrow(t, "esc-2", domain.EscrowHeld, false)
	d1, _ := f.uc.OpenDispute(&disputedto.OpenDisputeInput{EscrowID: "esc-1", FilerID: "buyer-1", Reason: "a"})
	if _, err := f.uc.OpenDispute(&disputedto.OpenDisputeInput{EscrowID: "esc-2", FilerID: "buyer-1", Reason: "b"}); err != nil {
		t.Fatalf("OpenDispute: %v", err)
	}
	if err := f.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID: d1.ID, Resolution: domain.ResolutionSellerFavor, ResolvedBy: "admin-1",
	}); err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}

	summary, err := f.uc.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Open != 1 || summary.Resolved != 1 || summary.Total != 2 {
		t.Fatalf("expected 1 open / 1 resolved / 2 total, got %+v", summary)
	}
}
