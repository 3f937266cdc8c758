package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradelink/escrow-service/internal/domain"
	escrowdto "github.com/tradelink/escrow-service/internal/usecase/dto/escrow"
	usecase "github.com/tradelink/escrow-service/internal/usecase/escrow"
)

type EscrowHandler struct {
	escrowUsecase usecase.EscrowUsecase
}

func NewEscrowHandler(escrowUsecase usecase.EscrowUsecase) *EscrowHandler {
	return &EscrowHandler{escrowUsecase: escrowUsecase}
}

type createEscrowRequest struct {
	TransactionID   string     `json:"transaction_id"`
	BuyerID         string     `json:"buyer_id"`
	SellerID        string     `json:"seller_id"`
	TotalAmount     float64    `json:"total_amount"`
	Currency        string     `json:"currency"`
	AdvancePercent  float64    `json:"advance_percent"`
	ReleaseDeadline *time.Time `json:"release_deadline,omitempty"`
}

func (h *EscrowHandler) CreateEscrow(w http.ResponseWriter, r *http.Request) {
	var req createEscrowRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TransactionID == "" || req.BuyerID == "" || req.SellerID == "" {
		writeError(w, http.StatusBadRequest, "transaction_id, buyer_id and seller_id are required")
		return
	}

	escrow, err := h.escrowUsecase.CreateEscrow(&escrowdto.CreateEscrowInput{
		TransactionID:   req.TransactionID,
		BuyerID:         req.BuyerID,
		SellerID:        req.SellerID,
		TotalAmount:     req.TotalAmount,
		Currency:        req.Currency,
		AdvancePercent:  req.AdvancePercent,
		ReleaseDeadline: req.ReleaseDeadline,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, escrow)
}

// HoldFunds is the payment-captured webhook. Redelivery of the webhook
// for an already held escrow is rejected as an invalid transition.
func (h *EscrowHandler) HoldFunds(w http.ResponseWriter, r *http.Request) {
	escrowID := chi.URLParam(r, "id")
	if err := h.escrowUsecase.HoldFunds(escrowID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.EscrowHeld)})
}

type satisfyConditionRequest struct {
	ActorID   string           `json:"actor_id"`
	ActorRole domain.ActorRole `json:"actor_role"`
}

func (h *EscrowHandler) SatisfyCondition(w http.ResponseWriter, r *http.Request) {
	escrowID := chi.URLParam(r, "id")
	conditionType := domain.ConditionType(chi.URLParam(r, "type"))

	var req satisfyConditionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	actor := domain.Actor{ID: req.ActorID, Role: req.ActorRole}
	if err := h.escrowUsecase.MarkConditionSatisfied(escrowID, conditionType, actor); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"condition": string(conditionType), "satisfied_by": actor.Reference()})
}

func (h *EscrowHandler) ReleaseFunds(w http.ResponseWriter, r *http.Request) {
	escrowID := chi.URLParam(r, "id")
	if err := h.escrowUsecase.ReleaseFunds(escrowID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.EscrowReleased)})
}

type cancelEscrowRequest struct {
	Reason string `json:"reason"`
}

func (h *EscrowHandler) CancelEscrow(w http.ResponseWriter, r *http.Request) {
	escrowID := chi.URLParam(r, "id")
	var req cancelEscrowRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.escrowUsecase.Cancel(escrowID, req.Reason); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.EscrowCancelled)})
}

func (h *EscrowHandler) GetEscrow(w http.ResponseWriter, r *http.Request) {
	escrow, err := h.escrowUsecase.GetEscrowByID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, escrow)
}

func (h *EscrowHandler) GetEscrowByTransaction(w http.ResponseWriter, r *http.Request) {
	escrow, err := h.escrowUsecase.GetEscrowByTransactionID(chi.URLParam(r, "transactionID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, escrow)
}

func (h *EscrowHandler) ListEscrows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := domain.EscrowFilters{
		BuyerID:  q.Get("buyer_id"),
		SellerID: q.Get("seller_id"),
	}
	for _, s := range q["status"] {
		filters.Statuses = append(filters.Statuses, domain.EscrowStatus(s))
	}
	if from := q.Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = t
		}
	}
	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = t
		}
	}

	page := parseInt64Default(q.Get("page"), 1)
	limit := parseInt64Default(q.Get("limit"), 20)
	escrows, total, err := h.escrowUsecase.ListEscrows(page, limit, filters)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"escrows": escrows,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
