package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradelink/escrow-service/internal/domain"
	riskdto "github.com/tradelink/escrow-service/internal/usecase/dto/risk"
	usecase "github.com/tradelink/escrow-service/internal/usecase/risk"
)

type RiskHandler struct {
	riskUsecase usecase.RiskUsecase
}

func NewRiskHandler(riskUsecase usecase.RiskUsecase) *RiskHandler {
	return &RiskHandler{riskUsecase: riskUsecase}
}

type assessTransactionRequest struct {
	TransactionID string  `json:"transaction_id"`
	BuyerID       string  `json:"buyer_id"`
	SellerID      string  `json:"seller_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Category      string  `json:"category"`
}

// AssessTransaction is the transaction-approved webhook. Redelivery
// returns the stored assessment unchanged.
func (h *RiskHandler) AssessTransaction(w http.ResponseWriter, r *http.Request) {
	var req assessTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TransactionID == "" || req.BuyerID == "" {
		writeError(w, http.StatusBadRequest, "transaction_id and buyer_id are required")
		return
	}

	assessment, err := h.riskUsecase.AssessTransaction(&domain.Transaction{
		ID:        req.TransactionID,
		BuyerID:   req.BuyerID,
		SellerID:  req.SellerID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Category:  req.Category,
		Status:    domain.TxnApproved,
		CreatedAt: time.Now(),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func (h *RiskHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.riskUsecase.GetAssessment(chi.URLParam(r, "transactionID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

type overrideAssessmentRequest struct {
	Action  domain.RecommendedAction `json:"action"`
	AdminID string                   `json:"admin_id"`
}

func (h *RiskHandler) OverrideAssessment(w http.ResponseWriter, r *http.Request) {
	var req overrideAssessmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AdminID == "" {
		writeError(w, http.StatusBadRequest, "admin_id is required")
		return
	}
	if err := h.riskUsecase.OverrideAssessment(chi.URLParam(r, "transactionID"), req.Action, req.AdminID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"action": string(req.Action), "overridden_by": req.AdminID})
}

func (h *RiskHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.riskUsecase.GetProfile(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *RiskHandler) RecomputeProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.riskUsecase.RecomputeProfile(chi.URLParam(r, "userID"), "manual recompute")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type applyRestrictionRequest struct {
	UserID           string                 `json:"user_id"`
	Type             domain.RestrictionType `json:"type"`
	DailyLimit       float64                `json:"daily_limit"`
	MonthlyLimit     float64                `json:"monthly_limit"`
	PerTxnLimit      float64                `json:"per_txn_limit"`
	AffectedCategory string                 `json:"affected_category"`
	Reason           string                 `json:"reason"`
	AppliedBy        string                 `json:"applied_by"`
}

func (h *RiskHandler) ApplyRestriction(w http.ResponseWriter, r *http.Request) {
	var req applyRestrictionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	restriction, err := h.riskUsecase.ApplyRestriction(&riskdto.ApplyRestrictionInput{
		UserID:           req.UserID,
		Type:             req.Type,
		DailyLimit:       req.DailyLimit,
		MonthlyLimit:     req.MonthlyLimit,
		PerTxnLimit:      req.PerTxnLimit,
		AffectedCategory: req.AffectedCategory,
		Reason:           req.Reason,
		AppliedBy:        req.AppliedBy,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, restriction)
}

func (h *RiskHandler) RemoveRestriction(w http.ResponseWriter, r *http.Request) {
	if err := h.riskUsecase.RemoveRestriction(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *RiskHandler) ListRestrictions(w http.ResponseWriter, r *http.Request) {
	restrictions, err := h.riskUsecase.ListActiveRestrictions(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"restrictions": restrictions})
}

func (h *RiskHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	limit := parseInt64Default(r.URL.Query().Get("limit"), 20)
	alerts, err := h.riskUsecase.ListAlerts(chi.URLParam(r, "userID"), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

func (h *RiskHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt64Default(r.URL.Query().Get("limit"), 50)
	history, err := h.riskUsecase.ListHistory(chi.URLParam(r, "userID"), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

type checkTransactionRequest struct {
	UserID   string  `json:"user_id"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// CheckTransaction is the pre-authorization gate the payment
// collaborator calls before capturing funds.
func (h *RiskHandler) CheckTransaction(w http.ResponseWriter, r *http.Request) {
	var req checkTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.riskUsecase.CheckTransactionAllowed(req.UserID, req.Amount, req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
