package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradelink/escrow-service/internal/domain"
	usecase "github.com/tradelink/escrow-service/internal/usecase/appeal"
	appealdto "github.com/tradelink/escrow-service/internal/usecase/dto/appeal"
)

type AppealHandler struct {
	appealUsecase usecase.AppealUsecase
}

func NewAppealHandler(appealUsecase usecase.AppealUsecase) *AppealHandler {
	return &AppealHandler{appealUsecase: appealUsecase}
}

type submitAppealRequest struct {
	UserID     string            `json:"user_id"`
	AppealType domain.AppealType `json:"appeal_type"`
	TargetID   string            `json:"target_id"`
	Reason     string            `json:"reason"`
}

func (h *AppealHandler) SubmitAppeal(w http.ResponseWriter, r *http.Request) {
	var req submitAppealRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.TargetID == "" {
		writeError(w, http.StatusBadRequest, "user_id and target_id are required")
		return
	}

	appeal, err := h.appealUsecase.SubmitAppeal(&appealdto.SubmitAppealInput{
		UserID:     req.UserID,
		AppealType: req.AppealType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appeal)
}

type reviewAppealRequest struct {
	Decision   domain.AppealStatus `json:"decision"`
	Note       string              `json:"note"`
	ReviewerID string              `json:"reviewer_id"`
}

func (h *AppealHandler) ReviewAppeal(w http.ResponseWriter, r *http.Request) {
	var req reviewAppealRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ReviewerID == "" {
		writeError(w, http.StatusBadRequest, "reviewer_id is required")
		return
	}
	err := h.appealUsecase.ReviewAppeal(&appealdto.ReviewAppealInput{
		AppealID:   chi.URLParam(r, "id"),
		Decision:   req.Decision,
		Note:       req.Note,
		ReviewerID: req.ReviewerID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"decision": string(req.Decision)})
}

func (h *AppealHandler) GetAppeal(w http.ResponseWriter, r *http.Request) {
	appeal, err := h.appealUsecase.GetAppealByID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appeal)
}

func (h *AppealHandler) ListAppeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	page := parseInt64Default(q.Get("page"), 1)
	limit := parseInt64Default(q.Get("limit"), 20)
	appeals, total, err := h.appealUsecase.ListAppeals(userID, page, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"appeals": appeals,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
