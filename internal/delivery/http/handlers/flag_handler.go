package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradelink/escrow-service/internal/domain"
	usecase "github.com/tradelink/escrow-service/internal/usecase/flags"
)

type FlagHandler struct {
	flagUsecase usecase.FlagUsecase
}

func NewFlagHandler(flagUsecase usecase.FlagUsecase) *FlagHandler {
	return &FlagHandler{flagUsecase: flagUsecase}
}

type raiseFlagRequest struct {
	UserID      string              `json:"user_id"`
	FlagType    string              `json:"flag_type"`
	Severity    domain.FlagSeverity `json:"severity"`
	Description string              `json:"description"`
	RaisedBy    string              `json:"raised_by"`
}

func (h *FlagHandler) RaiseFlag(w http.ResponseWriter, r *http.Request) {
	var req raiseFlagRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.FlagType == "" {
		writeError(w, http.StatusBadRequest, "user_id and flag_type are required")
		return
	}
	flag, err := h.flagUsecase.RaiseFlag(req.UserID, req.FlagType, req.Severity, req.Description, req.RaisedBy)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, flag)
}

func (h *FlagHandler) StartFlagReview(w http.ResponseWriter, r *http.Request) {
	if err := h.flagUsecase.StartFlagReview(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.FlagUnderReview)})
}

func (h *FlagHandler) ResolveFlag(w http.ResponseWriter, r *http.Request) {
	if err := h.flagUsecase.ResolveFlag(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.FlagResolved)})
}

func (h *FlagHandler) GetFlag(w http.ResponseWriter, r *http.Request) {
	flag, err := h.flagUsecase.GetFlagByID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flag)
}

func (h *FlagHandler) ListFlags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	flags, err := h.flagUsecase.ListFlags(userID, q.Get("active") == "true")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"flags": flags})
}

type addToBlacklistRequest struct {
	UserID  string `json:"user_id"`
	Reason  string `json:"reason"`
	AddedBy string `json:"added_by"`
}

func (h *FlagHandler) AddToBlacklist(w http.ResponseWriter, r *http.Request) {
	var req addToBlacklistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	entry, err := h.flagUsecase.AddToBlacklist(req.UserID, req.Reason, req.AddedBy)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *FlagHandler) RemoveFromBlacklist(w http.ResponseWriter, r *http.Request) {
	if err := h.flagUsecase.RemoveFromBlacklist(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *FlagHandler) CheckBlacklisted(w http.ResponseWriter, r *http.Request) {
	blacklisted, err := h.flagUsecase.IsBlacklisted(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"blacklisted": blacklisted})
}
