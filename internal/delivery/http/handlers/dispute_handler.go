package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradelink/escrow-service/internal/domain"
	usecase "github.com/tradelink/escrow-service/internal/usecase/dispute"
	disputedto "github.com/tradelink/escrow-service/internal/usecase/dto/dispute"
)

type DisputeHandler struct {
	disputeUsecase usecase.DisputeUsecase
}

func NewDisputeHandler(disputeUsecase usecase.DisputeUsecase) *DisputeHandler {
	return &DisputeHandler{disputeUsecase: disputeUsecase}
}

type openDisputeRequest struct {
	EscrowID string `json:"escrow_id"`
	FilerID  string `json:"filer_id"`
	Reason   string `json:"reason"`
}

func (h *DisputeHandler) OpenDispute(w http.ResponseWriter, r *http.Request) {
	var req openDisputeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.EscrowID == "" || req.FilerID == "" {
		writeError(w, http.StatusBadRequest, "escrow_id and filer_id are required")
		return
	}

	dispute, err := h.disputeUsecase.OpenDispute(&disputedto.OpenDisputeInput{
		EscrowID: req.EscrowID,
		FilerID:  req.FilerID,
		Reason:   req.Reason,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dispute)
}

func (h *DisputeHandler) StartReview(w http.ResponseWriter, r *http.Request) {
	if err := h.disputeUsecase.StartReview(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.DisputeUnderReview)})
}

func (h *DisputeHandler) EscalateDispute(w http.ResponseWriter, r *http.Request) {
	if err := h.disputeUsecase.EscalateDispute(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.DisputeEscalated)})
}

type resolveDisputeRequest struct {
	Resolution domain.DisputeResolution `json:"resolution"`
	ResolvedBy string                   `json:"resolved_by"`
}

func (h *DisputeHandler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	var req resolveDisputeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ResolvedBy == "" {
		writeError(w, http.StatusBadRequest, "resolved_by is required")
		return
	}
	err := h.disputeUsecase.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID:  chi.URLParam(r, "id"),
		Resolution: req.Resolution,
		ResolvedBy: req.ResolvedBy,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.DisputeResolved), "resolution": string(req.Resolution)})
}

func (h *DisputeHandler) GetDispute(w http.ResponseWriter, r *http.Request) {
	dispute, err := h.disputeUsecase.GetDisputeByID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dispute)
}

func (h *DisputeHandler) GetEscrowDispute(w http.ResponseWriter, r *http.Request) {
	dispute, err := h.disputeUsecase.GetOpenDisputeByEscrowID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dispute)
}

func (h *DisputeHandler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.disputeUsecase.ListDisputes(&disputedto.ListDisputesInput{
		Page:   parseInt64Default(q.Get("page"), 1),
		Limit:  parseInt64Default(q.Get("limit"), 20),
		Status: q.Get("status"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"disputes":   out.Disputes,
		"pagination": out.Pagination,
	})
}

func (h *DisputeHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.disputeUsecase.Summary()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
