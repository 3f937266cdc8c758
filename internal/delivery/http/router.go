package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tradelink/escrow-service/internal/delivery/http/handlers"
	appealuc "github.com/tradelink/escrow-service/internal/usecase/appeal"
	disputeuc "github.com/tradelink/escrow-service/internal/usecase/dispute"
	escrowuc "github.com/tradelink/escrow-service/internal/usecase/escrow"
	flaguc "github.com/tradelink/escrow-service/internal/usecase/flags"
	riskuc "github.com/tradelink/escrow-service/internal/usecase/risk"
)

// NewRouter mounts the full API surface. Webhook endpoints from payment
// and marketplace collaborators live under the same /api/v1 prefix as
// the admin and query routes.
func NewRouter(
	escrowUsecase escrowuc.EscrowUsecase,
	riskUsecase riskuc.RiskUsecase,
	disputeUsecase disputeuc.DisputeUsecase,
	appealUsecase appealuc.AppealUsecase,
	flagUsecase flaguc.FlagUsecase,
) http.Handler {
	escrowHandler := handlers.NewEscrowHandler(escrowUsecase)
	riskHandler := handlers.NewRiskHandler(riskUsecase)
	disputeHandler := handlers.NewDisputeHandler(disputeUsecase)
	appealHandler := handlers.NewAppealHandler(appealUsecase)
	flagHandler := handlers.NewFlagHandler(flagUsecase)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/escrows", func(r chi.Router) {
			r.Post("/", escrowHandler.CreateEscrow)
			r.Get("/", escrowHandler.ListEscrows)
			r.Get("/{id}", escrowHandler.GetEscrow)
			r.Post("/{id}/hold", escrowHandler.HoldFunds)
			r.Post("/{id}/conditions/{type}/satisfy", escrowHandler.SatisfyCondition)
			r.Post("/{id}/release", escrowHandler.ReleaseFunds)
			r.Post("/{id}/cancel", escrowHandler.CancelEscrow)
			r.Get("/{id}/dispute", disputeHandler.GetEscrowDispute)
		})
		r.Get("/transactions/{transactionID}/escrow", escrowHandler.GetEscrowByTransaction)

		r.Route("/risk", func(r chi.Router) {
			r.Post("/assessments", riskHandler.AssessTransaction)
			r.Get("/assessments/{transactionID}", riskHandler.GetAssessment)
			r.Post("/assessments/{transactionID}/override", riskHandler.OverrideAssessment)

			r.Get("/profiles/{userID}", riskHandler.GetProfile)
			r.Post("/profiles/{userID}/recompute", riskHandler.RecomputeProfile)
			r.Get("/profiles/{userID}/restrictions", riskHandler.ListRestrictions)
			r.Get("/profiles/{userID}/alerts", riskHandler.ListAlerts)
			r.Get("/profiles/{userID}/history", riskHandler.ListHistory)

			r.Post("/restrictions", riskHandler.ApplyRestriction)
			r.Delete("/restrictions/{id}", riskHandler.RemoveRestriction)

			r.Post("/check", riskHandler.CheckTransaction)
		})

		r.Route("/disputes", func(r chi.Router) {
			r.Post("/", disputeHandler.OpenDispute)
			r.Get("/", disputeHandler.ListDisputes)
			r.Get("/summary", disputeHandler.GetSummary)
			r.Get("/{id}", disputeHandler.GetDispute)
			r.Post("/{id}/review", disputeHandler.StartReview)
			r.Post("/{id}/escalate", disputeHandler.EscalateDispute)
			r.Post("/{id}/resolve", disputeHandler.ResolveDispute)
		})

		r.Route("/appeals", func(r chi.Router) {
			r.Post("/", appealHandler.SubmitAppeal)
			r.Get("/", appealHandler.ListAppeals)
			r.Get("/{id}", appealHandler.GetAppeal)
			r.Post("/{id}/review", appealHandler.ReviewAppeal)
		})

		r.Route("/flags", func(r chi.Router) {
			r.Post("/", flagHandler.RaiseFlag)
			r.Get("/", flagHandler.ListFlags)
			r.Get("/{id}", flagHandler.GetFlag)
			r.Post("/{id}/review", flagHandler.StartFlagReview)
			r.Post("/{id}/resolve", flagHandler.ResolveFlag)
		})

		r.Route("/blacklist", func(r chi.Router) {
			r.Post("/", flagHandler.AddToBlacklist)
			r.Delete("/{id}", flagHandler.RemoveFromBlacklist)
			r.Get("/{userID}", flagHandler.CheckBlacklisted)
		})
	})

	return r
}
