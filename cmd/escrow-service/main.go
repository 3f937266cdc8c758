package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tradelink/escrow-service/internal/client"
	"github.com/tradelink/escrow-service/internal/config"
	delivery "github.com/tradelink/escrow-service/internal/delivery/http"
	"github.com/tradelink/escrow-service/internal/infrastructure/kafka"
	"github.com/tradelink/escrow-service/internal/infrastructure/metrics"
	"github.com/tradelink/escrow-service/internal/infrastructure/migrate"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/repository"
	appealuc "github.com/tradelink/escrow-service/internal/usecase/appeal"
	disputeuc "github.com/tradelink/escrow-service/internal/usecase/dispute"
	escrowuc "github.com/tradelink/escrow-service/internal/usecase/escrow"
	flaguc "github.com/tradelink/escrow-service/internal/usecase/flags"
	riskuc "github.com/tradelink/escrow-service/internal/usecase/risk"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	cfg := config.MustLoad()
	db := postgres.MustInitDB(cfg)

	if cfg.EscrowDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.EscrowDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	notificationPublisher := kafka.NewNotificationPublisher(brokers, cfg.KafkaService.NotificationTopic)
	defer notificationPublisher.Close()

	escrowMetrics := metrics.NewEscrowMetrics()

	kybClient := client.NewHTTPKYBClient(fmt.Sprintf("http://%s:%s", cfg.KYBService.Host, cfg.KYBService.Port))
	paymentClient := client.NewHTTPPaymentClient(fmt.Sprintf("http://%s:%s", cfg.PaymentService.Host, cfg.PaymentService.Port))

	newID, err := nanoid.Standard(15)
	if err != nil {
		log.Fatalf("failed to init id generator: %v", err)
	}

	escrowRepo := repository.NewDefaultEscrowRepository(db)
	riskRepo := repository.NewDefaultRiskRepository(db)
	txnRepo := repository.NewDefaultTransactionRepository(db)
	flagRepo := repository.NewDefaultFlagRepository(db)
	blacklistRepo := repository.NewDefaultBlacklistRepository(db)
	appealRepo := repository.NewDefaultAppealRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)

	scoringCfg := riskuc.ScoringConfig{
		HighValueThreshold: cfg.Risk.HighValueThreshold,
		VelocityWindow:     time.Duration(cfg.Risk.VelocityWindowMinutes) * time.Minute,
		VelocityMaxCount:   cfg.Risk.VelocityMaxCount,
		NightHourFrom:      cfg.Risk.NightHourFrom,
		NightHourTo:        cfg.Risk.NightHourTo,
	}

	escrowUsecase := escrowuc.NewDefaultEscrowUsecase(escrowRepo, notificationPublisher, escrowMetrics, cfg.Risk.DefaultAdvancePercent)
	riskUsecase := riskuc.NewDefaultRiskUsecase(
		riskRepo,
		txnRepo,
		flagRepo,
		disputeRepo,
		blacklistRepo,
		kybClient,
		notificationPublisher,
		escrowMetrics,
		scoringCfg,
		newID,
	)
	flagUsecase := flaguc.NewDefaultFlagUsecase(flagRepo, blacklistRepo, riskUsecase, notificationPublisher, escrowMetrics, newID)
	appealUsecase := appealuc.NewDefaultAppealUsecase(appealRepo, flagRepo, blacklistRepo, riskUsecase, notificationPublisher, escrowMetrics, newID)
	disputeUsecase := disputeuc.NewDefaultDisputeUsecase(disputeRepo, escrowRepo, paymentClient, riskUsecase, notificationPublisher, escrowMetrics, newID)

	// Release-deadline scheduler: elapsed-time conditions are satisfied
	// by wall clock, never by user action.
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		for {
			<-ticker.C
			if err := escrowUsecase.SatisfyDueTimeConditions(time.Now()); err != nil {
				escrowMetrics.RecordError("due_time_sweep", "sweep_failed")
				slog.Error("elapsed-time sweep failed", "error", err.Error())
			}
		}
	}()

	router := delivery.NewRouter(escrowUsecase, riskUsecase, disputeUsecase, appealUsecase, flagUsecase)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
