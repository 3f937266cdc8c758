package postgres

import (
	"log"

	"github.com/tradelink/escrow-service/internal/config"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.EscrowConfig) *gorm.DB {
	dsn := cfg.EscrowDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.TransactionModel{},
		&models.EscrowModel{},
		&models.ConditionModel{},
		&models.DisputeModel{},
		&models.RiskAssessmentModel{},
		&models.RiskProfileModel{},
		&models.RestrictionModel{},
		&models.AlertModel{},
		&models.RiskHistoryModel{},
		&models.FlagModel{},
		&models.BlacklistModel{},
		&models.AppealModel{},
	)

	return db
}
