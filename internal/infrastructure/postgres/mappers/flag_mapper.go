package mappers

import (
	"github.com/tradelink/escrow-service/internal/domain"
	"github.com/tradelink/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainFlag(model *models.FlagModel) *domain.Flag {
	return &domain.Flag{
		ID:          model.ID,
		UserID:      model.UserID,
		FlagType:    model.FlagType,
		Severity:    domain.FlagSeverity(model.Severity),
		Description: model.Description,
		Status:      domain.FlagStatus(model.Status),
		RaisedBy:    model.RaisedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMFlag(flag *domain.Flag) *models.FlagModel {
	return &models.FlagModel{
		ID:          flag.ID,
		UserID:      flag.UserID,
		FlagType:    flag.FlagType,
		Severity:    string(flag.Severity),
		Description: flag.Description,
		Status:      string(flag.Status),
		RaisedBy:    flag.RaisedBy,
		CreatedAt:   flag.CreatedAt,
		UpdatedAt:   flag.UpdatedAt,
	}
}

func ToDomainAppeal(model *models.AppealModel) *domain.Appeal {
	return &domain.Appeal{
		ID:            model.ID,
		UserID:        model.UserID,
		AppealType:    domain.AppealType(model.AppealType),
		TargetID:      model.TargetID,
		Reason:        model.Reason,
		Status:        domain.AppealStatus(model.Status),
		AdminDecision: model.AdminDecision,
		ReviewedBy:    model.ReviewedBy,
		CreatedAt:     model.CreatedAt,
		DecidedAt:     model.DecidedAt,
	}
}

func ToGORMAppeal(appeal *domain.Appeal) *models.AppealModel {
	return &models.AppealModel{
		ID:            appeal.ID,
		UserID:        appeal.UserID,
		AppealType:    string(appeal.AppealType),
		TargetID:      appeal.TargetID,
		Reason:        appeal.Reason,
		Status:        string(appeal.Status),
		AdminDecision: appeal.AdminDecision,
		ReviewedBy:    appeal.ReviewedBy,
		CreatedAt:     appeal.CreatedAt,
		DecidedAt:     appeal.DecidedAt,
	}
}

func ToDomainBlacklistEntry(model *models.BlacklistModel) *domain.BlacklistEntry {
	return &domain.BlacklistEntry{
		ID:        model.ID,
		UserID:    model.UserID,
		Reason:    model.Reason,
		AddedBy:   model.AddedBy,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMBlacklistEntry(entry *domain.BlacklistEntry) *models.BlacklistModel {
	return &models.BlacklistModel{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Reason:    entry.Reason,
		AddedBy:   entry.AddedBy,
		CreatedAt: entry.CreatedAt,
	}
}
