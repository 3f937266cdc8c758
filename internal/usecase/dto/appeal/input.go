package appealdto

import "github.com/tradelink/escrow-service/internal/domain"

type SubmitAppealInput struct {
	UserID     string
	AppealType domain.AppealType
	TargetID   string
	Reason     string
}

type ReviewAppealInput struct {
	AppealID   string
	Decision   domain.AppealStatus
	Note       string
	ReviewerID string
}
