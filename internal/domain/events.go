package domain

// NotificationEvent is fanned out to collaborators on flag created,
// appeal decided, dispute opened/resolved, and escrow released.
type NotificationEvent struct {
	UserID       string `json:"user_id"`
	Type         string `json:"type"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	Message      string `json:"message"`
}

const (
	EventFlagCreated     = "FLAG_CREATED"
	EventAppealDecided   = "APPEAL_DECIDED"
	EventDisputeOpened   = "DISPUTE_OPENED"
	EventDisputeResolved = "DISPUTE_RESOLVED"
	EventEscrowReleased  = "ESCROW_RELEASED"
)

// EventPublisher is the outbound notification port.
type EventPublisher interface {
	PublishNotification(event NotificationEvent) error
}
