package domain

import "time"

type FlagStatus string

const (
	FlagActive        FlagStatus = "ACTIVE"
	FlagUnderReview   FlagStatus = "UNDER_REVIEW"
	FlagResolved      FlagStatus = "RESOLVED"
	FlagFalsePositive FlagStatus = "FALSE_POSITIVE"
)

type FlagSeverity string

const (
	FlagSeverityLow      FlagSeverity = "LOW"
	FlagSeverityMedium   FlagSeverity = "MEDIUM"
	FlagSeverityHigh     FlagSeverity = "HIGH"
	FlagSeverityCritical FlagSeverity = "CRITICAL"
)

type Flag struct {
	ID          string
	UserID      string
	FlagType    string
	Severity    FlagSeverity
	Description string
	Status      FlagStatus
	RaisedBy    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Punitive reports whether the flag still counts against the user's
// trust profile. Resolved and false-positive flags do not.
func (f *Flag) Punitive() bool {
	return f.Status == FlagActive || f.Status == FlagUnderReview
}

type FlagRepository interface {
	CreateFlag(flag *Flag) error
	GetFlagByID(flagID string) (*Flag, error)
	UpdateFlagStatus(flagID string, status FlagStatus) error
	ListFlags(userID string, activeOnly bool) ([]*Flag, error)
}

type BlacklistEntry struct {
	ID        string
	UserID    string
	Reason    string
	AddedBy   string
	CreatedAt time.Time
}

type BlacklistRepository interface {
	AddEntry(entry *BlacklistEntry) error
	GetEntryByID(entryID string) (*BlacklistEntry, error)
	RemoveEntry(entryID string) error
	IsBlacklisted(userID string) (bool, error)
}
