package domain

import "time"

// AuditLog records who performed which posting operation, and its outcome.
type AuditLog struct {
	ID           string
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// Auditable actions.
const (
	AuditActionPost     = "posting.post"
	AuditActionReverse  = "posting.reverse"
	AuditActionTransfer = "posting.transfer"
)

// Audit statuses.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)
