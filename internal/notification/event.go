package notification

import (
	"context"
	"time"

	"procurement-backend/internal/domain/chain"
)

type Kind string

const (
	// KindApprovalRequested goes to the next pending approver role.
	KindApprovalRequested Kind = "approval_requested"
	// KindRejected / KindFullyApproved go to the submitter.
	KindRejected      Kind = "rejected"
	KindFullyApproved Kind = "fully_approved"
)

// Event is the fire-and-forget message emitted after an approval transaction
// commits. It is advisory: losing one never affects chain state.
type Event struct {
	EventID        string           `json:"event_id"`
	Kind           Kind             `json:"kind"`
	EntityType     chain.EntityType `json:"entity_type"`
	EntityID       string           `json:"entity_id"` // public id
	EntityLabel    string           `json:"entity_label"`
	Level          int              `json:"level,omitempty"`
	RecipientRole  string           `json:"recipient_role,omitempty"`
	RecipientUser  string           `json:"recipient_user,omitempty"` // submitter id on terminal events
	RecipientEmail string           `json:"recipient_email,omitempty"`
	Comments       string           `json:"comments,omitempty"`
	OccurredAt     time.Time        `json:"occurred_at"`
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}
