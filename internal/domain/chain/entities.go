package chain

import (
	"errors"
	"time"
)

// Value-returned error taxonomy for approval decisions. HTTP mapping happens
// at the adapter boundary, not here.
var (
	ErrStaleLevel       = errors.New("decision targets a level that is not the current pending one")
	ErrRoleMismatch     = errors.New("acting role does not match the expected approver role")
	ErrAlreadyResolved  = errors.New("approval chain is already resolved")
	ErrInvalidPolicy    = errors.New("approval policy has no steps")
	ErrCommentsRequired = errors.New("comments are required")
	ErrInvalidDecision  = errors.New("decision must be approved or rejected")
)

// EntityType discriminates which table owns a chain's steps.
type EntityType string

const (
	EntityBudgetCode  EntityType = "budget_code"
	EntityRequisition EntityType = "requisition"
)

type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepApproved StepStatus = "approved"
	StepRejected StepStatus = "rejected"
)

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Approver is the identity expected to act at a level. Matching at decision
// time is by Role, not by individual.
type Approver struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Step is one level of an approval chain. Steps are keyed by their owning
// entity; level order is immutable after seeding (the single exception is the
// executive endorsement level a finance verification may append).
type Step struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EntityType    EntityType `gorm:"column:entity_type;size:32;not null;index:idx_steps_entity,priority:1;uniqueIndex:ux_steps_entity_level,priority:1" json:"-"`
	EntityID      uint64     `gorm:"column:entity_id;not null;index:idx_steps_entity,priority:2;uniqueIndex:ux_steps_entity_level,priority:2" json:"-"`
	Level         int        `gorm:"column:level;not null;uniqueIndex:ux_steps_entity_level,priority:3" json:"level"`
	ApproverName  string     `gorm:"column:approver_name;size:128;not null" json:"approver_name"`
	ApproverRole  string     `gorm:"column:approver_role;size:64;not null" json:"approver_role"`
	ApproverEmail string     `gorm:"column:approver_email;size:128" json:"approver_email"`
	Status        StepStatus `gorm:"column:status;size:16;not null;default:'pending'" json:"status"`
	Comments      string     `gorm:"column:comments;type:text" json:"comments"`
	ActionAt      *time.Time `gorm:"column:action_at" json:"action_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Step) TableName() string { return "approval_steps" }

func (s Step) Approver() Approver {
	return Approver{Name: s.ApproverName, Role: s.ApproverRole, Email: s.ApproverEmail}
}
