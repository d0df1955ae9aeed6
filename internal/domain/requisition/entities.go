package requisition

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("requisition not found")
	// ErrHasDecisions guards the audit trail (same rule as budget codes).
	ErrHasDecisions = errors.New("requisition has recorded approval decisions")
)

type Status string

const (
	StatusPendingDepartmental         Status = "pending_departmental_approval"
	StatusPendingFinanceVerification  Status = "pending_finance_verification"
	StatusPendingExecutiveEndorsement Status = "pending_executive_endorsement"
	// Full chain approval hands the requisition to the supply-chain workflow;
	// terminal for the chain, not for the requisition.
	StatusPendingSupplyChainReview Status = "pending_supply_chain_review"
	StatusRejected                 Status = "rejected"
)

func PendingStatuses() []Status {
	return []Status{StatusPendingDepartmental, StatusPendingFinanceVerification, StatusPendingExecutiveEndorsement}
}

// Requisition is an employee purchase request under multi-level verification.
// The finance-verification fields stay zero until the Finance Officer level
// records its decision.
type Requisition struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RequisitionID  string     `gorm:"column:requisition_id;type:char(32);not null;uniqueIndex:ux_requisitions_req_id_active" json:"requisition_id"`
	Title          string     `gorm:"column:title;size:200;not null" json:"title"`
	Department     string     `gorm:"column:department;size:64;not null;index" json:"department"`
	CostCenter     string     `gorm:"column:cost_center;size:64" json:"cost_center"`
	EstimatedTotal float64    `gorm:"column:estimated_total;type:decimal(18,2);not null" json:"estimated_total"`
	Currency       string     `gorm:"column:currency;size:8;not null;default:'XAF'" json:"currency"`
	NeededBy       *time.Time `gorm:"column:needed_by;type:date" json:"needed_by,omitempty"`
	Justification  string     `gorm:"column:justification;type:text" json:"justification"`

	// Finance verification outcome.
	BudgetAvailable            *bool      `gorm:"column:budget_available" json:"budget_available,omitempty"`
	AssignedBudget             float64    `gorm:"column:assigned_budget;type:decimal(18,2)" json:"assigned_budget"`
	BudgetCode                 string     `gorm:"column:budget_code;size:64" json:"budget_code"`
	RequiresAdditionalApproval bool       `gorm:"column:requires_additional_approval" json:"requires_additional_approval"`
	ExpectedCompletionDate     *time.Time `gorm:"column:expected_completion_date;type:date" json:"expected_completion_date,omitempty"`

	Status          Status         `gorm:"column:status;size:48;not null;index" json:"status"`
	SubmittedBy     string         `gorm:"column:submitted_by;type:char(32);not null" json:"submitted_by"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy       string         `gorm:"column:deleted_by;type:char(32)" json:"-"`
}

func (Requisition) TableName() string { return "purchase_requisitions" }
