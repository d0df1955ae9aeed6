package budgetcode

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("budget code not found")
	ErrDuplicateCode = errors.New("budget code already exists")
	// ErrHasDecisions guards the audit trail: a code with any recorded
	// decision can never be deleted.
	ErrHasDecisions = errors.New("budget code has recorded approval decisions")
)

type Status string

const (
	StatusPendingDepartmental      Status = "pending_departmental_approval"
	StatusPendingHeadOfBusiness    Status = "pending_head_of_business"
	StatusPendingFinanceActivation Status = "pending_finance_activation"
	StatusActive                   Status = "active"
	StatusRejected                 Status = "rejected"
)

// PendingStatuses lists the statuses under which a chain still has work left.
// Used as an index-friendly prefilter for the approver inboxes; the chain
// itself stays authoritative.
func PendingStatuses() []Status {
	return []Status{StatusPendingDepartmental, StatusPendingHeadOfBusiness, StatusPendingFinanceActivation}
}

// BudgetCode is an XAF budget allocation that becomes usable (`active`) only
// after its approval chain fully approves. Status mirrors the chain and is
// recomputed on every transition, never edited directly.
type BudgetCode struct {
	ID              uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CodeID          string         `gorm:"column:code_id;type:char(32);not null;uniqueIndex:ux_budget_codes_code_id_active" json:"code_id"`
	Code            string         `gorm:"column:code;size:64;not null;index:idx_budget_codes_code" json:"code"`
	Name            string         `gorm:"column:name;size:128;not null" json:"name"`
	Department      string         `gorm:"column:department;size:64;not null;index" json:"department"`
	FiscalYear      int            `gorm:"column:fiscal_year;not null;index" json:"fiscal_year"`
	Amount          float64        `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Currency        string         `gorm:"column:currency;size:8;not null;default:'XAF'" json:"currency"`
	Description     string         `gorm:"column:description;type:text" json:"description"`
	Status          Status         `gorm:"column:status;size:48;not null;index" json:"status"`
	SubmittedBy     string         `gorm:"column:submitted_by;type:char(32);not null" json:"submitted_by"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy       string         `gorm:"column:deleted_by;type:char(32)" json:"-"`
}

func (BudgetCode) TableName() string { return "budget_codes" }
