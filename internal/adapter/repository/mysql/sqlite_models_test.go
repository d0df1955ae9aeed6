package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no enums/decimal specifics) ---

type budgetCodeSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	CodeID          string         `gorm:"size:64;uniqueIndex;column:code_id"`
	Code            string         `gorm:"size:64;column:code"`
	Name            string         `gorm:"size:128;column:name"`
	Department      string         `gorm:"size:64;column:department"`
	FiscalYear      int            `gorm:"column:fiscal_year"`
	Amount          float64        `gorm:"column:amount"`
	Currency        string         `gorm:"size:8;column:currency"`
	Description     string         `gorm:"column:description"`
	Status          string         `gorm:"size:48;column:status"`
	SubmittedBy     string         `gorm:"size:32;column:submitted_by"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy       string         `gorm:"column:deleted_by"`
}

func (budgetCodeSQLite) TableName() string { return "budget_codes" }

type requisitionSQLite struct {
	ID              uint64     `gorm:"primaryKey;column:id;autoIncrement"`
	RequisitionID   string     `gorm:"size:64;uniqueIndex;column:requisition_id"`
	Title           string     `gorm:"size:200;column:title"`
	Department      string     `gorm:"size:64;column:department"`
	CostCenter      string     `gorm:"size:64;column:cost_center"`
	EstimatedTotal  float64    `gorm:"column:estimated_total"`
	Currency        string     `gorm:"size:8;column:currency"`
	NeededBy        *time.Time `gorm:"column:needed_by"`
	Justification   string     `gorm:"column:justification"`
	BudgetAvailable *bool      `gorm:"column:budget_available"`
	AssignedBudget  float64    `gorm:"column:assigned_budget"`
	BudgetCode      string     `gorm:"size:64;column:budget_code"`

	RequiresAdditionalApproval bool       `gorm:"column:requires_additional_approval"`
	ExpectedCompletionDate     *time.Time `gorm:"column:expected_completion_date"`

	Status          string         `gorm:"size:48;column:status"`
	SubmittedBy     string         `gorm:"size:32;column:submitted_by"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy       string         `gorm:"column:deleted_by"`
}

func (requisitionSQLite) TableName() string { return "purchase_requisitions" }

type stepSQLite struct {
	ID            uint64     `gorm:"primaryKey;column:id;autoIncrement"`
	EntityType    string     `gorm:"size:32;column:entity_type;uniqueIndex:ux_steps_entity_level,priority:1"`
	EntityID      uint64     `gorm:"column:entity_id;uniqueIndex:ux_steps_entity_level,priority:2"`
	Level         int        `gorm:"column:level;uniqueIndex:ux_steps_entity_level,priority:3"`
	ApproverName  string     `gorm:"size:128;column:approver_name"`
	ApproverRole  string     `gorm:"size:64;column:approver_role"`
	ApproverEmail string     `gorm:"size:128;column:approver_email"`
	Status        string     `gorm:"size:16;column:status"`
	Comments      string     `gorm:"column:comments"`
	ActionAt      *time.Time `gorm:"column:action_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (stepSQLite) TableName() string { return "approval_steps" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, NOT the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&budgetCodeSQLite{}, &requisitionSQLite{}, &stepSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
