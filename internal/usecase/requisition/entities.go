package requisition

import (
	"time"
)

type CreateInput struct {
	Title          string  `json:"title"`
	Department     string  `json:"department"`
	CostCenter     string  `json:"cost_center"`
	EstimatedTotal float64 `json:"estimated_total"`
	NeededBy       string  `json:"needed_by"` // YYYY-MM-DD, optional
	Justification  string  `json:"justification"`
}

type DecisionInput struct {
	Level    int    `json:"level"`
	Decision string `json:"decision"`
	Comments string `json:"comments"`
}

// FinanceVerificationInput is the richer finance payload; the
// level/decision/comments contract underneath is the same as DecisionInput.
type FinanceVerificationInput struct {
	Level                      int     `json:"level"`
	Decision                   string  `json:"decision"`
	Comments                   string  `json:"comments"`
	BudgetAvailable            bool    `json:"budget_available"`
	AssignedBudget             float64 `json:"assigned_budget"`
	BudgetCode                 string  `json:"budget_code"`
	CostCenter                 string  `json:"cost_center"`
	RequiresAdditionalApproval bool    `json:"requires_additional_approval"`
	ExpectedCompletionDate     string  `json:"expected_completion_date"` // YYYY-MM-DD, optional
}

type StepDTO struct {
	Level         int    `json:"level"`
	ApproverName  string `json:"approver_name"`
	ApproverRole  string `json:"approver_role"`
	ApproverEmail string `json:"approver_email,omitempty"`
	Status        string `json:"status"`
	Comments      string `json:"comments,omitempty"`
	ActionDate    string `json:"action_date,omitempty"`
	ActionTime    string `json:"action_time,omitempty"`
}

type RequisitionDTO struct {
	RequisitionID  string     `json:"requisition_id"`
	Title          string     `json:"title"`
	Department     string     `json:"department"`
	CostCenter     string     `json:"cost_center,omitempty"`
	EstimatedTotal float64    `json:"estimated_total"`
	Currency       string     `json:"currency"`
	NeededBy       *time.Time `json:"needed_by,omitempty"`
	Justification  string     `json:"justification,omitempty"`

	BudgetAvailable            *bool      `json:"budget_available,omitempty"`
	AssignedBudget             float64    `json:"assigned_budget,omitempty"`
	BudgetCode                 string     `json:"budget_code,omitempty"`
	RequiresAdditionalApproval bool       `json:"requires_additional_approval"`
	ExpectedCompletionDate     *time.Time `json:"expected_completion_date,omitempty"`

	Status      string    `json:"status"`
	SubmittedBy string    `json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`
	Steps       []StepDTO `json:"approval_steps,omitempty"`
}
