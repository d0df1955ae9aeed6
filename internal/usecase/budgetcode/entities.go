package budgetcode

import (
	"time"
)

type CreateInput struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Department  string  `json:"department"`
	FiscalYear  int     `json:"fiscal_year"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type DecisionInput struct {
	Level    int    `json:"level"`
	Decision string `json:"decision"`
	Comments string `json:"comments"`
}

type StepDTO struct {
	Level         int    `json:"level"`
	ApproverName  string `json:"approver_name"`
	ApproverRole  string `json:"approver_role"`
	ApproverEmail string `json:"approver_email,omitempty"`
	Status        string `json:"status"`
	Comments      string `json:"comments,omitempty"`
	ActionDate    string `json:"action_date,omitempty"` // YYYY-MM-DD
	ActionTime    string `json:"action_time,omitempty"` // HH:MM:SS UTC
}

type BudgetCodeDTO struct {
	CodeID      string    `json:"code_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	FiscalYear  int       `json:"fiscal_year"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	SubmittedBy string    `json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`
	Steps       []StepDTO `json:"approval_steps,omitempty"`
}
