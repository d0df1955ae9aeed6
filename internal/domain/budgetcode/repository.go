package budgetcode

import "context"

type Filter struct {
	Department string
	FiscalYear int
	Status     Status
}

type Repository interface {
	Create(ctx context.Context, bc *BudgetCode) error
	Save(ctx context.Context, bc *BudgetCode) error

	// Delete soft-deletes the row. Callers must have verified the chain is
	// still decision-free (ErrHasDecisions is the usecase's to return).
	Delete(ctx context.Context, bc *BudgetCode) error

	GetByCodeID(ctx context.Context, codeID string) (*BudgetCode, error)
	// GetByCodeIDForUpdate locks the row for the duration of the enclosing tx.
	GetByCodeIDForUpdate(ctx context.Context, codeID string) (*BudgetCode, error)
	// GetLiveByCodeForUpdate finds a non-rejected row with the same code
	// literal, locking the code's index range so concurrent creates of the
	// same literal serialize (duplicate-code guard on create).
	GetLiveByCodeForUpdate(ctx context.Context, code string) (*BudgetCode, error)

	List(ctx context.Context, f Filter) ([]BudgetCode, error)
	ListByStatuses(ctx context.Context, statuses []Status) ([]BudgetCode, error)
}
