package uow

import (
	"context"

	"procurement-backend/internal/domain/budgetcode"
	"procurement-backend/internal/domain/chain"
	"procurement-backend/internal/domain/requisition"
)

type Repos struct {
	BudgetCodes  budgetcode.Repository
	Requisitions requisition.Repository
	Steps        chain.Repository
}

// UnitOfWork scopes repository work to one DB transaction. The entity-scoped
// variants lock the owning row first so concurrent decisions on the same
// chain serialize at the persistence layer.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	WithinBudgetCodeTx(ctx context.Context, codeID string, fn func(r Repos, bc *budgetcode.BudgetCode) error) error
	WithinRequisitionTx(ctx context.Context, requisitionID string, fn func(r Repos, pr *requisition.Requisition) error) error
}
