package uowmock

import (
	"context"
	"errors"

	"procurement-backend/internal/domain/budgetcode"
	"procurement-backend/internal/domain/requisition"
	"procurement-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinBudgetCodeTxFn  func(ctx context.Context, codeID string, fn func(r uow.Repos, bc *budgetcode.BudgetCode) error) error
	WithinRequisitionTxFn func(ctx context.Context, requisitionID string, fn func(r uow.Repos, pr *requisition.Requisition) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinBudgetCodeTx(ctx context.Context, codeID string, fn func(r uow.Repos, bc *budgetcode.BudgetCode) error) error {
	if m.WithinBudgetCodeTxFn != nil {
		return m.WithinBudgetCodeTxFn(ctx, codeID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinRequisitionTx(ctx context.Context, requisitionID string, fn func(r uow.Repos, pr *requisition.Requisition) error) error {
	if m.WithinRequisitionTxFn != nil {
		return m.WithinRequisitionTxFn(ctx, requisitionID, fn)
	}
	return errUnimplemented
}
