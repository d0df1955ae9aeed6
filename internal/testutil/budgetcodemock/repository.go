package budgetcodemock

import (
	"context"

	domain "procurement-backend/internal/domain/budgetcode"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies budgetcode.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn               func(ctx context.Context, bc *domain.BudgetCode) error
	SaveFn                 func(ctx context.Context, bc *domain.BudgetCode) error
	DeleteFn               func(ctx context.Context, bc *domain.BudgetCode) error
	GetByCodeIDFn          func(ctx context.Context, codeID string) (*domain.BudgetCode, error)
	GetByCodeIDForUpdateFn func(ctx context.Context, codeID string) (*domain.BudgetCode, error)

	GetLiveByCodeForUpdateFn func(ctx context.Context, code string) (*domain.BudgetCode, error)

	ListFn           func(ctx context.Context, f domain.Filter) ([]domain.BudgetCode, error)
	ListByStatusesFn func(ctx context.Context, statuses []domain.Status) ([]domain.BudgetCode, error)
}

func (m *Repo) Create(ctx context.Context, bc *domain.BudgetCode) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, bc)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, bc *domain.BudgetCode) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, bc)
	}
	return nil
}

func (m *Repo) GetByCodeID(ctx context.Context, codeID string) (*domain.BudgetCode, error) {
	if m.GetByCodeIDFn != nil {
		return m.GetByCodeIDFn(ctx, codeID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByCodeIDForUpdate(ctx context.Context, codeID string) (*domain.BudgetCode, error) {
	if m.GetByCodeIDForUpdateFn != nil {
		return m.GetByCodeIDForUpdateFn(ctx, codeID)
	}
	return nil, context.Canceled
}

func (m *Repo) Delete(ctx context.Context, bc *domain.BudgetCode) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, bc)
	}
	return nil
}

func (m *Repo) GetLiveByCodeForUpdate(ctx context.Context, code string) (*domain.BudgetCode, error) {
	if m.GetLiveByCodeForUpdateFn != nil {
		return m.GetLiveByCodeForUpdateFn(ctx, code)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.BudgetCode, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) ListByStatuses(ctx context.Context, statuses []domain.Status) ([]domain.BudgetCode, error) {
	if m.ListByStatusesFn != nil {
		return m.ListByStatusesFn(ctx, statuses)
	}
	return nil, nil
}
