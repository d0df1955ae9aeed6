package requisitionmock

import (
	"context"

	domain "procurement-backend/internal/domain/requisition"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies requisition.Repository.
type Repo struct {
	CreateFn                      func(ctx context.Context, pr *domain.Requisition) error
	SaveFn                        func(ctx context.Context, pr *domain.Requisition) error
	DeleteFn                      func(ctx context.Context, pr *domain.Requisition) error
	GetByRequisitionIDFn         func(ctx context.Context, requisitionID string) (*domain.Requisition, error)
	GetByRequisitionIDForUpdateFn func(ctx context.Context, requisitionID string) (*domain.Requisition, error)
	ListFn                        func(ctx context.Context, f domain.Filter) ([]domain.Requisition, error)
	ListByStatusesFn              func(ctx context.Context, statuses []domain.Status) ([]domain.Requisition, error)
}

func (m *Repo) Create(ctx context.Context, pr *domain.Requisition) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, pr)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, pr *domain.Requisition) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, pr)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, pr *domain.Requisition) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, pr)
	}
	return nil
}

func (m *Repo) GetByRequisitionID(ctx context.Context, requisitionID string) (*domain.Requisition, error) {
	if m.GetByRequisitionIDFn != nil {
		return m.GetByRequisitionIDFn(ctx, requisitionID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRequisitionIDForUpdate(ctx context.Context, requisitionID string) (*domain.Requisition, error) {
	if m.GetByRequisitionIDForUpdateFn != nil {
		return m.GetByRequisitionIDForUpdateFn(ctx, requisitionID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Requisition, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) ListByStatuses(ctx context.Context, statuses []domain.Status) ([]domain.Requisition, error) {
	if m.ListByStatusesFn != nil {
		return m.ListByStatusesFn(ctx, statuses)
	}
	return nil, nil
}
