package stepmock

import (
	"context"

	"procurement-backend/internal/domain/chain"
)

var _ chain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies chain.Repository.
type Repo struct {
	CreateAllFn    func(ctx context.Context, steps []chain.Step) error
	CreateFn       func(ctx context.Context, s *chain.Step) error
	ListByEntityFn func(ctx context.Context, et chain.EntityType, entityID uint64) ([]chain.Step, error)
	SaveFn         func(ctx context.Context, s *chain.Step) error
}

func (m *Repo) CreateAll(ctx context.Context, steps []chain.Step) error {
	if m.CreateAllFn != nil {
		return m.CreateAllFn(ctx, steps)
	}
	return nil
}

func (m *Repo) Create(ctx context.Context, s *chain.Step) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) ListByEntity(ctx context.Context, et chain.EntityType, entityID uint64) ([]chain.Step, error) {
	if m.ListByEntityFn != nil {
		return m.ListByEntityFn(ctx, et, entityID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, s *chain.Step) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}
