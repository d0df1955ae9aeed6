package chain

import "context"

type Repository interface {
	// CreateAll inserts a freshly seeded chain in one go.
	CreateAll(ctx context.Context, steps []Step) error

	// Create appends a single step (executive endorsement).
	Create(ctx context.Context, s *Step) error

	// ListByEntity returns the owning entity's steps ordered by level.
	ListByEntity(ctx context.Context, et EntityType, entityID uint64) ([]Step, error)

	Save(ctx context.Context, s *Step) error
}
