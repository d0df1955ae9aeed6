package mysql

import (
	"context"

	"procurement-backend/internal/domain/chain"

	"gorm.io/gorm"
)

type StepRepository struct{ db *gorm.DB }

func NewStepRepository(db *gorm.DB) *StepRepository { return &StepRepository{db: db} }

func (r *StepRepository) CreateAll(ctx context.Context, steps []chain.Step) error {
	if len(steps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&steps).Error
}

func (r *StepRepository) Create(ctx context.Context, s *chain.Step) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StepRepository) ListByEntity(ctx context.Context, et chain.EntityType, entityID uint64) ([]chain.Step, error) {
	var out []chain.Step
	res := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", et, entityID).
		Order("level ASC").
		Find(&out)
	return out, res.Error
}

func (r *StepRepository) Save(ctx context.Context, s *chain.Step) error {
	return r.db.WithContext(ctx).Save(s).Error
}
