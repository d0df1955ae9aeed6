package mysql

import (
	"context"

	reqDomain "procurement-backend/internal/domain/requisition"

	"gorm.io/gorm"
)

type RequisitionRepository struct{ db *gorm.DB }

func NewRequisitionRepository(db *gorm.DB) *RequisitionRepository {
	return &RequisitionRepository{db: db}
}

func (r *RequisitionRepository) Create(ctx context.Context, pr *reqDomain.Requisition) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *RequisitionRepository) Save(ctx context.Context, pr *reqDomain.Requisition) error {
	return r.db.WithContext(ctx).Save(pr).Error
}

func (r *RequisitionRepository) Delete(ctx context.Context, pr *reqDomain.Requisition) error {
	q := r.db.WithContext(ctx)
	if pr.DeletedBy != "" {
		if err := q.Model(pr).Update("deleted_by", pr.DeletedBy).Error; err != nil {
			return err
		}
	}
	return q.Delete(pr).Error
}

func (r *RequisitionRepository) GetByRequisitionID(ctx context.Context, requisitionID string) (*reqDomain.Requisition, error) {
	var out reqDomain.Requisition
	res := r.db.WithContext(ctx).Where("requisition_id = ?", requisitionID).First(&out)
	return &out, res.Error
}

func (r *RequisitionRepository) GetByRequisitionIDForUpdate(ctx context.Context, requisitionID string) (*reqDomain.Requisition, error) {
	var out reqDomain.Requisition
	res := withRowLock(r.db.WithContext(ctx)).Where("requisition_id = ?", requisitionID).First(&out)
	return &out, res.Error
}

func (r *RequisitionRepository) List(ctx context.Context, f reqDomain.Filter) ([]reqDomain.Requisition, error) {
	q := r.db.WithContext(ctx)
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []reqDomain.Requisition
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *RequisitionRepository) ListByStatuses(ctx context.Context, statuses []reqDomain.Status) ([]reqDomain.Requisition, error) {
	var out []reqDomain.Requisition
	res := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
