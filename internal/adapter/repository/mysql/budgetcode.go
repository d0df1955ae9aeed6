package mysql

import (
	"context"

	bcDomain "procurement-backend/internal/domain/budgetcode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetCodeRepository struct{ db *gorm.DB }

func NewBudgetCodeRepository(db *gorm.DB) *BudgetCodeRepository { return &BudgetCodeRepository{db: db} }

// withRowLock adds FOR UPDATE on dialects that support it. sqlite (tests)
// has no row locks; its single-writer model covers the same guarantee.
func withRowLock(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *BudgetCodeRepository) Create(ctx context.Context, bc *bcDomain.BudgetCode) error {
	return r.db.WithContext(ctx).Create(bc).Error
}

func (r *BudgetCodeRepository) Save(ctx context.Context, bc *bcDomain.BudgetCode) error {
	return r.db.WithContext(ctx).Save(bc).Error
}

func (r *BudgetCodeRepository) GetByCodeID(ctx context.Context, codeID string) (*bcDomain.BudgetCode, error) {
	var out bcDomain.BudgetCode
	res := r.db.WithContext(ctx).Where("code_id = ?", codeID).First(&out)
	return &out, res.Error
}

func (r *BudgetCodeRepository) GetByCodeIDForUpdate(ctx context.Context, codeID string) (*bcDomain.BudgetCode, error) {
	var out bcDomain.BudgetCode
	res := withRowLock(r.db.WithContext(ctx)).Where("code_id = ?", codeID).First(&out)
	return &out, res.Error
}

// GetLiveByCodeForUpdate runs a locking read over the code's index range.
// Under InnoDB the gap lock blocks a concurrent insert of the same literal
// until this tx ends, so two racing creates serialize and the loser sees the
// winner's row.
func (r *BudgetCodeRepository) GetLiveByCodeForUpdate(ctx context.Context, code string) (*bcDomain.BudgetCode, error) {
	var out bcDomain.BudgetCode
	res := withRowLock(r.db.WithContext(ctx)).
		Where("code = ? AND status <> ?", code, bcDomain.StatusRejected).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

// Delete stamps deleted_by and soft-deletes in one transaction-local pair of
// writes; gorm's DeletedAt keeps the row out of every other query.
func (r *BudgetCodeRepository) Delete(ctx context.Context, bc *bcDomain.BudgetCode) error {
	q := r.db.WithContext(ctx)
	if bc.DeletedBy != "" {
		if err := q.Model(bc).Update("deleted_by", bc.DeletedBy).Error; err != nil {
			return err
		}
	}
	return q.Delete(bc).Error
}

func (r *BudgetCodeRepository) List(ctx context.Context, f bcDomain.Filter) ([]bcDomain.BudgetCode, error) {
	q := r.db.WithContext(ctx)
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.FiscalYear != 0 {
		q = q.Where("fiscal_year = ?", f.FiscalYear)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []bcDomain.BudgetCode
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *BudgetCodeRepository) ListByStatuses(ctx context.Context, statuses []bcDomain.Status) ([]bcDomain.BudgetCode, error) {
	var out []bcDomain.BudgetCode
	res := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
