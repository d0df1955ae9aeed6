package mysql

import (
	"context"

	"procurement-backend/internal/domain/budgetcode"
	"procurement-backend/internal/domain/requisition"
	"procurement-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		BudgetCodes:  &BudgetCodeRepository{db: tx},
		Requisitions: &RequisitionRepository{db: tx},
		Steps:        &StepRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinBudgetCodeTx(ctx context.Context, codeID string, fn func(r uow.Repos, bc *budgetcode.BudgetCode) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the row up-front so concurrent decisions serialize
		bc, err := r.BudgetCodes.GetByCodeIDForUpdate(ctx, codeID)
		if err != nil {
			return err
		}
		return fn(r, bc)
	})
}

func (u *GormUoW) WithinRequisitionTx(ctx context.Context, requisitionID string, fn func(r uow.Repos, pr *requisition.Requisition) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		pr, err := r.Requisitions.GetByRequisitionIDForUpdate(ctx, requisitionID)
		if err != nil {
			return err
		}
		return fn(r, pr)
	})
}
