package requisition

import "context"

type Filter struct {
	Department string
	Status     Status
}

type Repository interface {
	Create(ctx context.Context, pr *Requisition) error
	Save(ctx context.Context, pr *Requisition) error
	// Delete soft-deletes the row; the decision-free check is the usecase's.
	Delete(ctx context.Context, pr *Requisition) error

	GetByRequisitionID(ctx context.Context, requisitionID string) (*Requisition, error)
	// GetByRequisitionIDForUpdate locks the row for the enclosing tx.
	GetByRequisitionIDForUpdate(ctx context.Context, requisitionID string) (*Requisition, error)

	List(ctx context.Context, f Filter) ([]Requisition, error)
	ListByStatuses(ctx context.Context, statuses []Status) ([]Requisition, error)
}
