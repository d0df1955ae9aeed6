package budgetcode

import (
	"context"
	"errors"
	"strings"
	"time"

	"procurement-backend/internal/domain/actor"
	domainBC "procurement-backend/internal/domain/budgetcode"
	"procurement-backend/internal/domain/chain"
	"procurement-backend/internal/domain/policy"
	"procurement-backend/internal/domain/uow"
	"procurement-backend/internal/notification"
	"procurement-backend/pkg/id"

	"gorm.io/gorm"
)

// EventDispatcher decouples the coordinator from the async notification
// machinery; production wires *notification.Dispatcher.
type EventDispatcher interface {
	Dispatch(ev notification.Event)
}

// Usecase coordinates the budget-code approval chain: seeding from policy,
// applying decisions inside a row-locked transaction, finance activation on
// full approval, and fire-and-forget notifications after commit.
type Usecase struct {
	codes  domainBC.Repository
	steps  chain.Repository
	uow    uow.UnitOfWork
	pol    policy.Policy
	events EventDispatcher
}

func NewUsecase(codes domainBC.Repository, steps chain.Repository, tx uow.UnitOfWork, pol policy.Policy, events EventDispatcher) *Usecase {
	return &Usecase{codes: codes, steps: steps, uow: tx, pol: pol, events: events}
}

var ErrInvalidInput = errors.New("invalid input")

func (u *Usecase) Create(ctx context.Context, actingUser actor.Actor, in CreateInput) (*BudgetCodeDTO, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Department) == "" || in.Amount <= 0 {
		return nil, ErrInvalidInput
	}
	if err := u.pol.Validate(); err != nil {
		return nil, err
	}

	firstStatus, _ := u.pol.PendingStatusFor(1)

	var dto *BudgetCodeDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Duplicate guard: one live row per code literal. The locking read
		// holds the code's index range until commit, so concurrent creates
		// of the same literal serialize instead of both passing the check.
		if _, err := r.BudgetCodes.GetLiveByCodeForUpdate(ctx, in.Code); err == nil {
			return domainBC.ErrDuplicateCode
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		bc := &domainBC.BudgetCode{
			CodeID:          id.NewID32(),
			Code:            in.Code,
			Name:            in.Name,
			Department:      in.Department,
			FiscalYear:      in.FiscalYear,
			Amount:          in.Amount,
			Currency:        "XAF",
			Description:     in.Description,
			Status:          domainBC.Status(firstStatus),
			SubmittedBy:     actingUser.ID,
			StatusUpdatedAt: time.Now().UTC(),
		}
		if err := r.BudgetCodes.Create(ctx, bc); err != nil {
			return err
		}

		steps, err := u.pol.Seed(bc.ID)
		if err != nil {
			return err
		}
		if err := r.Steps.CreateAll(ctx, steps); err != nil {
			return err
		}

		dto = toDTO(bc, steps)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.events.Dispatch(notification.Event{
		Kind:          notification.KindApprovalRequested,
		EntityType:    chain.EntityBudgetCode,
		EntityID:      dto.CodeID,
		EntityLabel:   dto.Code,
		Level:         1,
		RecipientRole: u.pol.Steps[0].Role,
	})
	return dto, nil
}

// ProcessApproval applies one decision. The row lock taken by
// WithinBudgetCodeTx serializes concurrent submissions for the same code, so
// a racing duplicate observes StaleLevel/AlreadyResolved instead of
// double-applying. Finance activation (status `active`) happens in the same
// transaction as the final step write.
func (u *Usecase) ProcessApproval(ctx context.Context, codeID string, actingUser actor.Actor, in DecisionInput) (*BudgetCodeDTO, error) {
	var (
		dto *BudgetCodeDTO
		ev  *notification.Event
	)

	err := u.uow.WithinBudgetCodeTx(ctx, codeID, func(r uow.Repos, bc *domainBC.BudgetCode) error {
		steps, err := r.Steps.ListByEntity(ctx, chain.EntityBudgetCode, bc.ID)
		if err != nil {
			return err
		}

		updated, err := chain.ApplyDecision(steps, in.Level, chain.Decision(in.Decision), in.Comments, actingUser.Role, time.Now().UTC())
		if err != nil {
			return err
		}

		for i := range updated {
			if updated[i].Level == in.Level {
				if err := r.Steps.Save(ctx, &updated[i]); err != nil {
					return err
				}
				break
			}
		}

		switch chain.Resolve(updated) {
		case chain.ResolutionRejected:
			bc.Status = domainBC.StatusRejected
			ev = &notification.Event{
				Kind:          notification.KindRejected,
				RecipientUser: bc.SubmittedBy,
				Level:         in.Level,
				Comments:      in.Comments,
			}
		case chain.ResolutionApproved:
			// Finance activation: last-level approval makes the code usable.
			bc.Status = domainBC.StatusActive
			ev = &notification.Event{
				Kind:          notification.KindFullyApproved,
				RecipientUser: bc.SubmittedBy,
			}
		default:
			next := chain.CurrentPendingStep(updated)
			label, ok := u.pol.PendingStatusFor(next.Level)
			if !ok {
				return chain.ErrInvalidPolicy
			}
			bc.Status = domainBC.Status(label)
			ev = &notification.Event{
				Kind:           notification.KindApprovalRequested,
				Level:          next.Level,
				RecipientRole:  next.ApproverRole,
				RecipientEmail: next.ApproverEmail,
			}
		}
		bc.StatusUpdatedAt = time.Now().UTC()
		if err := r.BudgetCodes.Save(ctx, bc); err != nil {
			return err
		}

		dto = toDTO(bc, updated)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	ev.EntityType = chain.EntityBudgetCode
	ev.EntityID = dto.CodeID
	ev.EntityLabel = dto.Code
	u.events.Dispatch(*ev)
	return dto, nil
}

// Delete soft-deletes a budget code, but only while its chain is untouched:
// the first recorded decision makes the entity part of the audit trail and it
// can no longer be withdrawn (ErrHasDecisions).
func (u *Usecase) Delete(ctx context.Context, codeID string, actingUser actor.Actor) error {
	err := u.uow.WithinBudgetCodeTx(ctx, codeID, func(r uow.Repos, bc *domainBC.BudgetCode) error {
		steps, err := r.Steps.ListByEntity(ctx, chain.EntityBudgetCode, bc.ID)
		if err != nil {
			return err
		}
		for i := range steps {
			if steps[i].Status != chain.StepPending {
				return domainBC.ErrHasDecisions
			}
		}
		bc.DeletedBy = actingUser.ID
		return r.BudgetCodes.Delete(ctx, bc)
	})
	return mapNotFound(err)
}

func (u *Usecase) Get(ctx context.Context, codeID string) (*BudgetCodeDTO, error) {
	bc, err := u.codes.GetByCodeID(ctx, codeID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toDTO(bc, nil), nil
}

// GetHistory returns the entity with its full ordered chain, in any state
// (audit display never goes dark).
func (u *Usecase) GetHistory(ctx context.Context, codeID string) (*BudgetCodeDTO, error) {
	bc, err := u.codes.GetByCodeID(ctx, codeID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	steps, err := u.steps.ListByEntity(ctx, chain.EntityBudgetCode, bc.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(bc, steps), nil
}

func (u *Usecase) List(ctx context.Context, f domainBC.Filter) ([]BudgetCodeDTO, error) {
	rows, err := u.codes.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]BudgetCodeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i], nil))
	}
	return out, nil
}

// GetPendingFor is the approver inbox. The status column only prefilters
// candidate rows; the chain's current pending step is authoritative, so a
// drifted status string can never route an entity to the wrong role.
func (u *Usecase) GetPendingFor(ctx context.Context, actingUser actor.Actor) ([]BudgetCodeDTO, error) {
	rows, err := u.codes.ListByStatuses(ctx, domainBC.PendingStatuses())
	if err != nil {
		return nil, err
	}
	out := make([]BudgetCodeDTO, 0, len(rows))
	for i := range rows {
		steps, err := u.steps.ListByEntity(ctx, chain.EntityBudgetCode, rows[i].ID)
		if err != nil {
			return nil, err
		}
		cur := chain.CurrentPendingStep(steps)
		if cur == nil || cur.ApproverRole != actingUser.Role {
			continue
		}
		out = append(out, *toDTO(&rows[i], steps))
	}
	return out, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainBC.ErrNotFound
	}
	return err
}

func toDTO(bc *domainBC.BudgetCode, steps []chain.Step) *BudgetCodeDTO {
	dto := &BudgetCodeDTO{
		CodeID:      bc.CodeID,
		Code:        bc.Code,
		Name:        bc.Name,
		Department:  bc.Department,
		FiscalYear:  bc.FiscalYear,
		Amount:      bc.Amount,
		Currency:    bc.Currency,
		Description: bc.Description,
		Status:      string(bc.Status),
		SubmittedBy: bc.SubmittedBy,
		CreatedAt:   bc.CreatedAt,
	}
	for _, s := range steps {
		dto.Steps = append(dto.Steps, StepFromChain(s))
	}
	return dto
}

// StepFromChain splits the single action_at instant into the date and time
// strings the clients render.
func StepFromChain(s chain.Step) StepDTO {
	d := StepDTO{
		Level:         s.Level,
		ApproverName:  s.ApproverName,
		ApproverRole:  s.ApproverRole,
		ApproverEmail: s.ApproverEmail,
		Status:        string(s.Status),
		Comments:      s.Comments,
	}
	if s.ActionAt != nil {
		d.ActionDate = s.ActionAt.UTC().Format("2006-01-02")
		d.ActionTime = s.ActionAt.UTC().Format("15:04:05")
	}
	return d
}
