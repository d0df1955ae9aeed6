package requisition

import (
	"context"
	"errors"
	"strings"
	"time"

	"procurement-backend/internal/domain/actor"
	"procurement-backend/internal/domain/chain"
	"procurement-backend/internal/domain/policy"
	domainReq "procurement-backend/internal/domain/requisition"
	"procurement-backend/internal/domain/uow"
	"procurement-backend/internal/notification"
	"procurement-backend/pkg/id"

	"gorm.io/gorm"
)

type EventDispatcher interface {
	Dispatch(ev notification.Event)
}

// Usecase coordinates the requisition verification chain. Same engine as
// budget codes with two differences: the finance level carries a richer
// payload persisted on the requisition row, and full approval hands off to
// the supply-chain workflow instead of terminating the entity.
type Usecase struct {
	reqs   domainReq.Repository
	steps  chain.Repository
	uow    uow.UnitOfWork
	pol    policy.Policy
	events EventDispatcher
}

func NewUsecase(reqs domainReq.Repository, steps chain.Repository, tx uow.UnitOfWork, pol policy.Policy, events EventDispatcher) *Usecase {
	return &Usecase{reqs: reqs, steps: steps, uow: tx, pol: pol, events: events}
}

var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"

func (u *Usecase) Create(ctx context.Context, actingUser actor.Actor, in CreateInput) (*RequisitionDTO, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Department) == "" || in.EstimatedTotal <= 0 {
		return nil, ErrInvalidInput
	}
	if err := u.pol.Validate(); err != nil {
		return nil, err
	}

	var neededBy *time.Time
	if in.NeededBy != "" {
		t, err := time.Parse(dateLayout, in.NeededBy)
		if err != nil {
			return nil, ErrInvalidInput
		}
		neededBy = &t
	}

	firstStatus, _ := u.pol.PendingStatusFor(1)

	var dto *RequisitionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		pr := &domainReq.Requisition{
			RequisitionID:   id.NewID32(),
			Title:           in.Title,
			Department:      in.Department,
			CostCenter:      in.CostCenter,
			EstimatedTotal:  in.EstimatedTotal,
			Currency:        "XAF",
			NeededBy:        neededBy,
			Justification:   in.Justification,
			Status:          domainReq.Status(firstStatus),
			SubmittedBy:     actingUser.ID,
			StatusUpdatedAt: time.Now().UTC(),
		}
		if err := r.Requisitions.Create(ctx, pr); err != nil {
			return err
		}
		steps, err := u.pol.Seed(pr.ID)
		if err != nil {
			return err
		}
		if err := r.Steps.CreateAll(ctx, steps); err != nil {
			return err
		}
		dto = toDTO(pr, steps)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.events.Dispatch(notification.Event{
		Kind:          notification.KindApprovalRequested,
		EntityType:    chain.EntityRequisition,
		EntityID:      dto.RequisitionID,
		EntityLabel:   dto.Title,
		Level:         1,
		RecipientRole: u.pol.Steps[0].Role,
	})
	return dto, nil
}

// ProcessApproval applies a plain decision at the current pending level.
func (u *Usecase) ProcessApproval(ctx context.Context, requisitionID string, actingUser actor.Actor, in DecisionInput) (*RequisitionDTO, error) {
	return u.process(ctx, requisitionID, actingUser, in, nil)
}

// ProcessFinanceVerification records the finance decision together with its
// budget assessment. When requires_additional_approval is set on an approved
// verification, an executive endorsement level is appended to the live chain
// inside the same transaction — the one sanctioned mid-flight chain change.
func (u *Usecase) ProcessFinanceVerification(ctx context.Context, requisitionID string, actingUser actor.Actor, in FinanceVerificationInput) (*RequisitionDTO, error) {
	var expected *time.Time
	if in.ExpectedCompletionDate != "" {
		t, err := time.Parse(dateLayout, in.ExpectedCompletionDate)
		if err != nil {
			return nil, ErrInvalidInput
		}
		expected = &t
	}
	fin := in
	return u.process(ctx, requisitionID, actingUser,
		DecisionInput{Level: in.Level, Decision: in.Decision, Comments: in.Comments},
		func(pr *domainReq.Requisition) {
			avail := fin.BudgetAvailable
			pr.BudgetAvailable = &avail
			pr.AssignedBudget = fin.AssignedBudget
			pr.BudgetCode = fin.BudgetCode
			if fin.CostCenter != "" {
				pr.CostCenter = fin.CostCenter
			}
			pr.RequiresAdditionalApproval = fin.RequiresAdditionalApproval
			pr.ExpectedCompletionDate = expected
		})
}

func (u *Usecase) process(ctx context.Context, requisitionID string, actingUser actor.Actor, in DecisionInput, applyFinance func(*domainReq.Requisition)) (*RequisitionDTO, error) {
	var (
		dto *RequisitionDTO
		ev  *notification.Event
	)

	err := u.uow.WithinRequisitionTx(ctx, requisitionID, func(r uow.Repos, pr *domainReq.Requisition) error {
		steps, err := r.Steps.ListByEntity(ctx, chain.EntityRequisition, pr.ID)
		if err != nil {
			return err
		}

		// The finance payload only accompanies the Finance Officer level.
		if applyFinance != nil {
			cur := chain.CurrentPendingStep(steps)
			if cur == nil {
				return chain.ErrAlreadyResolved
			}
			if cur.ApproverRole != policy.RoleFinanceOfficer {
				return chain.ErrRoleMismatch
			}
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

		if applyFinance != nil {
			applyFinance(pr)
			if chain.Decision(in.Decision) == chain.DecisionApproved && pr.RequiresAdditionalApproval {
				endorse := policy.ExecutiveEndorsement(pr.ID, in.Level+1)
				if err := r.Steps.Create(ctx, &endorse); err != nil {
					return err
				}
				updated = append(updated, endorse)
			}
		}

		switch chain.Resolve(updated) {
		case chain.ResolutionRejected:
			pr.Status = domainReq.StatusRejected
			ev = &notification.Event{
				Kind:          notification.KindRejected,
				RecipientUser: pr.SubmittedBy,
				Level:         in.Level,
				Comments:      in.Comments,
			}
		case chain.ResolutionApproved:
			// Chain-terminal, entity not terminal: hand-off to supply chain.
			pr.Status = domainReq.StatusPendingSupplyChainReview
			ev = &notification.Event{
				Kind:          notification.KindFullyApproved,
				RecipientUser: pr.SubmittedBy,
			}
		default:
			next := chain.CurrentPendingStep(updated)
			label, ok := u.pol.PendingStatusFor(next.Level)
			if !ok {
				// appended executive endorsement level
				label = string(domainReq.StatusPendingExecutiveEndorsement)
			}
			pr.Status = domainReq.Status(label)
			ev = &notification.Event{
				Kind:           notification.KindApprovalRequested,
				Level:          next.Level,
				RecipientRole:  next.ApproverRole,
				RecipientEmail: next.ApproverEmail,
			}
		}
		pr.StatusUpdatedAt = time.Now().UTC()
		if err := r.Requisitions.Save(ctx, pr); err != nil {
			return err
		}

		dto = toDTO(pr, updated)
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	ev.EntityType = chain.EntityRequisition
	ev.EntityID = dto.RequisitionID
	ev.EntityLabel = dto.Title
	u.events.Dispatch(*ev)
	return dto, nil
}

// Delete withdraws a requisition while no approver has acted on it yet. Once
// a step carries a decision the record belongs to the audit trail and the
// withdrawal fails with ErrHasDecisions.
func (u *Usecase) Delete(ctx context.Context, requisitionID string, actingUser actor.Actor) error {
	err := u.uow.WithinRequisitionTx(ctx, requisitionID, func(r uow.Repos, pr *domainReq.Requisition) error {
		steps, err := r.Steps.ListByEntity(ctx, chain.EntityRequisition, pr.ID)
		if err != nil {
			return err
		}
		for i := range steps {
			if steps[i].Status != chain.StepPending {
				return domainReq.ErrHasDecisions
			}
		}
		pr.DeletedBy = actingUser.ID
		return r.Requisitions.Delete(ctx, pr)
	})
	return mapNotFound(err)
}

func (u *Usecase) Get(ctx context.Context, requisitionID string) (*RequisitionDTO, error) {
	pr, err := u.reqs.GetByRequisitionID(ctx, requisitionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toDTO(pr, nil), nil
}

func (u *Usecase) GetHistory(ctx context.Context, requisitionID string) (*RequisitionDTO, error) {
	pr, err := u.reqs.GetByRequisitionID(ctx, requisitionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	steps, err := u.steps.ListByEntity(ctx, chain.EntityRequisition, pr.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(pr, steps), nil
}

func (u *Usecase) List(ctx context.Context, f domainReq.Filter) ([]RequisitionDTO, error) {
	rows, err := u.reqs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]RequisitionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i], nil))
	}
	return out, nil
}

// GetPendingFor mirrors the budget-code inbox: status prefilters, chain decides.
func (u *Usecase) GetPendingFor(ctx context.Context, actingUser actor.Actor) ([]RequisitionDTO, error) {
	rows, err := u.reqs.ListByStatuses(ctx, domainReq.PendingStatuses())
	if err != nil {
		return nil, err
	}
	out := make([]RequisitionDTO, 0, len(rows))
	for i := range rows {
		steps, err := u.steps.ListByEntity(ctx, chain.EntityRequisition, rows[i].ID)
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
		return domainReq.ErrNotFound
	}
	return err
}

func toDTO(pr *domainReq.Requisition, steps []chain.Step) *RequisitionDTO {
	dto := &RequisitionDTO{
		RequisitionID:              pr.RequisitionID,
		Title:                      pr.Title,
		Department:                 pr.Department,
		CostCenter:                 pr.CostCenter,
		EstimatedTotal:             pr.EstimatedTotal,
		Currency:                   pr.Currency,
		NeededBy:                   pr.NeededBy,
		Justification:              pr.Justification,
		BudgetAvailable:            pr.BudgetAvailable,
		AssignedBudget:             pr.AssignedBudget,
		BudgetCode:                 pr.BudgetCode,
		RequiresAdditionalApproval: pr.RequiresAdditionalApproval,
		ExpectedCompletionDate:     pr.ExpectedCompletionDate,
		Status:                     string(pr.Status),
		SubmittedBy:                pr.SubmittedBy,
		CreatedAt:                  pr.CreatedAt,
	}
	for _, s := range steps {
		d := StepDTO{
			Level:         s.Level,
			ApproverName:  s.ApproverName,
			ApproverRole:  s.ApproverRole,
			ApproverEmail: s.ApproverEmail,
			Status:        string(s.Status),
			Comments:      s.Comments,
		}
		if s.ActionAt != nil {
			d.ActionDate = s.ActionAt.UTC().Format(dateLayout)
			d.ActionTime = s.ActionAt.UTC().Format("15:04:05")
		}
		dto.Steps = append(dto.Steps, d)
	}
	return dto
}
