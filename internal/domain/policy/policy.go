package policy

import (
	"procurement-backend/internal/domain/chain"
)

// Well-known approver roles. Matching is organizational-role based, so these
// strings are the authorization currency of the whole engine.
const (
	RoleDepartmentHead = "Department Head"
	RoleHeadOfBusiness = "Head of Business"
	RoleFinanceOfficer = "Finance Officer"
	RoleExecutive      = "Executive"
)

// Step is one configured level: who must act and what the owning entity's
// denormalized status reads while this level is pending.
type Step struct {
	Role          string
	PendingStatus string
	Approver      chain.Approver
}

// Policy is the ordered role sequence a fresh chain is seeded from.
// Level = position + 1.
type Policy struct {
	EntityType chain.EntityType
	Steps      []Step
}

func (p Policy) Validate() error {
	if len(p.Steps) == 0 {
		return chain.ErrInvalidPolicy
	}
	return nil
}

// Seed builds the pending steps for a new entity.
func (p Policy) Seed(entityID uint64) ([]chain.Step, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]chain.Step, 0, len(p.Steps))
	for i, ps := range p.Steps {
		out = append(out, chain.Step{
			EntityType:    p.EntityType,
			EntityID:      entityID,
			Level:         i + 1,
			ApproverName:  ps.Approver.Name,
			ApproverRole:  ps.Approver.Role,
			ApproverEmail: ps.Approver.Email,
			Status:        chain.StepPending,
		})
	}
	return out, nil
}

// PendingStatusFor maps a pending level to its entity status label.
// ok=false for levels appended after seeding (executive endorsement).
func (p Policy) PendingStatusFor(level int) (string, bool) {
	if level < 1 || level > len(p.Steps) {
		return "", false
	}
	return p.Steps[level-1].PendingStatus, true
}

func roleApprover(role string) chain.Approver {
	return chain.Approver{Name: role, Role: role}
}

// BudgetCode is the default three-level budget-code policy. The final level
// doubles as finance activation: its approval makes the code usable.
func BudgetCode() Policy {
	return Policy{
		EntityType: chain.EntityBudgetCode,
		Steps: []Step{
			{Role: RoleDepartmentHead, PendingStatus: "pending_departmental_approval", Approver: roleApprover(RoleDepartmentHead)},
			{Role: RoleHeadOfBusiness, PendingStatus: "pending_head_of_business", Approver: roleApprover(RoleHeadOfBusiness)},
			{Role: RoleFinanceOfficer, PendingStatus: "pending_finance_activation", Approver: roleApprover(RoleFinanceOfficer)},
		},
	}
}

// Requisition is the default requisition verification policy. Finance is the
// last seeded level; an executive endorsement level may be appended when the
// finance decision requires additional approval.
func Requisition() Policy {
	return Policy{
		EntityType: chain.EntityRequisition,
		Steps: []Step{
			{Role: RoleDepartmentHead, PendingStatus: "pending_departmental_approval", Approver: roleApprover(RoleDepartmentHead)},
			{Role: RoleFinanceOfficer, PendingStatus: "pending_finance_verification", Approver: roleApprover(RoleFinanceOfficer)},
		},
	}
}

// ExecutiveEndorsement builds the step appended to a requisition chain when
// finance flags requires_additional_approval.
func ExecutiveEndorsement(entityID uint64, level int) chain.Step {
	a := roleApprover(RoleExecutive)
	return chain.Step{
		EntityType:    chain.EntityRequisition,
		EntityID:      entityID,
		Level:         level,
		ApproverName:  a.Name,
		ApproverRole:  a.Role,
		ApproverEmail: a.Email,
		Status:        chain.StepPending,
	}
}
