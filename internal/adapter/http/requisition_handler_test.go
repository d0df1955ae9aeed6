package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"procurement-backend/internal/adapter/middleware"
	"procurement-backend/internal/domain/actor"
	"procurement-backend/internal/domain/chain"
	"procurement-backend/internal/domain/policy"
	domain "procurement-backend/internal/domain/requisition"
	"procurement-backend/internal/domain/uow"
	"procurement-backend/internal/testutil/notifymock"
	"procurement-backend/internal/testutil/requisitionmock"
	"procurement-backend/internal/testutil/stepmock"
	"procurement-backend/internal/testutil/uowmock"
	uc "procurement-backend/internal/usecase/requisition"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var finOfficer = actor.Actor{
	ID:    strings.Repeat("f", 32),
	Name:  "Nadia Essomba",
	Email: "nadia@example.test",
	Role:  policy.RoleFinanceOfficer,
}

// requisitionFixture stands up one requisition whose chain state is mutable
// across calls, so multi-step flows can run through the handler.
type requisitionFixture struct {
	handler *RequisitionHandler
	pr      *domain.Requisition
	steps   []chain.Step
}

func newRequisitionFixture(t *testing.T, requisitionID string) *requisitionFixture {
	t.Helper()
	pol := policy.Requisition()
	f := &requisitionFixture{
		pr: &domain.Requisition{
			ID:             21,
			RequisitionID:  requisitionID,
			Title:          "Workstation refresh",
			Department:     "Information Technology",
			EstimatedTotal: 48000,
			Currency:       "XAF",
			Status:         domain.StatusPendingDepartmental,
			SubmittedBy:    strings.Repeat("5", 32),
		},
	}
	seeded, err := pol.Seed(f.pr.ID)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	f.steps = seeded

	reqs := &requisitionmock.Repo{}
	steps := &stepmock.Repo{
		ListByEntityFn: func(ctx context.Context, et chain.EntityType, entityID uint64) ([]chain.Step, error) {
			out := make([]chain.Step, len(f.steps))
			copy(out, f.steps)
			return out, nil
		},
		SaveFn: func(ctx context.Context, s *chain.Step) error {
			for i := range f.steps {
				if f.steps[i].Level == s.Level {
					f.steps[i] = *s
					return nil
				}
			}
			return nil
		},
		CreateFn: func(ctx context.Context, s *chain.Step) error {
			f.steps = append(f.steps, *s)
			return nil
		},
	}
	tx := &uowmock.UoW{
		WithinRequisitionTxFn: func(ctx context.Context, id string, fn func(r uow.Repos, pr *domain.Requisition) error) error {
			if id != f.pr.RequisitionID {
				return gorm.ErrRecordNotFound
			}
			return fn(uow.Repos{Requisitions: reqs, Steps: steps}, f.pr)
		},
	}
	f.handler = NewRequisitionHandler(uc.NewUsecase(reqs, steps, tx, pol, &notifymock.Recorder{}))
	return f
}

func callRoute(t *testing.T, call func(echo.Context) error, method, path, param, value string, act actor.Actor, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	e := newEchoWithValidator()
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if param != "" {
		c.SetParamNames(param)
		c.SetParamValues(value)
	}
	if act.ID != "" {
		middleware.SetActor(c, act)
	}
	if err := call(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestCreateRequisition_Success(t *testing.T) {
	reqs := &requisitionmock.Repo{
		CreateFn: func(ctx context.Context, pr *domain.Requisition) error {
			pr.ID = 21
			return nil
		},
	}
	steps := &stepmock.Repo{}
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Requisitions: reqs, Steps: steps})
		},
	}
	h := NewRequisitionHandler(uc.NewUsecase(reqs, steps, tx, policy.Requisition(), &notifymock.Recorder{}))

	rec := callRoute(t, h.Create, stdhttp.MethodPost, "/requisitions", "", "",
		actor.Actor{ID: strings.Repeat("5", 32), Role: "Staff"},
		map[string]any{
			"title":           "Workstation refresh",
			"department":      "Information Technology",
			"estimated_total": 48000.00,
			"needed_by":       "2024-06-30",
			"justification":   "current fleet is past end of life",
		})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var got requisitionView
	decodeEnvelope(t, rec.Body.Bytes(), &got)
	if got.Status != string(domain.StatusPendingDepartmental) || len(got.Steps) != 2 {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestCreateRequisition_ValidationError(t *testing.T) {
	h := NewRequisitionHandler(uc.NewUsecase(&requisitionmock.Repo{}, &stepmock.Repo{}, uowmock.New(), policy.Requisition(), &notifymock.Recorder{}))

	rec := callRoute(t, h.Create, stdhttp.MethodPost, "/requisitions", "", "",
		actor.Actor{ID: strings.Repeat("5", 32), Role: "Staff"},
		map[string]any{
			"title":           "X",
			"department":      "IT",
			"estimated_total": 48000.00,
			"needed_by":       "30/06/2024", // wrong format
			"justification":   "why",
		})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestFinanceVerification_HappyPath(t *testing.T) {
	reqID := strings.Repeat("e", 32)
	f := newRequisitionFixture(t, reqID)

	// Level 1: departmental approval.
	rec := callRoute(t, f.handler.Approve, stdhttp.MethodPost, "/requisitions/"+reqID+"/approve", "requisition_id", reqID,
		actor.Actor{ID: strings.Repeat("d", 32), Role: policy.RoleDepartmentHead},
		map[string]any{"level": 1, "decision": "approved", "comments": "needed"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("level 1 status = %d; body=%s", rec.Code, rec.Body.String())
	}

	// Level 2: finance verification with budget payload.
	rec = callRoute(t, f.handler.FinanceVerification, stdhttp.MethodPost, "/requisitions/"+reqID+"/finance-verification", "requisition_id", reqID,
		finOfficer,
		map[string]any{
			"level":            2,
			"decision":         "approved",
			"comments":         "budget confirmed",
			"budget_available": true,
			"assigned_budget":  45000.00,
			"budget_code":      "DEPT-IT-2024",
		})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("finance status = %d; body=%s", rec.Code, rec.Body.String())
	}
	var got requisitionView
	decodeEnvelope(t, rec.Body.Bytes(), &got)
	if got.Status != string(domain.StatusPendingSupplyChainReview) {
		t.Fatalf("status = %s, want %s", got.Status, domain.StatusPendingSupplyChainReview)
	}
	if got.BudgetAvailable == nil || !*got.BudgetAvailable || got.AssignedBudget != 45000 || got.BudgetCode != "DEPT-IT-2024" {
		t.Fatalf("finance payload not persisted: %+v", got)
	}
	if got.StatusDisplay.Label != "Pending Supply Chain Review" {
		t.Fatalf("status display = %+v", got.StatusDisplay)
	}
}

func TestFinanceVerification_AdditionalApprovalRoute(t *testing.T) {
	reqID := strings.Repeat("e", 32)
	f := newRequisitionFixture(t, reqID)

	rec := callRoute(t, f.handler.Approve, stdhttp.MethodPost, "/requisitions/"+reqID+"/approve", "requisition_id", reqID,
		actor.Actor{ID: strings.Repeat("d", 32), Role: policy.RoleDepartmentHead},
		map[string]any{"level": 1, "decision": "approved", "comments": "needed"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("level 1 status = %d", rec.Code)
	}

	rec = callRoute(t, f.handler.FinanceVerification, stdhttp.MethodPost, "/requisitions/"+reqID+"/finance-verification", "requisition_id", reqID,
		finOfficer,
		map[string]any{
			"level":                        2,
			"decision":                     "approved",
			"comments":                     "large spend, escalating",
			"budget_available":             true,
			"assigned_budget":              450000.00,
			"budget_code":                  "DEPT-IT-2024",
			"requires_additional_approval": true,
		})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("finance status = %d; body=%s", rec.Code, rec.Body.String())
	}
	var got requisitionView
	decodeEnvelope(t, rec.Body.Bytes(), &got)
	if got.Status != string(domain.StatusPendingExecutiveEndorsement) {
		t.Fatalf("status = %s, want %s", got.Status, domain.StatusPendingExecutiveEndorsement)
	}
	if len(got.Steps) != 3 {
		t.Fatalf("expected appended executive level, steps: %+v", got.Steps)
	}

	// Level 3: executive endorsement completes the chain.
	rec = callRoute(t, f.handler.Approve, stdhttp.MethodPost, "/requisitions/"+reqID+"/approve", "requisition_id", reqID,
		actor.Actor{ID: strings.Repeat("a", 32), Role: policy.RoleExecutive},
		map[string]any{"level": 3, "decision": "approved", "comments": "endorsed"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("executive status = %d; body=%s", rec.Code, rec.Body.String())
	}
	decodeEnvelope(t, rec.Body.Bytes(), &got)
	if got.Status != string(domain.StatusPendingSupplyChainReview) {
		t.Fatalf("status = %s, want %s", got.Status, domain.StatusPendingSupplyChainReview)
	}
}

func TestFinanceVerification_BeforeFinanceLevelIsForbidden(t *testing.T) {
	reqID := strings.Repeat("e", 32)
	f := newRequisitionFixture(t, reqID)

	// Chain is still at level 1 (Department Head); the finance payload must
	// not ride along with a departmental decision.
	rec := callRoute(t, f.handler.FinanceVerification, stdhttp.MethodPost, "/requisitions/"+reqID+"/finance-verification", "requisition_id", reqID,
		finOfficer,
		map[string]any{
			"level":            1,
			"decision":         "approved",
			"comments":         "too early",
			"budget_available": true,
		})
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403; body=%s", rec.Code, rec.Body.String())
	}
}

func TestRequisitionRejection_Terminal(t *testing.T) {
	reqID := strings.Repeat("e", 32)
	f := newRequisitionFixture(t, reqID)

	rec := callRoute(t, f.handler.Approve, stdhttp.MethodPost, "/requisitions/"+reqID+"/approve", "requisition_id", reqID,
		actor.Actor{ID: strings.Repeat("d", 32), Role: policy.RoleDepartmentHead},
		map[string]any{"level": 1, "decision": "rejected", "comments": "not budgeted this quarter"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	var got requisitionView
	decodeEnvelope(t, rec.Body.Bytes(), &got)
	if got.Status != string(domain.StatusRejected) {
		t.Fatalf("status = %s, want rejected", got.Status)
	}

	// Any further decision conflicts with the resolved chain.
	rec = callRoute(t, f.handler.Approve, stdhttp.MethodPost, "/requisitions/"+reqID+"/approve", "requisition_id", reqID,
		finOfficer,
		map[string]any{"level": 2, "decision": "approved", "comments": "late"})
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetRequisition_NotFound(t *testing.T) {
	reqs := &requisitionmock.Repo{
		GetByRequisitionIDFn: func(ctx context.Context, id string) (*domain.Requisition, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewRequisitionHandler(uc.NewUsecase(reqs, &stepmock.Repo{}, uowmock.New(), policy.Requisition(), &notifymock.Recorder{}))

	rec := callRoute(t, h.Get, stdhttp.MethodGet, "/requisitions/xxx", "requisition_id", "xxx", actor.Actor{}, nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
