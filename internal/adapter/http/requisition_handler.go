package http

import (
	"net/http"

	"procurement-backend/internal/adapter/middleware"
	domainReq "procurement-backend/internal/domain/requisition"
	uc "procurement-backend/internal/usecase/requisition"

	"github.com/labstack/echo/v4"
)

type RequisitionHandler struct{ uc *uc.Usecase }

func NewRequisitionHandler(u *uc.Usecase) *RequisitionHandler { return &RequisitionHandler{uc: u} }

type requisitionView struct {
	uc.RequisitionDTO
	StatusDisplay StatusDisplay `json:"status_display"`
}

func viewRequisition(d uc.RequisitionDTO) requisitionView {
	return requisitionView{RequisitionDTO: d, StatusDisplay: DisplayFor(d.Status)}
}

func viewRequisitions(ds []uc.RequisitionDTO) []requisitionView {
	out := make([]requisitionView, 0, len(ds))
	for _, d := range ds {
		out = append(out, viewRequisition(d))
	}
	return out
}

type createRequisitionReq struct {
	Title          string  `json:"title"           validate:"required"`
	Department     string  `json:"department"      validate:"required"`
	CostCenter     string  `json:"cost_center"`
	EstimatedTotal float64 `json:"estimated_total" validate:"required,gt=0,dec2"`
	NeededBy       string  `json:"needed_by"       validate:"omitempty,datetime=2006-01-02"`
	Justification  string  `json:"justification"   validate:"required"`
}

func (h *RequisitionHandler) Create(c echo.Context) error {
	act, okActor := middleware.ActorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, fail("missing authenticated user"))
	}
	var req createRequisitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Success: false,
			Message: "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), act, uc.CreateInput{
		Title:          req.Title,
		Department:     req.Department,
		CostCenter:     req.CostCenter,
		EstimatedTotal: req.EstimatedTotal,
		NeededBy:       req.NeededBy,
		Justification:  req.Justification,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, ok("requisition submitted for approval", viewRequisition(*dto)))
}

func (h *RequisitionHandler) List(c echo.Context) error {
	f := domainReq.Filter{
		Department: c.QueryParam("department"),
		Status:     domainReq.Status(c.QueryParam("status")),
	}
	dtos, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("requisitions", viewRequisitions(dtos)))
}

func (h *RequisitionHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("requisition_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("requisition", viewRequisition(*dto)))
}

func (h *RequisitionHandler) PendingApprovals(c echo.Context) error {
	act, okActor := middleware.ActorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, fail("missing authenticated user"))
	}
	dtos, err := h.uc.GetPendingFor(c.Request().Context(), act)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("pending approvals", viewRequisitions(dtos)))
}

func (h *RequisitionHandler) Approve(c echo.Context) error {
	act, okActor := middleware.ActorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, fail("missing authenticated user"))
	}
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Success: false,
			Message: "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ProcessApproval(c.Request().Context(), c.Param("requisition_id"), act, uc.DecisionInput{
		Level:    req.Level,
		Decision: req.Decision,
		Comments: req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("decision recorded", viewRequisition(*dto)))
}

type financeVerificationReq struct {
	Level                      int     `json:"level"                        validate:"required,gte=1"`
	Decision                   string  `json:"decision"                     validate:"required,oneof=approved rejected"`
	Comments                   string  `json:"comments"                     validate:"required"`
	BudgetAvailable            bool    `json:"budget_available"`
	AssignedBudget             float64 `json:"assigned_budget"              validate:"gte=0,dec2"`
	BudgetCode                 string  `json:"budget_code"`
	CostCenter                 string  `json:"cost_center"`
	RequiresAdditionalApproval bool    `json:"requires_additional_approval"`
	ExpectedCompletionDate     string  `json:"expected_completion_date"     validate:"omitempty,datetime=2006-01-02"`
}

// FinanceVerification records the finance officer's decision together with
// the budget assignment payload.
func (h *RequisitionHandler) FinanceVerification(c echo.Context) error {
	act, okActor := middleware.ActorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, fail("missing authenticated user"))
	}
	var req financeVerificationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Success: false,
			Message: "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ProcessFinanceVerification(c.Request().Context(), c.Param("requisition_id"), act, uc.FinanceVerificationInput{
		Level:                      req.Level,
		Decision:                   req.Decision,
		Comments:                   req.Comments,
		BudgetAvailable:            req.BudgetAvailable,
		AssignedBudget:             req.AssignedBudget,
		BudgetCode:                 req.BudgetCode,
		CostCenter:                 req.CostCenter,
		RequiresAdditionalApproval: req.RequiresAdditionalApproval,
		ExpectedCompletionDate:     req.ExpectedCompletionDate,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("finance verification recorded", viewRequisition(*dto)))
}

// Delete withdraws a requisition whose chain carries no decision yet.
func (h *RequisitionHandler) Delete(c echo.Context) error {
	act, okActor := middleware.ActorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, fail("missing authenticated user"))
	}
	if err := h.uc.Delete(c.Request().Context(), c.Param("requisition_id"), act); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("requisition withdrawn", nil))
}

func (h *RequisitionHandler) ApprovalHistory(c echo.Context) error {
	dto, err := h.uc.GetHistory(c.Request().Context(), c.Param("requisition_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("approval history", viewRequisition(*dto)))
}
