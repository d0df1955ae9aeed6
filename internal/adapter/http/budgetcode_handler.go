package http

import (
	"net/http"
	"strconv"

	"procurement-backend/internal/adapter/middleware"
	domainBC "procurement-backend/internal/domain/budgetcode"
	uc "procurement-backend/internal/usecase/budgetcode"

	"github.com/labstack/echo/v4"
)

type BudgetCodeHandler struct{ uc *uc.Usecase }

func NewBudgetCodeHandler(u *uc.Usecase) *BudgetCodeHandler { return &BudgetCodeHandler{uc: u} }

// budgetCodeView decorates the DTO with the shared status render hint.
type budgetCodeView struct {
	uc.BudgetCodeDTO
	StatusDisplay StatusDisplay `json:"status_display"`
}

func viewBudgetCode(d uc.BudgetCodeDTO) budgetCodeView {
	return budgetCodeView{BudgetCodeDTO: d, StatusDisplay: DisplayFor(d.Status)}
}

func viewBudgetCodes(ds []uc.BudgetCodeDTO) []budgetCodeView {
	out := make([]budgetCodeView, 0, len(ds))
	for _, d := range ds {
		out = append(out, viewBudgetCode(d))
	}
	return out
}

type createBudgetCodeReq struct {
	Code        string  `json:"code"         validate:"required"`
	Name        string  `json:"name"         validate:"required"`
	Department  string  `json:"department"   validate:"required"`
	FiscalYear  int     `json:"fiscal_year"  validate:"required,gte=2000,lte=2100"`
	Amount      float64 `json:"amount"       validate:"required,gt=0,dec2"`
	Description string  `json:"description"`
}

func (h *BudgetCodeHandler) Create(c echo.Context) error {
	act, okActor := middleware.ActorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, fail("missing authenticated user"))
	}
	var req createBudgetCodeReq
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
		Code:        req.Code,
		Name:        req.Name,
		Department:  req.Department,
		FiscalYear:  req.FiscalYear,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, ok("budget code submitted for approval", viewBudgetCode(*dto)))
}

func (h *BudgetCodeHandler) List(c echo.Context) error {
	f := domainBC.Filter{
		Department: c.QueryParam("department"),
		Status:     domainBC.Status(c.QueryParam("status")),
	}
	if fy := c.QueryParam("fiscal_year"); fy != "" {
		n, err := strconv.Atoi(fy)
		if err != nil {
			return c.JSON(http.StatusBadRequest, fail("fiscal_year must be an integer"))
		}
		f.FiscalYear = n
	}
	dtos, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("budget codes", viewBudgetCodes(dtos)))
}

func (h *BudgetCodeHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("code_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("budget code", viewBudgetCode(*dto)))
}

// PendingApprovals is the approver inbox for the authenticated role.
func (h *BudgetCodeHandler) PendingApprovals(c echo.Context) error {
	act, okActor := middleware.ActorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, fail("missing authenticated user"))
	}
	dtos, err := h.uc.GetPendingFor(c.Request().Context(), act)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("pending approvals", viewBudgetCodes(dtos)))
}

type decisionReq struct {
	Level    int    `json:"level"    validate:"required,gte=1"`
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments" validate:"required"`
}

func (h *BudgetCodeHandler) Approve(c echo.Context) error {
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
	dto, err := h.uc.ProcessApproval(c.Request().Context(), c.Param("code_id"), act, uc.DecisionInput{
		Level:    req.Level,
		Decision: req.Decision,
		Comments: req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("decision recorded", viewBudgetCode(*dto)))
}

// Delete withdraws a submission whose chain carries no decision yet.
func (h *BudgetCodeHandler) Delete(c echo.Context) error {
	act, okActor := middleware.ActorFromContext(c)
	if !okActor {
		return c.JSON(http.StatusUnauthorized, fail("missing authenticated user"))
	}
	if err := h.uc.Delete(c.Request().Context(), c.Param("code_id"), act); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("budget code withdrawn", nil))
}

func (h *BudgetCodeHandler) ApprovalHistory(c echo.Context) error {
	dto, err := h.uc.GetHistory(c.Request().Context(), c.Param("code_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, ok("approval history", viewBudgetCode(*dto)))
}
