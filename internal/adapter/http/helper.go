package http

import (
	"errors"
	"net/http"

	domainBC "procurement-backend/internal/domain/budgetcode"
	"procurement-backend/internal/domain/chain"
	domainReq "procurement-backend/internal/domain/requisition"
	ucbc "procurement-backend/internal/usecase/budgetcode"
	ucreq "procurement-backend/internal/usecase/requisition"

	"github.com/labstack/echo/v4"
)

// writeDomainError maps coordinator/domain errors onto the HTTP contract:
// conflicts (stale level, already resolved, duplicate code, withdrawal after
// a decision) → 409, wrong role → 403, unknown entity → 404, bad
// decisions/payloads → 422, everything else → 500 without leaking internals.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, chain.ErrStaleLevel),
		errors.Is(err, chain.ErrAlreadyResolved),
		errors.Is(err, domainBC.ErrDuplicateCode),
		errors.Is(err, domainBC.ErrHasDecisions),
		errors.Is(err, domainReq.ErrHasDecisions):
		return c.JSON(http.StatusConflict, fail(err.Error()))
	case errors.Is(err, chain.ErrRoleMismatch):
		return c.JSON(http.StatusForbidden, fail(err.Error()))
	case errors.Is(err, domainBC.ErrNotFound), errors.Is(err, domainReq.ErrNotFound):
		return c.JSON(http.StatusNotFound, fail(err.Error()))
	case errors.Is(err, chain.ErrCommentsRequired),
		errors.Is(err, chain.ErrInvalidDecision),
		errors.Is(err, ucbc.ErrInvalidInput),
		errors.Is(err, ucreq.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, fail(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, fail("internal error"))
	}
}
