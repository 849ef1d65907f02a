package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thapelomagqazana/accounts-api/internal/api/middleware"
	"github.com/thapelomagqazana/accounts-api/internal/core/domain"
)

// ctxRequester extracts the authenticated identity injected by the Auth
// middleware. A missing account id means the middleware did not run on
// this route; reject with 401 before any service call.
func ctxRequester(c echo.Context) (domain.Requester, error) {
	id, _ := c.Get(middleware.ContextKeyAccountID).(string)
	if id == "" {
		return domain.Requester{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get(middleware.ContextKeyRole).(string)
	return domain.Requester{ID: id, Role: role}, nil
}
