package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-api/internal/api/middleware"
	"github.com/relaycrm/crm-api/internal/core/domain"
)

// ctxPrincipal extracts the identity injected by the Auth middleware and
// fails fast when the route was mounted without it.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
