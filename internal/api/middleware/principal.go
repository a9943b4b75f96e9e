package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

const principalKey = "principal"

// SetPrincipal attaches the authenticated identity to the request context.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the identity set by Auth, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok || p.UserID == "" {
		return domain.Principal{}, false
	}
	return p, true
}
