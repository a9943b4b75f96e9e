package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/api/handler"
	"github.com/relaycrm/crm-api/internal/core/domain"
)

// Error codes carried in the envelope.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeDuplicate      = "DUPLICATE_ENTRY"
	CodeForeignKey     = "FOREIGN_KEY_ERROR"
	CodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	CodeDatabase       = "DATABASE_ERROR"
	CodeApplication    = "APPLICATION_ERROR"
)

// domainErrors maps sentinel errors to status and code. The first match
// wins, so specific errors precede the ones they wrap.
var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrUserNotFound, http.StatusNotFound, CodeNotFound},
	{domain.ErrCustomerNotFound, http.StatusNotFound, CodeNotFound},
	{domain.ErrLeadNotFound, http.StatusNotFound, CodeNotFound},
	{domain.ErrTaskNotFound, http.StatusNotFound, CodeNotFound},
	{domain.ErrInteractionNotFound, http.StatusNotFound, CodeNotFound},
	{domain.ErrUserExists, http.StatusConflict, CodeDuplicate},
	{domain.ErrDuplicate, http.StatusConflict, CodeDuplicate},
	{domain.ErrCustomerReference, http.StatusBadRequest, CodeForeignKey},
	{domain.ErrUserReference, http.StatusBadRequest, CodeForeignKey},
	{domain.ErrForeignKey, http.StatusBadRequest, CodeForeignKey},
	{domain.ErrOutOfRange, http.StatusBadRequest, CodeValidation},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, CodeAuthentication},
	{domain.ErrTokenExpired, http.StatusUnauthorized, CodeAuthentication},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, CodeAuthentication},
	{domain.ErrForbidden, http.StatusForbidden, CodeAuthorization},
	{domain.ErrSelfDelete, http.StatusBadRequest, CodeValidation},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and error code.
//   - Logs unexpected errors internally and hides their details outside development.
//   - Renders the envelope {"success": false, "error": "<message>", "code": "<CODE>"}.
func NewHTTPErrorHandler(log zerolog.Logger, env string) echo.HTTPErrorHandler {
	development := env == "development"

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		resp := handler.ErrorResponse{Success: false, Error: msg, Code: code}
		if development && status >= http.StatusInternalServerError {
			resp.Details = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
		}
		return he.Code, codeForStatus(he.Code), fmt.Sprintf("%v", he.Message)
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			return de.status, de.code, de.err.Error()
		}
	}

	logUnhandled(log, c, err)
	if errors.Is(err, domain.ErrDatabase) {
		return http.StatusInternalServerError, CodeDatabase, "database error"
	}
	return http.StatusInternalServerError, CodeApplication, "internal server error"
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeAuthentication
	case http.StatusForbidden:
		return CodeAuthorization
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeDuplicate
	case http.StatusTooManyRequests:
		return CodeRateLimit
	default:
		return CodeApplication
	}
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
