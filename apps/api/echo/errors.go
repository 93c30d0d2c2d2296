package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/storage/database/inmem"
)

var (
	errNotAuthenticated     = echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	errInvalidToken         = echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	errAdminRequired        = echo.NewHTTPError(http.StatusForbidden, "Admin permission required")
	errReadOnly             = echo.NewHTTPError(http.StatusForbidden, "Read-only access")
	errNoGrade              = echo.NewHTTPError(http.StatusNotFound, "You are not assigned to any grade yet")
)

func notFound(what string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, what+" not found")
}

func badRequest(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// fieldDetail is one entry of a 422 answer.
type fieldDetail struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler answering {"detail": ...} bodies.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var detail interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			switch {
			case origErr == middleware.ErrJWTMissing:
				origErr = errNotAuthenticated
			case origErr.Code == http.StatusUnauthorized && origErr.Internal != nil:
				origErr = errInvalidToken
			}
			code = origErr.Code
			detail = origErr.Message
		case *core.ValidationError:
			if len(origErr.Fields) > 0 {
				flds := make([]fieldDetail, 0, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					flds = append(flds, fieldDetail{Loc: []string{"body", fErr.Field}, Msg: fErr.Error})
				}
				code = http.StatusUnprocessableEntity
				detail = flds
			} else {
				code = http.StatusBadRequest
				detail = origErr.Error()
			}
		default:
			switch errors.Cause(err) {
			case inmemdb.ErrUsernameExists, inmemdb.ErrYearExists, inmemdb.ErrGradeExists,
				inmemdb.ErrSubjectExists, inmemdb.ErrRollExists, inmemdb.ErrElectiveTaken:
				code = http.StatusBadRequest
				detail = errors.Cause(err).Error()
			case inmemdb.ErrNotFound:
				code = http.StatusNotFound
				detail = "Not found"
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				detail = msg
				if logger != nil {
					logger.Error(msg, errors.Wrap(err, msg), getContextUser(ctx))
				}

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			detail = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"detail": detail})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
