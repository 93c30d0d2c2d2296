package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/schooladmin/core/grade"
)

func adminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if getContextUser(ctx).IsAdmin {
				return next(ctx)
			}
			return errAdminRequired
		}
	}
}

// readOnlyOrAdmin lets admins do anything and everyone else read.
func readOnlyOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if getContextUser(ctx).IsAdmin || ctx.Request().Method == http.MethodGet {
				return next(ctx)
			}
			return errReadOnly
		}
	}
}

// scopedGrade returns the grade the context user works on: the grade an admin selected, or the
// grade a teacher is the grade teacher of.
func scopedGrade(ctx echo.Context, store Store) (grade.Grade, error) {
	usr := getContextUser(ctx)
	var grd grade.Grade
	var err error
	if usr.IsAdmin {
		grd, err = store.SelectedGrade(usr.ID)
	} else {
		grd, err = store.GradeByTeacher(usr.ID)
	}
	if err != nil {
		return grade.Grade{}, errNoGrade
	}
	return grd, nil
}
