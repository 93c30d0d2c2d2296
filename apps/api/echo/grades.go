package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
)

type gradeApi struct {
	store    Store
	validate *core.Validator
}

type activeRequest struct {
	IsActive *bool `json:"is_active"`
}

func registerGradeAPI(e *echo.Echo, auth []echo.MiddlewareFunc, store Store, validate *core.Validator) {
	api := gradeApi{store: store, validate: validate}

	g := e.Group("/grades", auth...)
	g.GET("", api.query)
	g.GET("/grade-by-user", api.mine)
	g.GET("/available-grade-teachers", api.availableTeachers, adminOnly())
	g.POST("", api.create, adminOnly())
	g.PUT("/:id", api.update, adminOnly())
	g.PATCH("/:id/toggle-active", api.toggleActive, adminOnly())
}

func (api *gradeApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Grades())
}

// mine answers the grade the user works on with its active elective subjects.
func (api *gradeApi) mine(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grade.WithElectiveSubjects{
		Grade:            grd,
		ElectiveSubjects: api.store.ElectiveSubjects(grd.ID),
	})
}

func (api *gradeApi) availableTeachers(ctx echo.Context) error {
	teachers := api.store.AvailableTeachers()
	if teachers == nil {
		teachers = []grade.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *gradeApi) checkTeacher(teacherID *int, gradeID int) error {
	if teacherID == nil {
		return nil
	}
	usr, err := api.store.UserByID(*teacherID)
	if err != nil {
		return notFound("User")
	}
	if usr.IsAdmin {
		return badRequest("Admins cannot be grade teachers")
	}
	if taught, err := api.store.GradeByTeacher(usr.ID); err == nil && taught.ID != gradeID {
		return badRequest("User is already the grade teacher of " + taught.Code)
	}
	return nil
}

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if err := api.checkTeacher(data.GradeTeacherID, 0); err != nil {
		return err
	}

	grd, err := api.store.CreateGrade(grade.Grade{
		Code:           data.Code,
		Name:           data.Name,
		SubjectCount:   data.SubjectCount,
		HasElective:    data.HasElective,
		ElectiveCount:  data.ElectiveCount,
		GradeTeacherID: data.GradeTeacherID,
		IsActive:       true,
	})
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusOK, grd)
}

func (api *gradeApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data grade.UpdateGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	grd, err := api.store.GradeByID(id)
	if err != nil {
		return notFound("Grade")
	}
	if err := api.checkTeacher(data.GradeTeacherID, grd.ID); err != nil {
		return err
	}

	grd.Code = data.Code
	grd.Name = data.Name
	grd.SubjectCount = data.SubjectCount
	grd.HasElective = data.HasElective
	grd.ElectiveCount = data.ElectiveCount
	grd.GradeTeacherID = data.GradeTeacherID
	grd, err = api.store.UpdateGrade(grd)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, grd)
}

// toggleActive sets is_active when given, and flips it otherwise.
func (api *gradeApi) toggleActive(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data activeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to activeRequest")
	}
	grd, err := api.store.GradeByID(id)
	if err != nil {
		return notFound("Grade")
	}

	if data.IsActive != nil {
		grd.IsActive = *data.IsActive
	} else {
		grd.IsActive = !grd.IsActive
	}
	grd, err = api.store.UpdateGrade(grd)
	if err != nil {
		return errors.Wrap(err, "toggling grade")
	}
	return ctx.JSON(http.StatusOK, grd)
}
