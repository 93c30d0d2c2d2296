package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/student"
)

type studentApi struct {
	store    Store
	validate *core.Validator
}

func registerStudentAPI(e *echo.Echo, auth []echo.MiddlewareFunc, store Store, validate *core.Validator) {
	api := studentApi{store: store, validate: validate}

	g := e.Group("/students", auth...)
	g.GET("", api.query)
	g.POST("", api.create)
	g.PUT("/:id", api.update)
	g.PATCH("/:id/toggle-active", api.toggleActive)
}

func (api *studentApi) query(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.Students(grd.ID))
}

// retrieve returns the student with the path ID when they belong to the user's grade.
func (api *studentApi) retrieve(ctx echo.Context) (student.Student, error) {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return student.Student{}, err
	}
	id, err := paramID(ctx)
	if err != nil {
		return student.Student{}, err
	}
	st, err := api.store.StudentByID(id)
	if err != nil || st.GradeID != grd.ID {
		return student.Student{}, notFound("Student")
	}
	return st, nil
}

// create adds a student to the user's grade. When the grade has electives, the student's
// elective subjects are created along with them.
func (api *studentApi) create(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate, grd.ElectiveSlots()); err != nil {
		return err
	}
	catalog := grade.WithElectiveSubjects{Grade: grd, ElectiveSubjects: api.store.ElectiveSubjects(grd.ID)}
	for _, pick := range data.ElectiveSubjects {
		if !catalog.HasElectiveSubject(pick.SubjectID) {
			return notFound("Elective subject")
		}
	}

	isActive := true
	if data.IsActive != nil {
		isActive = *data.IsActive
	}
	st, err := api.store.CreateStudentWithElectives(student.Student{
		Roll:     data.Roll,
		Name:     data.Name,
		Year:     data.Year,
		GradeID:  grd.ID,
		IsActive: isActive,
	}, data.ElectiveSubjects)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) update(ctx echo.Context) error {
	st, err := api.retrieve(ctx)
	if err != nil {
		return err
	}
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	data.GradeID = st.GradeID
	if err := data.Validate(api.validate, st); err != nil {
		return err
	}

	st.Roll = data.Roll
	st.Name = data.Name
	st.Year = data.Year
	if data.IsActive != nil {
		st.IsActive = *data.IsActive
	}
	st, err = api.store.UpdateStudent(st)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) toggleActive(ctx echo.Context) error {
	st, err := api.retrieve(ctx)
	if err != nil {
		return err
	}
	st.IsActive = !st.IsActive
	st, err = api.store.UpdateStudent(st)
	if err != nil {
		return errors.Wrap(err, "toggling student")
	}
	return ctx.JSON(http.StatusOK, st)
}
