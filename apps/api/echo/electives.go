package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/elective"
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/student"
	"github.com/trezcool/schooladmin/core/user"
)

type electiveApi struct {
	store Store
}

// The elective routes share the ":id" parameter: POST reads it as a student ID, PUT and DELETE
// as an assignment ID.
func registerElectiveAPI(e *echo.Echo, auth []echo.MiddlewareFunc, store Store) {
	api := electiveApi{store: store}

	g := e.Group("/electives", auth...)
	g.GET("", api.query)
	g.GET("/student/:id", api.byStudent)
	g.POST("/:id", api.create)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api *electiveApi) query(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.StudentsWithElectives(grd.ID))
}

// student returns the student with the given ID when they belong to the user's grade.
func (api *electiveApi) student(grd grade.Grade, id int) (student.Student, error) {
	st, err := api.store.StudentByID(id)
	if err != nil || st.GradeID != grd.ID {
		return student.Student{}, notFound("Student")
	}
	return st, nil
}

// checkPick validates the subject and the year of an assignment.
func (api *electiveApi) checkPick(grd grade.Grade, subID int, label string) error {
	catalog := grade.WithElectiveSubjects{Grade: grd, ElectiveSubjects: api.store.ElectiveSubjects(grd.ID)}
	if !catalog.HasElectiveSubject(subID) {
		return notFound("Subject")
	}
	for _, y := range api.store.Years() {
		if y.Label == label {
			return nil
		}
	}
	return notFound("Year")
}

func (api *electiveApi) byStudent(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.student(grd, id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.ElectivesByStudent(id))
}

func (api *electiveApi) create(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	studentID, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data elective.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if data.StudentID != 0 && data.StudentID != studentID {
		return badRequest("Student ID mismatch")
	}
	if _, err := api.student(grd, studentID); err != nil {
		return err
	}
	if err := api.checkPick(grd, data.SubjectID, data.Year); err != nil {
		return err
	}

	a, err := api.store.CreateElective(studentID, data.SubjectID, data.Year)
	if err != nil {
		return errors.Wrap(err, "creating elective")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *electiveApi) update(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data elective.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if data.ID != 0 && data.ID != id {
		return badRequest("Elective ID mismatch")
	}

	_, holder, err := api.store.ElectiveByID(id)
	if err != nil {
		return notFound("Elective subject")
	}
	if data.StudentID != 0 && data.StudentID != holder {
		return badRequest("Student ID mismatch")
	}
	if _, err := api.student(grd, holder); err != nil {
		return err
	}
	if err := api.checkPick(grd, data.SubjectID, data.Year); err != nil {
		return err
	}

	a, err := api.store.UpdateElective(id, data.SubjectID, data.Year)
	if err != nil {
		return errors.Wrap(err, "updating elective")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *electiveApi) destroy(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	_, holder, err := api.store.ElectiveByID(id)
	if err != nil {
		return notFound("Elective subject")
	}
	if _, err := api.student(grd, holder); err != nil {
		return err
	}
	if err := api.store.DeleteElective(id); err != nil {
		return errors.Wrap(err, "deleting elective")
	}
	return ctx.JSON(http.StatusOK, user.Message{Message: "Elective removed"})
}
