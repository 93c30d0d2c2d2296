package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/subject"
)

type subjectApi struct {
	store    Store
	validate *core.Validator
}

func registerSubjectAPI(e *echo.Echo, auth []echo.MiddlewareFunc, store Store, validate *core.Validator) {
	api := subjectApi{store: store, validate: validate}

	g := e.Group("/subjects", auth...)
	g.GET("", api.query)
	g.GET("/electives", api.electives)
	g.POST("", api.create)
	g.PUT("/:id", api.update)
	g.PATCH("/:id/toggle-active", api.toggleActive)
}

func (api *subjectApi) query(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.Subjects(grd.ID))
}

func (api *subjectApi) electives(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	subs := make([]subject.Subject, 0)
	for _, sub := range api.store.Subjects(grd.ID) {
		if sub.IsElective {
			subs = append(subs, sub)
		}
	}
	return ctx.JSON(http.StatusOK, subs)
}

// retrieve returns the subject with the path ID when it belongs to the user's grade.
func (api *subjectApi) retrieve(ctx echo.Context) (subject.Subject, error) {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return subject.Subject{}, err
	}
	id, err := paramID(ctx)
	if err != nil {
		return subject.Subject{}, err
	}
	sub, err := api.store.SubjectByID(id)
	if err != nil || sub.GradeID != grd.ID {
		return subject.Subject{}, notFound("Subject")
	}
	return sub, nil
}

func (api *subjectApi) create(ctx echo.Context) error {
	grd, err := scopedGrade(ctx, api.store)
	if err != nil {
		return err
	}
	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.store.CreateSubject(subject.Subject{
		Code:           data.Code,
		Name:           data.Name,
		TheoryHours:    data.TheoryHours,
		PracticalHours: data.PracticalHours,
		IsElective:     data.IsElective,
		IsActive:       true,
		GradeID:        grd.ID,
	})
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) update(ctx echo.Context) error {
	sub, err := api.retrieve(ctx)
	if err != nil {
		return err
	}
	var data subject.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub.Code = data.Code
	sub.Name = data.Name
	sub.TheoryHours = data.TheoryHours
	sub.PracticalHours = data.PracticalHours
	sub.IsElective = data.IsElective
	if data.IsActive != nil {
		sub.IsActive = *data.IsActive
	}
	sub, err = api.store.UpdateSubject(sub)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) toggleActive(ctx echo.Context) error {
	sub, err := api.retrieve(ctx)
	if err != nil {
		return err
	}
	var data activeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to activeRequest")
	}

	if data.IsActive != nil {
		sub.IsActive = *data.IsActive
	} else {
		sub.IsActive = !sub.IsActive
	}
	sub, err = api.store.UpdateSubject(sub)
	if err != nil {
		return errors.Wrap(err, "toggling subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}
