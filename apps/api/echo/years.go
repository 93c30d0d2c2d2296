package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/year"
)

type yearApi struct {
	store    Store
	validate *core.Validator
}

func registerYearAPI(e *echo.Echo, auth []echo.MiddlewareFunc, store Store, validate *core.Validator) {
	api := yearApi{store: store, validate: validate}

	g := e.Group("/years", auth...)
	g.GET("", api.query)
	g.GET("/current", api.current)
	g.POST("", api.create, adminOnly())
	g.PATCH("/:id/set-current", api.setCurrent, adminOnly())
	g.DELETE("/:id", api.destroy, adminOnly())
}

func (api *yearApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Years())
}

func (api *yearApi) current(ctx echo.Context) error {
	y, err := api.store.CurrentYear()
	if err != nil {
		return notFound("Current year")
	}
	return ctx.JSON(http.StatusOK, y)
}

func (api *yearApi) create(ctx echo.Context) error {
	var data year.NewYear
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewYear")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	y, err := api.store.CreateYear(data.Label)
	if err != nil {
		return errors.Wrap(err, "creating year")
	}
	return ctx.JSON(http.StatusOK, y)
}

func (api *yearApi) setCurrent(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	y, err := api.store.SetCurrentYear(id)
	if err != nil {
		return notFound("Year")
	}
	return ctx.JSON(http.StatusOK, y)
}

func (api *yearApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := api.store.DeleteYear(id); err != nil {
		return notFound("Year")
	}
	return ctx.NoContent(http.StatusNoContent)
}
