package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/user"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type authApi struct {
	tokens   *tokenIssuer
	store    Store
	validate *core.Validator
}

func registerAuthAPI(e *echo.Echo, auth []echo.MiddlewareFunc, tokens *tokenIssuer, store Store, validate *core.Validator) {
	api := authApi{tokens: tokens, store: store, validate: validate}

	g := e.Group("/auth")
	g.POST("/login", api.login)

	ag := g.Group("", auth...)
	ag.GET("/allusers", api.query, readOnlyOrAdmin())
	ag.POST("/register", api.register, adminOnly())
	ag.PATCH("/users/:id", api.update, adminOnly())
	ag.POST("/reset-password", api.resetPassword, adminOnly())
	ag.DELETE("/:id/delete-user", api.destroy, adminOnly())
	ag.POST("/grades/select/:id", api.selectGrade, adminOnly())
	ag.GET("/grade/selected", api.selectedGrade, adminOnly())
}

func (api *authApi) login(ctx echo.Context) error {
	usr, err := authenticate(api.store, ctx.FormValue("username"), ctx.FormValue("password"))
	if err != nil {
		return err
	}
	token, err := api.tokens.Generate(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (api *authApi) query(ctx echo.Context) error {
	users := api.store.Users()
	if len(users) == 0 {
		return notFound("User")
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *authApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if data.IsAdmin && !getContextUser(ctx).IsSuperAdmin() {
		return badRequest("Only super admin can create admin users")
	}

	usr := user.User{Username: data.Username, GradeCode: data.GradeCode, IsAdmin: data.IsAdmin}
	if err := usr.SetPassword(data.Password); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	if _, err := api.store.CreateUser(usr); err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusOK, user.Message{Message: "User registered successfully"})
}

func (api *authApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr := getContextUser(ctx)
	usr, err := api.store.UserByID(id)
	if err != nil {
		return notFound("User")
	}
	switch {
	case usr.IsSuperAdmin():
		return badRequest("Cannot update super admin account")
	case usr.ID == ctxUsr.ID:
		return badRequest("Cannot update own account")
	case usr.IsAdmin && !ctxUsr.IsSuperAdmin():
		return badRequest("Cannot update admin account")
	case data.IsAdmin != nil && *data.IsAdmin && !ctxUsr.IsSuperAdmin():
		return badRequest("Only super admin can grant admin rights")
	}

	if data.Username != nil {
		usr.Username = *data.Username
	}
	if data.GradeCode != nil {
		usr.GradeCode = core.StringPtr(*data.GradeCode)
	}
	if data.IsAdmin != nil {
		usr.IsAdmin = *data.IsAdmin
	}
	usr.PasswordHash = nil
	if _, err := api.store.UpdateUser(usr); err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, user.Message{Message: "User updated successfully"})
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	var data user.ResetPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetPassword")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.store.UserByID(data.UserID)
	if err != nil {
		return notFound("Target user")
	}
	switch {
	case usr.IsAdmin && !getContextUser(ctx).IsSuperAdmin():
		return badRequest("Only super admin can reset admin passwords")
	case usr.IsSuperAdmin():
		return badRequest("Cannot reset super admin password")
	}

	if err := usr.SetPassword(data.NewPassword); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	if _, err := api.store.UpdateUser(usr); err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, user.Message{
		Message: fmt.Sprintf("Password for user '%s' reset successfully", usr.Username),
	})
}

func (api *authApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	ctxUsr := getContextUser(ctx)
	usr, err := api.store.UserByID(id)
	if err != nil {
		return notFound("User")
	}
	switch {
	case api.store.IsGradeTeacher(usr.ID):
		return badRequest("Cannot delete user assigned as a grade teacher")
	case usr.ID == ctxUsr.ID:
		return badRequest("Cannot delete own account")
	case usr.IsSuperAdmin():
		return badRequest("Cannot delete super admin account")
	case usr.IsAdmin && !ctxUsr.IsSuperAdmin():
		return badRequest("Cannot delete admin account")
	}

	if err := api.store.DeleteUser(usr.ID); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.JSON(http.StatusOK, user.Message{Message: "User deleted successfully"})
}

func (api *authApi) selectGrade(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	grd, err := api.store.GradeByID(id)
	if err != nil {
		return notFound("Grade")
	}

	usr := getContextUser(ctx)
	if err := api.store.SelectGrade(usr.ID, grd.ID); err != nil {
		return errors.Wrap(err, "selecting grade")
	}
	return ctx.JSON(http.StatusOK, user.Message{
		Message: fmt.Sprintf("Grade '%s' assigned to user '%s' successfully", grd.Name, usr.Username),
	})
}

func (api *authApi) selectedGrade(ctx echo.Context) error {
	grd, err := api.store.SelectedGrade(getContextUser(ctx).ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Any Grade is not assigned to you")
	}
	return ctx.JSON(http.StatusOK, grd)
}
