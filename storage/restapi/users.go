package restapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/session"
	"github.com/trezcool/schooladmin/core/user"
)

type UserRepository struct {
	c *Client
}

var (
	_ user.Repository       = (*UserRepository)(nil)
	_ session.Authenticator = (*UserRepository)(nil)
)

func NewUserRepository(c *Client) *UserRepository {
	return &UserRepository{c: c}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login posts the credentials as a form, the way the backend's OAuth2 password flow expects them.
func (repo *UserRepository) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp tokenResponse
	if err := repo.c.postForm(ctx, "/auth/login", form, &resp); err != nil {
		return "", errors.Wrap(err, "logging in")
	}
	if resp.AccessToken == "" {
		return "", errors.Wrap(session.ErrInvalidToken, "empty access token")
	}
	return resp.AccessToken, nil
}

func (repo *UserRepository) QueryAll(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := repo.c.get(ctx, "/auth/allusers", &users)
	return users, errors.Wrap(err, "fetching users")
}

func (repo *UserRepository) Register(ctx context.Context, nu user.NewUser) (user.Message, error) {
	var msg user.Message
	err := repo.c.post(ctx, "/auth/register", nu, &msg)
	return msg, errors.Wrap(err, "registering user")
}

func (repo *UserRepository) Update(ctx context.Context, id int, uu user.UpdateUser) (user.Message, error) {
	var msg user.Message
	err := repo.c.patch(ctx, "/auth/users/"+strconv.Itoa(id), uu, &msg)
	return msg, errors.Wrap(err, "updating user")
}

func (repo *UserRepository) ResetPassword(ctx context.Context, rp user.ResetPassword) (user.Message, error) {
	var msg user.Message
	err := repo.c.post(ctx, "/auth/reset-password", rp, &msg)
	return msg, errors.Wrap(err, "resetting password")
}

func (repo *UserRepository) Delete(ctx context.Context, id int) (user.Message, error) {
	var msg user.Message
	err := repo.c.delete(ctx, "/auth/"+strconv.Itoa(id)+"/delete-user", &msg)
	return msg, errors.Wrap(err, "deleting user")
}

func (repo *UserRepository) SelectGrade(ctx context.Context, gradeID int) (user.Message, error) {
	var msg user.Message
	err := repo.c.post(ctx, "/auth/grades/select/"+strconv.Itoa(gradeID), nil, &msg)
	return msg, errors.Wrap(err, "selecting grade")
}

func (repo *UserRepository) SelectedGrade(ctx context.Context) (grade.Grade, error) {
	var g grade.Grade
	err := repo.c.get(ctx, "/auth/grade/selected", &g)
	return g, errors.Wrap(err, "fetching selected grade")
}
