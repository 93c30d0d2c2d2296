package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core/session"
	"github.com/trezcool/schooladmin/core/user"
	"github.com/trezcool/schooladmin/tests"
)

func Test_authApi_login(t *testing.T) {
	be := testutil.NewServer(t)

	tests := []struct {
		name     string
		username string
		password string
		wantCode int
	}{
		{name: "wrong password", username: testutil.AdminUsername, password: "nope", wantCode: http.StatusUnauthorized},
		{name: "unknown user", username: "ghost", password: testutil.AdminPassword, wantCode: http.StatusUnauthorized},
		{name: "ok", username: " " + testutil.AdminUsername, password: testutil.AdminPassword, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newFormRequest("/auth/login", url.Values{"username": {tt.username}, "password": {tt.password}})
			be.Server.ServeHTTP(rec, req)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				assert.JSONEq(t, `{"detail":"Invalid username or password"}`, rec.Body.String())
				return
			}

			var resp struct {
				AccessToken string `json:"access_token"`
				TokenType   string `json:"token_type"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "bearer", resp.TokenType)

			id, err := session.DecodeToken(resp.AccessToken, time.Now())
			require.NoError(t, err)
			assert.Equal(t, testutil.AdminUsername, id.Username)
			assert.True(t, id.IsAdmin)
		})
	}
}

func Test_authApi_guards(t *testing.T) {
	be := testutil.NewServer(t)
	teacher := testutil.CreateUser(t, be.DB, "teacher", "pwd", false)
	teacherToken := getToken(t, be, teacher)

	runHTTPTests(t, be, []httpTest{
		{name: "auth required", path: "/auth/allusers", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{
			name: "bad token", path: "/auth/allusers", token: "a.b.c",
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, httpErr{Detail: "Invalid token"}),
		},
		{
			name: "unknown subject", path: "/auth/allusers", token: getToken(t, be, user.User{Username: "ghost"}),
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, httpErr{Detail: "User not found"}),
		},
		{name: "read-only user may list", path: "/auth/allusers/", token: teacherToken, wantCode: http.StatusOK},
		{
			name: "admin required", method: http.MethodPost, path: "/auth/register", token: teacherToken,
			body:     []byte(`{"username":"x","password":"y"}`),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Detail: "Admin permission required"}),
		},
	})
}

func Test_authApi_manageUsers(t *testing.T) {
	be := testutil.NewServer(t)
	rootToken := getToken(t, be, be.Admin)
	admin2 := testutil.CreateUser(t, be.DB, "admin2", "pwd", true)
	admin2Token := getToken(t, be, admin2)
	teacher := testutil.CreateUser(t, be.DB, "teacher", "pwd", false)
	plain := testutil.CreateUser(t, be.DB, "plain", "pwd", false)
	testutil.CreateGrade(t, be.DB, "G11", 6, 2, &teacher)

	msg := func(m string) []byte { return marshalObj(t, user.Message{Message: m}) }
	detail := func(d string) []byte { return marshalObj(t, httpErr{Detail: d}) }

	runHTTPTests(t, be, []httpTest{
		{
			name: "register validation", method: http.MethodPost, path: "/auth/register", token: rootToken,
			body:     []byte(`{"username":"  ","password":""}`),
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "register duplicate", method: http.MethodPost, path: "/auth/register", token: rootToken,
			body:     []byte(`{"username":"plain","password":"x"}`),
			wantCode: http.StatusBadRequest, wantData: detail("Username already exists"),
		},
		{
			name: "only super admin creates admins", method: http.MethodPost, path: "/auth/register", token: admin2Token,
			body:     []byte(`{"username":"boss","password":"x","is_admin":true}`),
			wantCode: http.StatusBadRequest, wantData: detail("Only super admin can create admin users"),
		},
		{
			name: "register", method: http.MethodPost, path: "/auth/register", token: admin2Token,
			body:     []byte(`{"username":"newbie","password":"x"}`),
			wantCode: http.StatusOK, wantData: msg("User registered successfully"),
		},
		{
			name: "cannot update super admin", method: http.MethodPatch, path: "/auth/users/1", token: admin2Token,
			body: []byte(`{"username":"x"}`), wantCode: http.StatusBadRequest, wantData: detail("Cannot update super admin account"),
		},
		{
			name: "cannot update own account", method: http.MethodPatch, path: "/auth/users/2", token: admin2Token,
			body: []byte(`{"username":"x"}`), wantCode: http.StatusBadRequest, wantData: detail("Cannot update own account"),
		},
		{
			name: "only super admin grants admin", method: http.MethodPatch, path: "/auth/users/4", token: admin2Token,
			body: []byte(`{"is_admin":true}`), wantCode: http.StatusBadRequest, wantData: detail("Only super admin can grant admin rights"),
		},
		{
			name: "update", method: http.MethodPatch, path: "/auth/users/4", token: rootToken,
			body: []byte(`{"username":"renamed"}`), wantCode: http.StatusOK, wantData: msg("User updated successfully"),
		},
		{
			name: "reset admin password", method: http.MethodPost, path: "/auth/reset-password", token: admin2Token,
			body:     marshalObj(t, user.ResetPassword{UserID: be.Admin.ID, NewPassword: "x"}),
			wantCode: http.StatusBadRequest, wantData: detail("Only super admin can reset admin passwords"),
		},
		{
			name: "reset password", method: http.MethodPost, path: "/auth/reset-password", token: admin2Token,
			body:     marshalObj(t, user.ResetPassword{UserID: plain.ID, NewPassword: "fresh"}),
			wantCode: http.StatusOK, wantData: msg("Password for user 'renamed' reset successfully"),
		},
		{
			name: "cannot delete grade teacher", method: http.MethodDelete, path: "/auth/3/delete-user", token: rootToken,
			wantCode: http.StatusBadRequest, wantData: detail("Cannot delete user assigned as a grade teacher"),
		},
		{
			name: "cannot delete admin", method: http.MethodDelete, path: "/auth/1/delete-user", token: admin2Token,
			wantCode: http.StatusBadRequest, wantData: detail("Cannot delete super admin account"),
		},
		{
			name: "delete unknown", method: http.MethodDelete, path: "/auth/99/delete-user", token: rootToken,
			wantCode: http.StatusNotFound, wantData: detail("User not found"),
		},
		{
			name: "delete", method: http.MethodDelete, path: "/auth/4/delete-user", token: rootToken,
			wantCode: http.StatusOK, wantData: msg("User deleted successfully"),
		},
	})

	_, err := be.DB.UserByID(plain.ID)
	assert.Error(t, err, "deleted")
}

func Test_authApi_selectGrade(t *testing.T) {
	be := testutil.NewServer(t)
	token := getToken(t, be, be.Admin)
	grd := testutil.CreateGrade(t, be.DB, "G12", 6, 2, nil)

	runHTTPTests(t, be, []httpTest{
		{
			name: "nothing selected", path: "/auth/grade/selected", token: token,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Detail: "Any Grade is not assigned to you"}),
		},
		{
			name: "unknown grade", method: http.MethodPost, path: "/auth/grades/select/42", token: token,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Detail: "Grade not found"}),
		},
		{
			name: "select", method: http.MethodPost, path: "/auth/grades/select/1", token: token,
			wantCode: http.StatusOK, wantData: marshalObj(t, user.Message{Message: "Grade 'Grade G12' assigned to user 'admin' successfully"}),
		},
		{name: "selected", path: "/auth/grade/selected", token: token, wantCode: http.StatusOK, wantData: marshalObj(t, grd)},
	})
}
