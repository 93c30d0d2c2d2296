package restapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/elective"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recorded struct {
	method, path, body, auth, contentType, requestID string
}

func newTestClient(t *testing.T, status int, resp string) (*Client, *[]recorded) {
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{
			method:      r.Method,
			path:        r.URL.Path,
			body:        string(body),
			auth:        r.Header.Get("Authorization"),
			contentType: r.Header.Get("Content-Type"),
			requestID:   r.Header.Get(headerRequestID),
		})
		w.Header().Set("Content-Type", mimeJSON)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", Tokens: staticToken("tok")}), &calls
}

func TestClient_ElectivePaths(t *testing.T) {
	ctx := context.Background()

	c, calls := newTestClient(t, http.StatusOK, `{"id":9,"sub_id":4,"year":"2081"}`)
	repo := NewElectiveRepository(c)

	a, err := repo.Create(ctx, 3, elective.NewAssignment{StudentID: 3, SubjectID: 4, Year: "2081"})
	require.NoError(t, err)
	assert.Equal(t, elective.Assignment{ID: 9, SubjectID: 4, Year: "2081"}, a)

	_, err = repo.Update(ctx, 9, elective.UpdateAssignment{ID: 9, SubjectID: 4, Year: "2081", StudentID: 3})
	require.NoError(t, err)

	require.Len(t, *calls, 2)
	create, update := (*calls)[0], (*calls)[1]
	assert.Equal(t, http.MethodPost, create.method)
	assert.Equal(t, "/electives/3", create.path)
	assert.JSONEq(t, `{"student_id":3,"sub_id":4,"year":"2081"}`, create.body)
	assert.Equal(t, "Bearer tok", create.auth)
	assert.Equal(t, mimeJSON, create.contentType)
	assert.NotEmpty(t, create.requestID)

	assert.Equal(t, http.MethodPut, update.method)
	assert.Equal(t, "/electives/9", update.path)
	assert.JSONEq(t, `{"id":9,"sub_id":4,"year":"2081","student_id":3}`, update.body)
	assert.NotEqual(t, create.requestID, update.requestID)
}

func TestClient_Login(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{"access_token":"abc","token_type":"bearer"}`)
	c.SetTokenSource(nil)

	token, err := NewUserRepository(c).Login(context.Background(), "admin", "p@ss")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	call := (*calls)[0]
	assert.Equal(t, "/auth/login", call.path)
	assert.Equal(t, mimeForm, call.contentType)
	assert.Equal(t, "password=p%40ss&username=admin", call.body)
	assert.Empty(t, call.auth)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		resp       string
		wantDetail string
	}{
		{name: "detail string", status: http.StatusBadRequest, resp: `{"detail":"Username already exists"}`, wantDetail: "Username already exists"},
		{
			name: "detail list", status: http.StatusUnprocessableEntity,
			resp:       `{"detail":[{"loc":["body","roll"],"msg":"field required"},{"msg":"bad year"}]}`,
			wantDetail: "field required; bad year",
		},
		{name: "error field", status: http.StatusForbidden, resp: `{"error":"permission denied"}`, wantDetail: "permission denied"},
		{name: "no body", status: http.StatusNotFound, resp: ``, wantDetail: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.status, tt.resp)
			_, err := NewYearRepository(c).QueryAll(context.Background())
			require.Error(t, err)

			apiErr, ok := core.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.Equal(t, tt.wantDetail, core.Message(err, ""))
		})
	}
}

func TestClient_NotFound(t *testing.T) {
	c, _ := newTestClient(t, http.StatusNotFound, `{"detail":"Any Grade is not assigned to you"}`)
	_, err := NewUserRepository(c).SelectedGrade(context.Background())
	assert.True(t, core.IsNotFound(err))
	assert.Equal(t, "Any Grade is not assigned to you", core.Message(err, "x"))
}
