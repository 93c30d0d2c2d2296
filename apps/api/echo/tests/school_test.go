package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core/elective"
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/year"
	"github.com/trezcool/schooladmin/tests"
)

func Test_yearApi(t *testing.T) {
	be := testutil.NewServer(t)
	adminToken := getToken(t, be, be.Admin)
	teacherToken := getToken(t, be, testutil.CreateUser(t, be.DB, "teacher", "pwd", false))
	y1 := testutil.CreateYear(t, be.DB, "2080", true)

	runHTTPTests(t, be, []httpTest{
		{name: "list", path: "/years/", token: teacherToken, wantCode: http.StatusOK, wantData: marshalObj(t, []year.Year{y1})},
		{
			name: "admin only", method: http.MethodPost, path: "/years/", token: teacherToken,
			body: []byte(`{"year":"2081"}`), wantCode: http.StatusForbidden,
		},
		{
			name: "create", method: http.MethodPost, path: "/years/", token: adminToken,
			body: []byte(`{"year":" 2081 "}`), wantCode: http.StatusOK, wantData: marshalObj(t, year.Year{ID: 2, Label: "2081"}),
		},
		{
			name: "duplicate", method: http.MethodPost, path: "/years", token: adminToken,
			body: []byte(`{"year":"2081"}`), wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Detail: "Year already exists"}),
		},
		{
			name: "set current", method: http.MethodPatch, path: "/years/2/set-current", token: adminToken,
			wantCode: http.StatusOK, wantData: marshalObj(t, year.Year{ID: 2, Label: "2081", IsCurrent: true}),
		},
		{
			name: "current", path: "/years/current", token: teacherToken,
			wantCode: http.StatusOK, wantData: marshalObj(t, year.Year{ID: 2, Label: "2081", IsCurrent: true}),
		},
		{name: "delete", method: http.MethodDelete, path: "/years/1", token: adminToken, wantCode: http.StatusNoContent},
		{
			name: "delete unknown", method: http.MethodDelete, path: "/years/1", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Detail: "Year not found"}),
		},
	})
}

func Test_gradeApi(t *testing.T) {
	be := testutil.NewServer(t)
	adminToken := getToken(t, be, be.Admin)
	teacher := testutil.CreateUser(t, be.DB, "teacher", "pwd", false)
	teacherToken := getToken(t, be, teacher)

	runHTTPTests(t, be, []httpTest{
		{
			name: "no grade yet", path: "/grades/grade-by-user", token: teacherToken,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Detail: "You are not assigned to any grade yet"}),
		},
		{
			name: "available teachers", path: "/grades/available-grade-teachers", token: adminToken,
			wantCode: http.StatusOK, wantData: marshalObj(t, []grade.Teacher{{ID: teacher.ID, Username: "teacher"}}),
		},
		{
			name: "elective count too high", method: http.MethodPost, path: "/grades", token: adminToken,
			body:     []byte(`{"code":"G11","name":"Eleven","subject_count":2,"has_elective":true,"elective_count":3}`),
			wantCode: http.StatusUnprocessableEntity,
			wantData: []byte(`{"detail":[{"loc":["body","elective_count"],"msg":"Elective count cannot be greater than subject count"}]}`),
		},
		{
			name: "create", method: http.MethodPost, path: "/grades", token: adminToken,
			body:     []byte(`{"code":"G11","name":"Eleven","subject_count":6,"has_elective":true,"elective_count":2,"grade_teacher_id":2}`),
			wantCode: http.StatusOK,
		},
		{
			name: "toggle", method: http.MethodPatch, path: "/grades/1/toggle-active", token: adminToken,
			body: []byte(`{"is_active":false}`), wantCode: http.StatusOK,
		},
		{name: "teacher cannot create", method: http.MethodPost, path: "/grades", token: teacherToken, body: []byte(`{}`), wantCode: http.StatusForbidden},
	})

	grd, err := be.DB.GradeByID(1)
	require.NoError(t, err)
	assert.False(t, grd.IsActive)
	require.NotNil(t, grd.Teacher)
	assert.Equal(t, "teacher", grd.Teacher.Username)
}

func Test_electiveApi(t *testing.T) {
	be := testutil.NewServer(t)
	teacher := testutil.CreateUser(t, be.DB, "teacher", "pwd", false)
	token := getToken(t, be, teacher)
	other := testutil.CreateUser(t, be.DB, "other", "pwd", false)
	otherToken := getToken(t, be, other)

	testutil.CreateYear(t, be.DB, "2081", true)
	grd := testutil.CreateGrade(t, be.DB, "G11", 6, 2, &teacher)
	testutil.CreateGrade(t, be.DB, "G12", 6, 2, &other)
	subA := testutil.CreateSubject(t, be.DB, grd.ID, "A", true)
	subB := testutil.CreateSubject(t, be.DB, grd.ID, "B", true)
	core := testutil.CreateSubject(t, be.DB, grd.ID, "CORE", false)
	st := testutil.CreateStudent(t, be.DB, grd.ID, "1", "Sita", "2081")

	create := func(subID int, yr string) []byte {
		return marshalObj(t, elective.NewAssignment{StudentID: st.ID, SubjectID: subID, Year: yr})
	}

	runHTTPTests(t, be, []httpTest{
		{
			name: "catalog", path: "/grades/grade-by-user", token: token, wantCode: http.StatusOK,
			wantData: marshalObj(t, grade.WithElectiveSubjects{
				Grade: grd,
				ElectiveSubjects: []grade.ElectiveSubject{
					{ID: subA.ID, Code: "A", Name: "Subject A"},
					{ID: subB.ID, Code: "B", Name: "Subject B"},
				},
			}),
		},
		{
			name: "core subject rejected", method: http.MethodPost, path: "/electives/1", token: token,
			body: create(core.ID, "2081"), wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Detail: "Subject not found"}),
		},
		{
			name: "unknown year", method: http.MethodPost, path: "/electives/1", token: token,
			body: create(subA.ID, "1999"), wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Detail: "Year not found"}),
		},
		{
			name: "other grade", method: http.MethodPost, path: "/electives/1", token: otherToken,
			body: create(subA.ID, "2081"), wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Detail: "Student not found"}),
		},
		{
			name: "create", method: http.MethodPost, path: "/electives/1", token: token,
			body: create(subA.ID, "2081"), wantCode: http.StatusOK,
			wantData: marshalObj(t, elective.Assignment{ID: 1, SubjectID: subA.ID, Year: "2081"}),
		},
		{
			name: "duplicate", method: http.MethodPost, path: "/electives/1", token: token,
			body: create(subA.ID, "2081"), wantCode: http.StatusBadRequest,
		},
		{
			name: "update", method: http.MethodPut, path: "/electives/1", token: token,
			body:     marshalObj(t, elective.UpdateAssignment{ID: 1, SubjectID: subB.ID, Year: "2081", StudentID: st.ID}),
			wantCode: http.StatusOK, wantData: marshalObj(t, elective.Assignment{ID: 1, SubjectID: subB.ID, Year: "2081"}),
		},
		{
			name: "update unknown", method: http.MethodPut, path: "/electives/9", token: token,
			body:     marshalObj(t, elective.UpdateAssignment{ID: 9, SubjectID: subB.ID, Year: "2081", StudentID: st.ID}),
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Detail: "Elective subject not found"}),
		},
		{
			name: "by student", path: "/electives/student/1", token: token, wantCode: http.StatusOK,
			wantData: marshalObj(t, []elective.Assignment{{ID: 1, SubjectID: subB.ID, Year: "2081"}}),
		},
		{
			name: "students with electives", path: "/electives/", token: token, wantCode: http.StatusOK,
			wantData: marshalObj(t, []elective.Student{{
				ID: st.ID, Roll: "1", Name: "Sita",
				Electives: []elective.Assignment{{ID: 1, SubjectID: subB.ID, Year: "2081"}},
			}}),
		},
		{
			name: "delete", method: http.MethodDelete, path: "/electives/1", token: token,
			wantCode: http.StatusOK, wantData: []byte(`{"message":"Elective removed"}`),
		},
	})
}

func Test_studentApi_createWithElectives(t *testing.T) {
	be := testutil.NewServer(t)
	teacher := testutil.CreateUser(t, be.DB, "teacher", "pwd", false)
	token := getToken(t, be, teacher)
	grd := testutil.CreateGrade(t, be.DB, "G11", 6, 2, &teacher)
	subA := testutil.CreateSubject(t, be.DB, grd.ID, "A", true)
	subB := testutil.CreateSubject(t, be.DB, grd.ID, "B", true)

	post := func(body string) (int, string) {
		req, rec := newAuthRequest(http.MethodPost, "/students", token, []byte(body))
		be.Server.ServeHTTP(rec, req)
		return rec.Code, rec.Body.String()
	}

	code, body := post(`{"roll":"1","name":"Sita","year":"2081","elective_subjects":[{"sub_id":1}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body, "Please select exactly 2 elective subject(s)")

	code, body = post(`{"roll":"1","name":"Sita","year":"2081","elective_subjects":[{"sub_id":1},{"sub_id":99}]}`)
	assert.Equal(t, http.StatusNotFound, code, body)

	code, body = post(`{"roll":"1","name":"Sita","year":"2081","elective_subjects":[{"sub_id":1},{"sub_id":2}]}`)
	require.Equal(t, http.StatusOK, code, body)
	var created struct {
		ID       int  `json:"id"`
		GradeID  int  `json:"grade_id"`
		IsActive bool `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, grd.ID, created.GradeID)
	assert.True(t, created.IsActive)

	picks := be.DB.ElectivesByStudent(created.ID)
	require.Len(t, picks, 2)
	assert.Equal(t, []int{subA.ID, subB.ID}, []int{picks[0].SubjectID, picks[1].SubjectID})
	assert.Equal(t, "2081", picks[0].Year, "year defaults to the student's")

	code, _ = post(`{"roll":"1","name":"Dup","year":"2081","elective_subjects":[{"sub_id":1},{"sub_id":2}]}`)
	assert.Equal(t, http.StatusBadRequest, code, "roll is unique in a grade")

	req, rec := newAuthRequest(http.MethodPatch, "/students/1/toggle-active", token)
	be.Server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	st, err := be.DB.StudentByID(created.ID)
	require.NoError(t, err)
	assert.False(t, st.IsActive)
}
