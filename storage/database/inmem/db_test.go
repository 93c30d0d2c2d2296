package inmemdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/student"
	"github.com/trezcool/schooladmin/core/user"
)

func TestDB_Years(t *testing.T) {
	db := New()

	y1, err := db.CreateYear("2080")
	require.NoError(t, err)
	assert.True(t, y1.IsCurrent, "first year is current")
	y2, err := db.CreateYear("2081")
	require.NoError(t, err)
	assert.False(t, y2.IsCurrent)

	_, err = db.CreateYear("2081")
	assert.Equal(t, ErrYearExists, err)

	_, err = db.SetCurrentYear(y2.ID)
	require.NoError(t, err)
	var current []string
	for _, y := range db.Years() {
		if y.IsCurrent {
			current = append(current, y.Label)
		}
	}
	assert.Equal(t, []string{"2081"}, current, "exactly one current year")

	require.NoError(t, db.DeleteYear(y1.ID))
	assert.Equal(t, ErrNotFound, db.DeleteYear(y1.ID))
}

func TestDB_UsersAndGrades(t *testing.T) {
	db := New()

	admin, err := db.CreateUser(user.User{Username: "admin", IsAdmin: true})
	require.NoError(t, err)
	teacher, err := db.CreateUser(user.User{Username: "teacher"})
	require.NoError(t, err)
	_, err = db.CreateUser(user.User{Username: "another"})
	require.NoError(t, err)
	_, err = db.CreateUser(user.User{Username: "teacher"})
	assert.Equal(t, ErrUsernameExists, err)

	names := func(users []user.User) []string {
		var out []string
		for _, u := range users {
			out = append(out, u.Username)
		}
		return out
	}
	assert.Equal(t, []string{"admin", "another", "teacher"}, names(db.Users()))

	grd, err := db.CreateGrade(grade.Grade{Code: "G11", Name: "Eleven", SubjectCount: 6, GradeTeacherID: core.IntPtr(teacher.ID)})
	require.NoError(t, err)
	require.NotNil(t, grd.Teacher)
	assert.Equal(t, "teacher", grd.Teacher.Username)
	assert.True(t, db.IsGradeTeacher(teacher.ID))
	assert.Equal(t, []grade.Teacher{{ID: 3, Username: "another"}}, db.AvailableTeachers())

	_, err = db.SelectedGrade(admin.ID)
	assert.Equal(t, ErrNotFound, err)
	require.NoError(t, db.SelectGrade(admin.ID, grd.ID))
	sel, err := db.SelectedGrade(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, grd.ID, sel.ID)

	hash := []byte("hash")
	admin.PasswordHash = hash
	_, err = db.UpdateUser(admin)
	require.NoError(t, err)
	admin.PasswordHash = nil
	admin.Username = "root"
	updated, err := db.UpdateUser(admin)
	require.NoError(t, err)
	assert.Equal(t, hash, updated.PasswordHash, "password kept")
}

func TestDB_StudentsAndElectives(t *testing.T) {
	db := New()
	st, err := db.CreateStudentWithElectives(
		student.Student{Roll: "2", Name: "B", Year: "2081", GradeID: 1, IsActive: true},
		[]student.ElectivePick{{SubjectID: 10, Year: "2081"}, {SubjectID: 11, Year: "2081"}},
	)
	require.NoError(t, err)
	_, err = db.CreateStudent(student.Student{Roll: "1", Name: "A", GradeID: 1, IsActive: true})
	require.NoError(t, err)
	_, err = db.CreateStudent(student.Student{Roll: "1", Name: "Dup", GradeID: 1})
	assert.Equal(t, ErrRollExists, err)
	_, err = db.CreateStudent(student.Student{Roll: "0", Name: "Gone", GradeID: 1})
	require.NoError(t, err)

	rolls := func(students []student.Student) []string {
		var out []string
		for _, s := range students {
			out = append(out, s.Roll)
		}
		return out
	}
	assert.Equal(t, []string{"1", "2", "0"}, rolls(db.Students(1)), "active first, then by roll")

	withElectives := db.StudentsWithElectives(1)
	require.Len(t, withElectives, 2)
	assert.Equal(t, 2, withElectives[1].CountForYear("2081"))

	_, err = db.CreateElective(st.ID, 10, "2081")
	assert.Equal(t, ErrElectiveTaken, err)

	a, err := db.UpdateElective(1, 11, "2081")
	require.NoError(t, err, "a swap passes through a repeated subject")
	assert.Equal(t, 11, a.SubjectID)
	_, err = db.UpdateElective(2, 10, "2081")
	require.NoError(t, err)

	a, err = db.UpdateElective(1, 12, "2081")
	require.NoError(t, err)
	assert.Equal(t, 12, a.SubjectID)
	_, holder, err := db.ElectiveByID(1)
	require.NoError(t, err)
	assert.Equal(t, st.ID, holder)

	require.NoError(t, db.DeleteElective(1))
	assert.Len(t, db.ElectivesByStudent(st.ID), 1)
}
