// Package testutil runs the development backend in tests and seeds it.
package testutil

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/trezcool/schooladmin/apps/api/echo"
	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/session"
	"github.com/trezcool/schooladmin/core/student"
	"github.com/trezcool/schooladmin/core/subject"
	"github.com/trezcool/schooladmin/core/user"
	"github.com/trezcool/schooladmin/core/year"
	logsvc "github.com/trezcool/schooladmin/services/logger"
	"github.com/trezcool/schooladmin/storage/database/inmem"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin-pwd"
)

// Config returns the configuration of a test run.
func Config() *core.Config {
	conf := new(core.Config)
	conf.Env = "TEST"
	conf.AppName = "School Admin"
	conf.TestMode = true
	conf.API.Timeout = 5 * time.Second
	conf.API.UserAgent = "schooladmin-test"
	conf.Server.SecretKey = "test-secret"
	conf.Server.JWTExpirationDelta = time.Hour
	conf.Server.AdminUsername = AdminUsername
	conf.Server.AdminPassword = AdminPassword
	return conf
}

// NewLogger returns a logger writing nowhere.
func NewLogger() core.Logger {
	return logsvc.NewRollbarLogger(io.Discard, "TEST", Config())
}

// Backend is a running development backend.
type Backend struct {
	Conf   *core.Config
	DB     *inmemdb.DB
	Server echoapi.Server
	HTTP   *httptest.Server
	Admin  user.User
}

// NewServer starts a backend with only the super admin; it is stopped with the test.
func NewServer(t *testing.T) *Backend {
	t.Helper()

	conf := Config()
	db := inmemdb.New()
	admin, err := echoapi.SeedSuperAdmin(db, conf)
	if err != nil {
		t.Fatalf("SeedSuperAdmin() failed: %v", err)
	}
	server := echoapi.NewServer(&echoapi.Options{
		Conf:           conf,
		Logger:         NewLogger(),
		Store:          db,
		DisableReqLogs: true,
	})
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)
	conf.API.BaseURL = srv.URL

	return &Backend{Conf: conf, DB: db, Server: server, HTTP: srv, Admin: admin}
}

// Token signs an access token for usr the way the backend does.
func Token(t *testing.T, conf *core.Config, usr user.User) string {
	t.Helper()

	claims := session.Claims{IsAdmin: usr.IsAdmin}
	claims.Subject = usr.Username
	claims.ExpiresAt = time.Now().Add(conf.Server.JWTExpirationDelta).Unix()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(conf.Server.SecretKey))
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	return token
}

func CreateUser(t *testing.T, db *inmemdb.DB, uname, pwd string, isAdmin bool) user.User {
	t.Helper()

	usr := user.User{Username: uname, IsAdmin: isAdmin}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := db.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateYear adds a year, making it the current one when current is set.
func CreateYear(t *testing.T, db *inmemdb.DB, label string, current bool) year.Year {
	t.Helper()

	y, err := db.CreateYear(label)
	if err != nil {
		t.Fatalf("CreateYear() failed: %v", err)
	}
	if current {
		if y, err = db.SetCurrentYear(y.ID); err != nil {
			t.Fatalf("CreateYear() failed: %v", err)
		}
	}
	return y
}

// CreateGrade adds an active grade; electiveCount > 0 turns electives on.
func CreateGrade(t *testing.T, db *inmemdb.DB, code string, subjectCount, electiveCount int, teacher *user.User) grade.Grade {
	t.Helper()

	grd := grade.Grade{
		Code:          code,
		Name:          "Grade " + code,
		SubjectCount:  subjectCount,
		HasElective:   electiveCount > 0,
		ElectiveCount: electiveCount,
		IsActive:      true,
	}
	if teacher != nil {
		grd.GradeTeacherID = core.IntPtr(teacher.ID)
	}
	grd, err := db.CreateGrade(grd)
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return grd
}

func CreateSubject(t *testing.T, db *inmemdb.DB, gradeID int, code string, isElective bool) subject.Subject {
	t.Helper()

	sub, err := db.CreateSubject(subject.Subject{
		Code:        code,
		Name:        "Subject " + code,
		TheoryHours: 3,
		IsElective:  isElective,
		IsActive:    true,
		GradeID:     gradeID,
	})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}

func CreateStudent(t *testing.T, db *inmemdb.DB, gradeID int, roll, name, yr string) student.Student {
	t.Helper()

	st, err := db.CreateStudentWithElectives(student.Student{
		Roll:     roll,
		Name:     name,
		Year:     yr,
		GradeID:  gradeID,
		IsActive: true,
	}, nil)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}
