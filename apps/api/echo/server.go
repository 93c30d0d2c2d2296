package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/elective"
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/student"
	"github.com/trezcool/schooladmin/core/subject"
	"github.com/trezcool/schooladmin/core/user"
	"github.com/trezcool/schooladmin/core/year"
)

type (
	// Store is the persistence the backend serves from.
	Store interface {
		CreateUser(usr user.User) (user.User, error)
		UserByID(id int) (user.User, error)
		UserByUsername(username string) (user.User, error)
		Users() []user.User
		UpdateUser(usr user.User) (user.User, error)
		DeleteUser(id int) error
		AvailableTeachers() []grade.Teacher
		SelectGrade(userID, gradeID int) error
		SelectedGrade(userID int) (grade.Grade, error)

		Years() []year.Year
		CurrentYear() (year.Year, error)
		CreateYear(label string) (year.Year, error)
		SetCurrentYear(id int) (year.Year, error)
		DeleteYear(id int) error

		Grades() []grade.Grade
		GradeByID(id int) (grade.Grade, error)
		GradeByTeacher(userID int) (grade.Grade, error)
		CreateGrade(grd grade.Grade) (grade.Grade, error)
		UpdateGrade(grd grade.Grade) (grade.Grade, error)
		IsGradeTeacher(userID int) bool

		Subjects(gradeID int) []subject.Subject
		ElectiveSubjects(gradeID int) []grade.ElectiveSubject
		SubjectByID(id int) (subject.Subject, error)
		CreateSubject(sub subject.Subject) (subject.Subject, error)
		UpdateSubject(sub subject.Subject) (subject.Subject, error)

		Students(gradeID int) []student.Student
		StudentByID(id int) (student.Student, error)
		CreateStudentWithElectives(st student.Student, picks []student.ElectivePick) (student.Student, error)
		UpdateStudent(st student.Student) (student.Student, error)

		StudentsWithElectives(gradeID int) []elective.Student
		ElectivesByStudent(studentID int) []elective.Assignment
		ElectiveByID(id int) (elective.Assignment, int, error)
		CreateElective(studentID, subID int, year string) (elective.Assignment, error)
		UpdateElective(id, subID int, year string) (elective.Assignment, error)
		DeleteElective(id int) error
	}

	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		Store          Store
		Validate       *core.Validator
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(ctx context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		tokens   *tokenIssuer
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Validate == nil {
		opts.Validate = core.NewValidator()
	}
	s := &server{
		opts:     opts,
		app:      echo.New(),
		tokens:   newTokenIssuer(opts.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     conf.Server.AllowOrigins,
		AllowCredentials: true,
	}))
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: newRequestID,
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", home)

	auth := []echo.MiddlewareFunc{s.tokens.middleware(), loadUserMiddleware(s.opts.Store)}

	registerAuthAPI(s.app, auth, s.tokens, s.opts.Store, s.opts.Validate)
	registerYearAPI(s.app, auth, s.opts.Store, s.opts.Validate)
	registerGradeAPI(s.app, auth, s.opts.Store, s.opts.Validate)
	registerSubjectAPI(s.app, auth, s.opts.Store, s.opts.Validate)
	registerStudentAPI(s.app, auth, s.opts.Store, s.opts.Validate)
	registerElectiveAPI(s.app, auth, s.opts.Store)
}

func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.opts.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": "API is running",
		"auth":    "/auth/login",
	})
}
