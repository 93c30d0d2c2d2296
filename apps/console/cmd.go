package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/elective"
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/session"
	"github.com/trezcool/schooladmin/core/student"
	"github.com/trezcool/schooladmin/core/subject"
	"github.com/trezcool/schooladmin/core/user"
	"github.com/trezcool/schooladmin/core/year"
	"github.com/trezcool/schooladmin/storage/restapi"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errNotLoggedIn  = errors.New("You are not logged in; run 'login' first")
	errAdminSection = errors.New("Admin permission required")
	errAborted      = errors.New("Aborted")
	errInvalidID    = errors.New("invalid id")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	in     *bufio.Reader
	out    io.Writer

	bus       *core.Bus
	sess      *session.Session
	years     *year.Service
	grades    *grade.Service
	subjects  *subject.Service
	students  *student.Service
	users     *user.Service
	electives elective.Repository

	yes bool
}

// newCommandLine wires the services of the console to the backend at conf.API.BaseURL.
// store keeps the token and the preferences between two runs.
func newCommandLine(conf *core.Config, logger core.Logger, store session.Store, in io.Reader, out io.Writer) *commandLine {
	client := restapi.NewClient(restapi.Options{
		BaseURL:   conf.API.BaseURL,
		Timeout:   conf.API.Timeout,
		UserAgent: conf.API.UserAgent,
	})
	usrRepo := restapi.NewUserRepository(client)
	validate := core.NewValidator()
	bus := core.NewBus()

	sess := session.New(store, usrRepo, usrRepo, bus, logger)
	if conf.State.Theme != "" {
		sess.DefaultTheme = conf.State.Theme
	}
	client.SetTokenSource(sess)

	return &commandLine{
		conf:      conf,
		logger:    logger,
		in:        bufio.NewReader(in),
		out:       out,
		bus:       bus,
		sess:      sess,
		years:     year.NewService(restapi.NewYearRepository(client), validate),
		grades:    grade.NewService(restapi.NewGradeRepository(client), validate),
		subjects:  subject.NewService(restapi.NewSubjectRepository(client), validate),
		students:  student.NewService(restapi.NewStudentRepository(client), validate),
		users:     user.NewService(usrRepo, validate, bus),
		electives: restapi.NewElectiveRepository(client),
	}
}

// run executes the command named by args (without the program name).
// A failed command is reported as an error toast and returned.
func (cli *commandLine) run(ctx context.Context, args []string) error {
	if err := cli.sess.Restore(ctx); err != nil {
		return err
	}

	root := cli.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		cli.printer().failure(errorMessage(err))
	}
	return err
}

func (cli *commandLine) close() {
	cli.sess.Close()
}

func (cli *commandLine) rootCmd() *cobra.Command {
	cli.yes = false
	root := &cobra.Command{
		Use:           "console",
		Short:         "Administer the school records: years, grades, subjects, students, electives and users",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.PersistentFlags().BoolVarP(&cli.yes, "yes", "y", false, "do not ask for confirmation")

	root.AddCommand(
		cli.loginCmd(),
		cli.logoutCmd(),
		cli.whoamiCmd(),
		cli.viewAsCmd(),
		cli.themeCmd(),
		cli.menuCmd(),
		cli.yearsCmd(),
		cli.gradesCmd(),
		cli.subjectsCmd(),
		cli.studentsCmd(),
		cli.usersCmd(),
		cli.rolesCmd(),
		cli.electivesCmd(),
	)
	return root
}

type runFunc func(cmd *cobra.Command, args []string) error

// loggedIn guards the commands of the user section; they work for both roles.
func (cli *commandLine) loggedIn(fn runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) error {
		if _, err := cli.sess.EffectiveRole(); err != nil {
			return errNotLoggedIn
		}
		return fn(cmd, args)
	}
}

// adminOnly guards the commands of the admin section.
func (cli *commandLine) adminOnly(fn runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) error {
		role, err := cli.sess.EffectiveRole()
		if err != nil {
			return errNotLoggedIn
		}
		if role != session.RoleAdmin {
			return errAdminSection
		}
		return fn(cmd, args)
	}
}

// readLine returns the next input line without its line ending; io.EOF once the input is exhausted.
func (cli *commandLine) readLine() (string, error) {
	line, err := cli.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// confirm asks the operator to confirm a destructive action, unless --yes was given.
func (cli *commandLine) confirm(format string, a ...interface{}) error {
	if cli.yes {
		return nil
	}
	fmt.Fprintf(cli.out, format+" [y/N]: ", a...)
	answer, err := cli.readLine()
	if err != nil && err != io.EOF {
		return err
	}
	switch core.CleanString(answer, true /* lower */) {
	case "y", "yes":
		return nil
	default:
		return errAborted
	}
}

func (cli *commandLine) readPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, core.NewValidationError(errors.Wrap(errInvalidID, s))
	}
	return id, nil
}

// errorMessage is what the operator reads when a command fails.
func errorMessage(err error) string {
	var saveErr *elective.SaveError
	if errors.As(err, &saveErr) {
		return fmt.Sprintf("%s (%d of %d elective subjects saved)",
			core.Message(saveErr.Err, "Failed to save elective subjects"), saveErr.Saved, saveErr.Total)
	}
	if _, ok := core.AsAPIError(err); ok {
		return core.Message(err, "Something went wrong")
	}
	return core.Message(err, errors.Cause(err).Error())
}
