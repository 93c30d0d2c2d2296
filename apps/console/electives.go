package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/elective"
)

const workflowHelp = `commands:
  list                 students of the selected year
  pending              students still missing elective subjects
  year [LABEL]         show or select the academic year
  edit STUDENT         edit a student (ID or roll)
  all                  edit every pending student in turn
  toggle SUBJECT...    select or deselect subjects (ID or code)
  select SUBJECT...    select subjects
  deselect SUBJECT...  deselect subjects
  show                 show the slots of the edited student
  save                 save the edited student
  skip                 move on to the next pending student without saving
  cancel               drop the edits and go back to the list
  refresh              refetch the students
  quit                 leave`

func (cli *commandLine) newWorkflow(ctx context.Context, yr string) (*elective.Workflow, error) {
	wf := elective.NewWorkflow(cli.electives, cli.grades, cli.years, cli.logger)
	if err := wf.Load(ctx); err != nil {
		return nil, err
	}
	if yr != "" {
		if err := wf.SetYear(ctx, yr); err != nil {
			return nil, err
		}
	}
	return wf, nil
}

func (cli *commandLine) electivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "electives",
		Short: "Assign elective subjects to the students of your grade",
	}

	var listYear string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the students with their elective subjects",
		Args:  cobra.NoArgs,
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			wf, err := cli.newWorkflow(cmd.Context(), listYear)
			if err != nil {
				return err
			}
			cli.showStudents(wf, wf.Students())
			return nil
		}),
	}
	listCmd.Flags().StringVar(&listYear, "year", "", "academic year (default: the current one)")

	var assignYear string
	assignCmd := &cobra.Command{
		Use:   "assign STUDENT SUBJECT...",
		Short: "Give a student exactly these elective subjects (IDs or codes)",
		Args:  cobra.MinimumNArgs(1),
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			wf, err := cli.newWorkflow(ctx, assignYear)
			if err != nil {
				return err
			}
			st, err := findWorkflowStudent(wf, args[0])
			if err != nil {
				return err
			}
			want, err := resolveSubjects(wf, args[1:])
			if err != nil {
				return err
			}
			if err := wf.Start(st); err != nil {
				return err
			}
			defer wf.Cancel()

			for _, subID := range wf.Slots().Selected() {
				if !containsInt(want, subID) {
					if err := wf.Deselect(subID); err != nil {
						return err
					}
				}
			}
			for _, subID := range want {
				if err := wf.Select(subID); err != nil {
					return err
				}
			}
			if err := wf.Save(ctx); err != nil {
				return err
			}
			cli.printer().success("Elective subjects of %s saved for %s", st.Name, wf.Year())
			return nil
		}),
	}
	assignCmd.Flags().StringVar(&assignYear, "year", "", "academic year (default: the current one)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Assign elective subjects interactively",
		Args:  cobra.NoArgs,
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			wf, err := cli.newWorkflow(cmd.Context(), "")
			if err != nil {
				return err
			}
			return cli.runWorkflow(cmd.Context(), wf)
		}),
	}

	cmd.AddCommand(listCmd, assignCmd, runCmd)
	return cmd
}

// runWorkflow reads workflow commands line by line until quit or the end of the input.
// A failed command is reported and the loop goes on.
func (cli *commandLine) runWorkflow(ctx context.Context, wf *elective.Workflow) error {
	p := cli.printer()
	g := wf.Grade()
	p.title(fmt.Sprintf("%s: %d elective subject(s) per student", g.String(), wf.K()))
	cli.showStudents(wf, wf.Students())

	for {
		fmt.Fprint(cli.out, workflowPrompt(wf))
		line, err := cli.readLine()
		if err == io.EOF {
			fmt.Fprintln(cli.out)
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := cli.workflowStep(ctx, wf, fields[0], fields[1:]); err != nil {
			p.failure(errorMessage(err))
		}
	}
}

func workflowPrompt(wf *elective.Workflow) string {
	st, editing := wf.Current()
	if !editing {
		return fmt.Sprintf("electives [%s]> ", wf.Year())
	}
	if pos, total := wf.Progress(); total > 0 {
		return fmt.Sprintf("%s (%d/%d) [%d/%d]> ", st.Roll, pos, total, wf.Slots().Count(), wf.K())
	}
	return fmt.Sprintf("%s [%d/%d]> ", st.Roll, wf.Slots().Count(), wf.K())
}

func (cli *commandLine) workflowStep(ctx context.Context, wf *elective.Workflow, name string, args []string) error {
	p := cli.printer()
	switch name {
	case "help":
		p.line(workflowHelp)
	case "list":
		cli.showStudents(wf, wf.Students())
	case "pending":
		cli.showStudents(wf, wf.Pending())
	case "refresh":
		if err := wf.Refresh(ctx); err != nil {
			return err
		}
		cli.showStudents(wf, wf.Students())
	case "year":
		if len(args) == 0 {
			labels := make([]string, 0, len(wf.Years()))
			for _, y := range wf.Years() {
				labels = append(labels, y.Label)
			}
			p.line("%s (available: %s)", wf.Year(), strings.Join(labels, ", "))
			return nil
		}
		if err := wf.SetYear(ctx, args[0]); err != nil {
			return err
		}
		cli.showStudents(wf, wf.Students())
	case "edit":
		if len(args) != 1 {
			return core.NewValidationError(errors.New("usage: edit STUDENT"))
		}
		st, err := findWorkflowStudent(wf, args[0])
		if err != nil {
			return err
		}
		if err := wf.Start(st); err != nil {
			return err
		}
		cli.showSlots(wf)
	case "all":
		if err := wf.StartAll(); err != nil {
			return err
		}
		cli.showSlots(wf)
	case "toggle", "select", "deselect":
		ids, err := resolveSubjects(wf, args)
		if err != nil {
			return err
		}
		step := map[string]func(int) error{"toggle": wf.Toggle, "select": wf.Select, "deselect": wf.Deselect}[name]
		for _, id := range ids {
			if err := step(id); err != nil {
				return err
			}
		}
		cli.showSlots(wf)
	case "show":
		if _, editing := wf.Current(); !editing {
			return elective.ErrNotEditing
		}
		cli.showSlots(wf)
	case "save":
		st, _ := wf.Current()
		if err := wf.Save(ctx); err != nil {
			return err
		}
		p.success("Elective subjects of %s saved", st.Name)
		cli.afterStep(wf)
	case "skip":
		if err := wf.Skip(ctx); err != nil {
			return err
		}
		cli.afterStep(wf)
	case "cancel":
		wf.Cancel()
		cli.showStudents(wf, wf.Students())
	default:
		return core.NewValidationError(errors.Errorf("unknown command %q; try help", name))
	}
	return nil
}

// afterStep shows the next student of an all-mode session or the refreshed list.
func (cli *commandLine) afterStep(wf *elective.Workflow) {
	if _, editing := wf.Current(); editing {
		cli.showSlots(wf)
		return
	}
	cli.showStudents(wf, wf.Students())
}

func (cli *commandLine) showStudents(wf *elective.Workflow, students []elective.Student) {
	g := wf.Grade()
	rows := make([][]string, 0, len(students))
	for _, st := range students {
		status := "pending"
		if wf.HasAssignment(st) {
			status = "assigned"
		}
		var codes []string
		for _, a := range st.ForYear(wf.Year()) {
			if sub, ok := g.ElectiveSubject(a.SubjectID); ok {
				codes = append(codes, sub.Code)
			} else {
				codes = append(codes, "#"+strconv.Itoa(a.SubjectID))
			}
		}
		rows = append(rows, []string{strconv.Itoa(st.ID), st.Roll, st.Name, status, strings.Join(codes, ", ")})
	}
	p := cli.printer()
	p.line("Year %s: %d student(s), %d pending", wf.Year(), len(wf.Students()), len(wf.Pending()))
	p.table([]string{"ID", "ROLL", "NAME", "STATUS", "ELECTIVES"}, rows)
}

func (cli *commandLine) showSlots(wf *elective.Workflow) {
	st, _ := wf.Current()
	slots := wf.Slots()
	p := cli.printer()
	p.title(fmt.Sprintf("%s (roll %s), year %s", st.Name, st.Roll, wf.SessionYear()))
	for _, sub := range wf.Grade().ElectiveSubjects {
		mark := " "
		if slots.Contains(sub.ID) {
			mark = "x"
		}
		p.line("  [%s] %-3d %-8s %s", mark, sub.ID, sub.Code, sub.Name)
	}
	p.line("Selected %d of %d", slots.Count(), wf.K())
}

func findWorkflowStudent(wf *elective.Workflow, arg string) (elective.Student, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if st, ok := wf.Student(id); ok {
			return st, nil
		}
	}
	for _, st := range wf.Students() {
		if st.Roll == arg {
			return st, nil
		}
	}
	return elective.Student{}, core.NewValidationError(errors.Errorf("Student %s not found", arg))
}

// resolveSubjects maps subject IDs or codes to IDs of the grade's elective catalog.
func resolveSubjects(wf *elective.Workflow, args []string) ([]int, error) {
	g := wf.Grade()
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		if id, err := strconv.Atoi(arg); err == nil && g.HasElectiveSubject(id) {
			ids = append(ids, id)
			continue
		}
		var found bool
		for _, sub := range g.ElectiveSubjects {
			if strings.EqualFold(sub.Code, arg) {
				ids = append(ids, sub.ID)
				found = true
				break
			}
		}
		if !found {
			return nil, core.NewValidationError(errors.Errorf("%s is not an elective subject of %s", arg, g.Code))
		}
	}
	return ids, nil
}

func containsInt(ints []int, i int) bool {
	for _, v := range ints {
		if v == i {
			return true
		}
	}
	return false
}
