package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
)

type gradeFlags struct {
	code      string
	name      string
	subjects  int
	electives int
	teacher   int
}

func (f *gradeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "grade code, e.g. G11")
	cmd.Flags().StringVar(&f.name, "name", "", "grade name")
	cmd.Flags().IntVar(&f.subjects, "subjects", 0, "number of subjects")
	cmd.Flags().IntVar(&f.electives, "electives", 0, "number of elective subjects per student (0: no electives)")
	cmd.Flags().IntVar(&f.teacher, "teacher", 0, "user ID of the grade teacher")
}

func (f *gradeFlags) teacherID() *int {
	if f.teacher <= 0 {
		return nil
	}
	return core.IntPtr(f.teacher)
}

func (cli *commandLine) gradesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grades",
		Short: "Manage the grades",
	}

	var newFlags gradeFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Add a grade",
		Args:  cobra.NoArgs,
		RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
			g, err := cli.grades.Create(cmd.Context(), grade.NewGrade{
				Code:           newFlags.code,
				Name:           newFlags.name,
				SubjectCount:   newFlags.subjects,
				HasElective:    newFlags.electives > 0,
				ElectiveCount:  newFlags.electives,
				GradeTeacherID: newFlags.teacherID(),
			})
			if err != nil {
				return err
			}
			cli.printer().success("Grade %s created", g.Code)
			return nil
		}),
	}
	newFlags.register(createCmd)

	var updFlags gradeFlags
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Modify a grade; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
			g, err := cli.findGrade(cmd, args[0])
			if err != nil {
				return err
			}
			ug := grade.UpdateGrade{
				Code:           g.Code,
				Name:           g.Name,
				SubjectCount:   g.SubjectCount,
				HasElective:    g.HasElective,
				ElectiveCount:  g.ElectiveCount,
				GradeTeacherID: g.GradeTeacherID,
			}
			flags := cmd.Flags()
			if flags.Changed("code") {
				ug.Code = updFlags.code
			}
			if flags.Changed("name") {
				ug.Name = updFlags.name
			}
			if flags.Changed("subjects") {
				ug.SubjectCount = updFlags.subjects
			}
			if flags.Changed("electives") {
				ug.HasElective = updFlags.electives > 0
				ug.ElectiveCount = updFlags.electives
			}
			if flags.Changed("teacher") {
				ug.GradeTeacherID = updFlags.teacherID()
			}
			if g, err = cli.grades.Update(cmd.Context(), g.ID, ug); err != nil {
				return err
			}
			cli.printer().success("Grade %s updated", g.Code)
			return nil
		}),
	}
	updFlags.register(updateCmd)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the grades",
			Args:  cobra.NoArgs,
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				grades, err := cli.grades.QueryAll(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(grades))
				for _, g := range grades {
					teacher := ""
					if g.Teacher != nil {
						teacher = g.Teacher.Username
					}
					rows = append(rows, []string{
						strconv.Itoa(g.ID), g.Code, g.Name, strconv.Itoa(g.SubjectCount),
						strconv.Itoa(g.ElectiveSlots()), teacher, activeLabel(g.IsActive),
					})
				}
				cli.printer().table([]string{"ID", "CODE", "NAME", "SUBJECTS", "ELECTIVES", "TEACHER", "STATUS"}, rows)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "teachers",
			Short: "List the users who may become grade teachers",
			Args:  cobra.NoArgs,
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				teachers, err := cli.grades.AvailableTeachers(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(teachers))
				for _, t := range teachers {
					rows = append(rows, []string{strconv.Itoa(t.ID), t.Username})
				}
				cli.printer().table([]string{"ID", "USERNAME"}, rows)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "mine",
			Short: "Show the grade you work on and its elective subjects",
			Args:  cobra.NoArgs,
			RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
				g, err := cli.grades.Mine(cmd.Context())
				if err != nil {
					return err
				}
				p := cli.printer()
				p.title(g.String())
				p.line("subjects: %d, elective subjects per student: %d", g.SubjectCount, g.ElectiveSlots())
				rows := make([][]string, 0, len(g.ElectiveSubjects))
				for _, sub := range g.ElectiveSubjects {
					rows = append(rows, []string{strconv.Itoa(sub.ID), sub.Code, sub.Name})
				}
				p.table([]string{"ID", "CODE", "ELECTIVE SUBJECT"}, rows)
				return nil
			}),
		},
		createCmd,
		updateCmd,
		&cobra.Command{
			Use:   "toggle ID",
			Short: "Activate or deactivate a grade",
			Args:  cobra.ExactArgs(1),
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				g, err := cli.findGrade(cmd, args[0])
				if err != nil {
					return err
				}
				if g, err = cli.grades.ToggleActive(cmd.Context(), g); err != nil {
					return err
				}
				cli.printer().success("Grade %s is now %s", g.Code, activeLabel(g.IsActive))
				return nil
			}),
		},
	)
	return cmd
}

func (cli *commandLine) findGrade(cmd *cobra.Command, arg string) (grade.Grade, error) {
	id, err := parseID(arg)
	if err != nil {
		return grade.Grade{}, err
	}
	grades, err := cli.grades.QueryAll(cmd.Context())
	if err != nil {
		return grade.Grade{}, err
	}
	for _, g := range grades {
		if g.ID == id {
			return g, nil
		}
	}
	return grade.Grade{}, core.NewValidationError(errors.Errorf("Grade %d not found", id))
}
