package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/student"
)

func (cli *commandLine) studentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Manage the students of your grade",
	}

	var newStudent student.NewStudent
	var picks []int
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Add a student; grades with electives need exactly their count of --pick",
		Args:  cobra.NoArgs,
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			g, err := cli.grades.Mine(cmd.Context())
			if err != nil {
				return err
			}
			ns := newStudent
			ns.ElectiveSubjects = nil
			for _, subID := range picks {
				ns.ElectiveSubjects = append(ns.ElectiveSubjects, student.ElectivePick{SubjectID: subID})
			}
			st, err := cli.students.Create(cmd.Context(), ns, g.ElectiveSlots())
			if err != nil {
				return err
			}
			cli.printer().success("Student %s (roll %s) created", st.Name, st.Roll)
			return nil
		}),
	}
	createCmd.Flags().StringVar(&newStudent.Roll, "roll", "", "roll number")
	createCmd.Flags().StringVar(&newStudent.Name, "name", "", "full name")
	createCmd.Flags().StringVar(&newStudent.Year, "year", "", "academic year")
	createCmd.Flags().IntSliceVar(&picks, "pick", nil, "elective subject ID (repeat for each pick)")

	var upd student.UpdateStudent
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Modify a student; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			orig, err := cli.findStudent(cmd, args[0])
			if err != nil {
				return err
			}
			st, err := cli.students.Update(cmd.Context(), orig, upd)
			if err != nil {
				return err
			}
			cli.printer().success("Student %s (roll %s) updated", st.Name, st.Roll)
			return nil
		}),
	}
	updateCmd.Flags().StringVar(&upd.Roll, "roll", "", "roll number")
	updateCmd.Flags().StringVar(&upd.Name, "name", "", "full name")
	updateCmd.Flags().StringVar(&upd.Year, "year", "", "academic year")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the students",
			Args:  cobra.NoArgs,
			RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
				students, err := cli.students.QueryAll(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(students))
				for _, st := range students {
					rows = append(rows, []string{strconv.Itoa(st.ID), st.Roll, st.Name, st.Year, activeLabel(st.IsActive)})
				}
				cli.printer().table([]string{"ID", "ROLL", "NAME", "YEAR", "STATUS"}, rows)
				return nil
			}),
		},
		createCmd,
		updateCmd,
		&cobra.Command{
			Use:   "toggle ID",
			Short: "Activate or deactivate a student",
			Args:  cobra.ExactArgs(1),
			RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				st, err := cli.students.ToggleActive(cmd.Context(), id)
				if err != nil {
					return err
				}
				cli.printer().success("Student %s is now %s", st.Name, activeLabel(st.IsActive))
				return nil
			}),
		},
	)
	return cmd
}

func (cli *commandLine) findStudent(cmd *cobra.Command, arg string) (student.Student, error) {
	id, err := parseID(arg)
	if err != nil {
		return student.Student{}, err
	}
	students, err := cli.students.QueryAll(cmd.Context())
	if err != nil {
		return student.Student{}, err
	}
	for _, st := range students {
		if st.ID == id {
			return st, nil
		}
	}
	return student.Student{}, core.NewValidationError(errors.Errorf("Student %d not found", id))
}
