package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/subject"
)

type subjectFlags struct {
	code       string
	name       string
	theory     int
	practical  int
	isElective bool
}

func (f *subjectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "subject code")
	cmd.Flags().StringVar(&f.name, "name", "", "subject name")
	cmd.Flags().IntVar(&f.theory, "theory", 0, "theory credit hours")
	cmd.Flags().IntVar(&f.practical, "practical", 0, "practical credit hours")
	cmd.Flags().BoolVar(&f.isElective, "elective", false, "the subject is an elective one")
}

func (cli *commandLine) subjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "Manage the subjects of your grade",
	}

	var electivesOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the subjects",
		Args:  cobra.NoArgs,
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			query := cli.subjects.QueryAll
			if electivesOnly {
				query = cli.subjects.QueryElectives
			}
			subs, err := query(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(subs))
			for _, sub := range subs {
				rows = append(rows, []string{
					strconv.Itoa(sub.ID), sub.Code, sub.Name, strconv.Itoa(sub.TheoryHours),
					strconv.Itoa(sub.PracticalHours), yesNo(sub.IsElective), activeLabel(sub.IsActive),
				})
			}
			cli.printer().table([]string{"ID", "CODE", "NAME", "TH", "PR", "ELECTIVE", "STATUS"}, rows)
			return nil
		}),
	}
	listCmd.Flags().BoolVar(&electivesOnly, "electives", false, "only the elective subjects")

	var newFlags subjectFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Add a subject to your grade",
		Args:  cobra.NoArgs,
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			sub, err := cli.subjects.Create(cmd.Context(), subject.NewSubject{
				Code:           newFlags.code,
				Name:           newFlags.name,
				TheoryHours:    newFlags.theory,
				PracticalHours: newFlags.practical,
				IsElective:     newFlags.isElective,
			})
			if err != nil {
				return err
			}
			cli.printer().success("Subject %s created", sub.Code)
			return nil
		}),
	}
	newFlags.register(createCmd)

	var updFlags subjectFlags
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Modify a subject; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			sub, err := cli.findSubject(cmd, args[0])
			if err != nil {
				return err
			}
			us := subject.UpdateSubject{
				Code:           sub.Code,
				Name:           sub.Name,
				TheoryHours:    sub.TheoryHours,
				PracticalHours: sub.PracticalHours,
				IsElective:     sub.IsElective,
			}
			flags := cmd.Flags()
			if flags.Changed("code") {
				us.Code = updFlags.code
			}
			if flags.Changed("name") {
				us.Name = updFlags.name
			}
			if flags.Changed("theory") {
				us.TheoryHours = updFlags.theory
			}
			if flags.Changed("practical") {
				us.PracticalHours = updFlags.practical
			}
			if flags.Changed("elective") {
				us.IsElective = updFlags.isElective
			}
			if sub, err = cli.subjects.Update(cmd.Context(), sub.ID, us); err != nil {
				return err
			}
			cli.printer().success("Subject %s updated", sub.Code)
			return nil
		}),
	}
	updFlags.register(updateCmd)

	cmd.AddCommand(
		listCmd,
		createCmd,
		updateCmd,
		&cobra.Command{
			Use:   "toggle ID",
			Short: "Activate or deactivate a subject",
			Args:  cobra.ExactArgs(1),
			RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
				sub, err := cli.findSubject(cmd, args[0])
				if err != nil {
					return err
				}
				if sub, err = cli.subjects.ToggleActive(cmd.Context(), sub); err != nil {
					return err
				}
				cli.printer().success("Subject %s is now %s", sub.Code, activeLabel(sub.IsActive))
				return nil
			}),
		},
	)
	return cmd
}

func (cli *commandLine) findSubject(cmd *cobra.Command, arg string) (subject.Subject, error) {
	id, err := parseID(arg)
	if err != nil {
		return subject.Subject{}, err
	}
	subs, err := cli.subjects.QueryAll(cmd.Context())
	if err != nil {
		return subject.Subject{}, err
	}
	for _, sub := range subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return subject.Subject{}, core.NewValidationError(errors.Errorf("Subject %d not found", id))
}
