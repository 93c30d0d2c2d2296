package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trezcool/schooladmin/core/year"
)

func (cli *commandLine) yearsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "years",
		Short: "Manage the academic years",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the academic years",
			Args:  cobra.NoArgs,
			RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
				years, err := cli.years.QueryAll(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(years))
				for _, y := range years {
					current := ""
					if y.IsCurrent {
						current = "current"
					}
					rows = append(rows, []string{strconv.Itoa(y.ID), y.Label, current})
				}
				cli.printer().table([]string{"ID", "YEAR", ""}, rows)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "current",
			Short: "Show the current academic year",
			Args:  cobra.NoArgs,
			RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
				y, err := cli.years.Current(cmd.Context())
				if err != nil {
					return err
				}
				cli.printer().line("%s", y.Label)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "create YEAR",
			Short: "Add an academic year",
			Args:  cobra.ExactArgs(1),
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				y, err := cli.years.Create(cmd.Context(), year.NewYear{Label: args[0]})
				if err != nil {
					return err
				}
				cli.printer().success("Year %s created", y.Label)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "set-current ID",
			Short: "Make a year the current one",
			Args:  cobra.ExactArgs(1),
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				y, err := cli.years.SetCurrent(cmd.Context(), id)
				if err != nil {
					return err
				}
				cli.printer().success("%s is now the current year", y.Label)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a year",
			Args:  cobra.ExactArgs(1),
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := cli.confirm("Delete year %d?", id); err != nil {
					return err
				}
				if err := cli.years.Delete(cmd.Context(), id); err != nil {
					return err
				}
				cli.printer().success("Year deleted")
				return nil
			}),
		},
	)
	return cmd
}
