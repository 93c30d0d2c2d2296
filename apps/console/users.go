package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/user"
)

func (cli *commandLine) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the user accounts",
	}

	var regAdmin bool
	var regGrade string
	registerCmd := &cobra.Command{
		Use:   "register USERNAME",
		Short: "Create an account; the password is prompted next",
		Args:  cobra.ExactArgs(1),
		RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
			pwd, err := cli.readPassword("Enter password: ")
			if err != nil {
				return err
			}
			msg, err := cli.users.Register(cmd.Context(), user.NewUser{
				Username:  args[0],
				Password:  pwd,
				GradeCode: core.StringPtr(regGrade),
				IsAdmin:   regAdmin,
			})
			if err != nil {
				return err
			}
			cli.printer().success("%s", msg.Message)
			return nil
		}),
	}
	registerCmd.Flags().BoolVar(&regAdmin, "admin", false, "grant admin rights")
	registerCmd.Flags().StringVar(&regGrade, "grade", "", "grade code")

	var updUsername, updGrade string
	var updAdmin bool
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Modify an account; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var uu user.UpdateUser
			flags := cmd.Flags()
			if flags.Changed("username") {
				uu.Username = &updUsername
			}
			if flags.Changed("grade") {
				uu.GradeCode = &updGrade
			}
			if flags.Changed("admin") {
				uu.IsAdmin = core.BoolPtr(updAdmin)
			}
			msg, err := cli.users.Update(cmd.Context(), id, uu)
			if err != nil {
				return err
			}
			cli.printer().success("%s", msg.Message)
			return nil
		}),
	}
	updateCmd.Flags().StringVar(&updUsername, "username", "", "new username")
	updateCmd.Flags().StringVar(&updGrade, "grade", "", "grade code")
	updateCmd.Flags().BoolVar(&updAdmin, "admin", false, "admin rights")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the accounts",
			Args:  cobra.NoArgs,
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				users, err := cli.users.QueryAll(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(users))
				for _, usr := range users {
					rows = append(rows, []string{strconv.Itoa(usr.ID), usr.Username, usr.Grade(), yesNo(usr.IsAdmin)})
				}
				cli.printer().table([]string{"ID", "USERNAME", "GRADE", "ADMIN"}, rows)
				return nil
			}),
		},
		registerCmd,
		updateCmd,
		&cobra.Command{
			Use:   "reset-password ID",
			Short: "Set a new password for an account; it is prompted next",
			Args:  cobra.ExactArgs(1),
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				pwd, err := cli.readPassword("Enter new password: ")
				if err != nil {
					return err
				}
				msg, err := cli.users.ResetPassword(cmd.Context(), user.ResetPassword{UserID: id, NewPassword: pwd})
				if err != nil {
					return err
				}
				cli.printer().success("%s", msg.Message)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete an account",
			Args:  cobra.ExactArgs(1),
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := cli.confirm("Delete user %d?", id); err != nil {
					return err
				}
				msg, err := cli.users.Delete(cmd.Context(), id)
				if err != nil {
					return err
				}
				cli.printer().success("%s", msg.Message)
				return nil
			}),
		},
	)
	return cmd
}
