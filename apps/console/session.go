package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/session"
)

func (cli *commandLine) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login USERNAME",
		Short: "Log in; the password is prompted next",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := cli.readPassword("Enter password: ")
			if err != nil {
				return err
			}
			id, err := cli.sess.Login(cmd.Context(), args[0], pwd)
			if err != nil {
				return err
			}
			cli.printer().success("Welcome %s", id.Username)
			return nil
		},
	}
}

func (cli *commandLine) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.sess.Logout(); err != nil {
				return err
			}
			cli.printer().success("Logged out")
			return nil
		},
	}
}

func (cli *commandLine) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who is logged in and how the console renders",
		Args:  cobra.NoArgs,
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			id, _ := cli.sess.Identity()
			role, _ := cli.sess.EffectiveRole()

			p := cli.printer()
			p.line("username: %s", id.Username)
			p.line("role:     %s", id.Role())
			if role != id.Role() {
				p.line("view as:  %s", role)
			}
			if id.IsAdmin {
				if g, ok := cli.sess.AdminGrade(); ok {
					p.line("grade:    %s", g)
				} else {
					p.line("grade:    none selected")
				}
			}
			if !id.ExpiresAt.IsZero() {
				p.line("expires:  %s", id.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		}),
	}
}

func (cli *commandLine) viewAsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "view-as admin|user|reset",
		Short:     "Render the console as another role (admins only)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"admin", "user", "reset"},
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			if core.CleanString(args[0], true /* lower */) == "reset" {
				if err := cli.sess.ClearViewAs(); err != nil {
					return err
				}
				cli.printer().success("Role override cleared")
				return nil
			}
			role, err := session.ParseRole(args[0])
			if err != nil {
				return core.NewValidationError(err)
			}
			if err := cli.sess.SetViewAs(role); err != nil {
				return err
			}
			cli.printer().success("Viewing as %s", role)
			return nil
		}),
	}
}

func (cli *commandLine) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light|plain]",
		Short: "Show or set the colour theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cli.printer().line("%s", cli.sess.Theme())
				return nil
			}
			if err := cli.sess.SetTheme(core.CleanString(args[0], true /* lower */)); err != nil {
				return err
			}
			cli.printer().success("Theme set to %s", cli.sess.Theme())
			return nil
		},
	}
}

type menuSection struct {
	label string
	admin bool
	items []string
}

var menu = []menuSection{
	{label: "Admin Control", admin: true, items: []string{"users", "years", "grades", "roles"}},
	{label: "User Workspace", items: []string{"subjects", "students", "electives"}},
}

// menuCmd lists the sections for the effective role. An admin sees the user workspace once they
// selected a grade to administer.
func (cli *commandLine) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the sections available to you",
		Args:  cobra.NoArgs,
		RunE: cli.loggedIn(func(cmd *cobra.Command, args []string) error {
			role, _ := cli.sess.EffectiveRole()
			_, hasGrade := cli.sess.AdminGrade()

			p := cli.printer()
			for _, sec := range menu {
				if sec.admin && role != session.RoleAdmin {
					continue
				}
				if !sec.admin && role == session.RoleAdmin && !hasGrade {
					continue
				}
				p.title(sec.label)
				for _, item := range sec.items {
					p.line("  %s", item)
				}
			}
			return nil
		}),
	}
}

func (cli *commandLine) rolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Choose the grade you administer",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "select GRADE_ID",
			Short: "Administer the grade GRADE_ID",
			Args:  cobra.ExactArgs(1),
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				msg, err := cli.users.SelectGrade(cmd.Context(), id)
				if err != nil {
					return err
				}
				cli.printer().success("%s", msg.Message)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the grade you administer",
			Args:  cobra.NoArgs,
			RunE: cli.adminOnly(func(cmd *cobra.Command, args []string) error {
				g, ok := cli.sess.AdminGrade()
				if !ok {
					cli.printer().warn("Any Grade is not assigned to you")
					return nil
				}
				cli.printer().line("%s", g)
				return nil
			}),
		},
	)
	return cmd
}
