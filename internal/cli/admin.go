package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evcraddock/amlak/internal/auth"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts for the web dashboard",
	}

	cmd.AddCommand(
		newAdminAddCmd(),
		newAdminPasswdCmd(),
		newAdminListCmd(),
		newAdminRemoveCmd(),
	)

	return cmd
}

func newAdminAddCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an admin account",
		Long:  "Create an admin account. Without --password the password is read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}

			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)

			a, err := auth.NewAdminStore(database).Add(args[0], pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Admin %q created.\n", a.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (default: read from stdin)")

	return cmd
}

func newAdminPasswdCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Change an admin's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}

			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)

			if err := auth.NewAdminStore(database).SetPassword(args[0], pw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Password changed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "new password (default: read from stdin)")

	return cmd
}

func newAdminListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)

			admins, err := auth.NewAdminStore(database).List()
			if err != nil {
				return err
			}

			if isJSON() {
				if admins == nil {
					admins = []auth.Admin{}
				}
				return printJSON(cmd.OutOrStdout(), admins)
			}
			return printAdmins(cmd.OutOrStdout(), admins)
		},
	}
}

func newAdminRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <username>",
		Short: "Delete an admin account and its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)

			if err := auth.NewAdminStore(database).Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Admin %q removed.\n", args[0])
			return nil
		},
	}
}

// readPassword returns flagValue, or the first line of stdin when it is empty.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", fmt.Errorf("no password provided")
	}
	return pw, nil
}

func printAdmins(w io.Writer, admins []auth.Admin) error {
	if len(admins) == 0 {
		fmt.Fprintln(w, "No admins. Create one with 'amlak admin add <username>'.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "USERNAME\tCREATED\tLAST LOGIN"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, a := range admins {
		last := "-"
		if a.LastLoginAt != nil {
			last = a.LastLoginAt.Format("2006-01-02 15:04")
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Username, a.CreatedAt.Format("2006-01-02"), last); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return tw.Flush()
}
