package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/amlak/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Shows which server the CLI talks to and whether it answers its health check.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	serverURL := getServerURL()

	fmt.Fprintf(out, "Server:  %s\n", serverURL)
	if remoteURL() == "" {
		fmt.Fprintln(out, "Mode:    local catalog (no server configured)")
	} else {
		fmt.Fprintln(out, "Mode:    remote")
	}

	if err := client.New(serverURL).Health(); err != nil {
		fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	fmt.Fprintln(out, "Status:  ✓ connected")
	return nil
}
