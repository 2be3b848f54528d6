package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiJSON bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Restore the cached session and print who is logged in",
	Long: `Restore the session with the backend, using the cached credential token
when one is configured, and print the user and role.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(c, nil)
		if err != nil {
			return err
		}

		a.gateway.RestoreSession(cmd.Context())
		snap := a.store.Snapshot()

		out := cmd.OutOrStdout()
		if whoamiJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}
		if !snap.LoggedIn {
			fmt.Fprintln(out, "Not logged in")
			return nil
		}
		fmt.Fprintf(out, "%s (%s)\n", snap.User.DisplayName(), snap.Role)
		return nil
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiJSON, "json", false, "print the session as JSON")
	rootCmd.AddCommand(whoamiCmd)
}
