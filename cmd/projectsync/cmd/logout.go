package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the cached session",
	Long: `Tell the backend to end the session and delete the cached credential
token. The local token is removed even when the backend cannot be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(c, nil)
		if err != nil {
			return err
		}

		// Restore first so the cached token is presented to the backend
		a.gateway.RestoreSession(cmd.Context())

		result, err := a.gateway.Logout(cmd.Context())
		if err != nil {
			return err
		}
		if result.BackendErr != nil {
			log.Warn().Err(result.BackendErr).Msg("Backend did not confirm logout")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
