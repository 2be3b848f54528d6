// Package cmd provides the projectsync CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jrsteele09/project-sync-web/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "projectsync",
	Short: "Project Sync web client",
	Long: `projectsync serves the Project Sync web client on a local port.

It keeps one session with the Project Sync backend, restores it at start up
and routes every page through a role check.

Configuration:
  Config is loaded from projectsync.yaml in the current directory or from
  the file given with --config. Environment variables override config values
  with the PROJECT_SYNC_ prefix.
  Example: PROJECT_SYNC_BACKEND_URL=https://api.example.com/api

Commands:
  serve       Start the web client
  whoami      Restore the cached session and print who is logged in
  logout      End the cached session`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./projectsync.yaml)")
}

// loadConfig reads configuration and sets up the global logger to match it
func loadConfig() (config.Config, error) {
	c, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}
	setupLogging(c)
	return c, nil
}

func setupLogging(c config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if c.IsDev() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("app", c.GetAppName()).Logger()
}
