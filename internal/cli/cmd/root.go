// Package cmd provides Cobra CLI commands for prefsync.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grammeal/prefsync/internal/cli"
	"github.com/grammeal/prefsync/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "prefsync",
		Short: "Preference detection and synchronization engine",
		Long: `Prefsync detects the user's preferred color scheme, language, and
viewport safe-area insets from prioritized signal sources, resolves
them deterministically, and projects the results onto the application
environment.

Sources are probed in configurable priority order (manual override,
host application, persisted choice, system signals) and every failure
is non-fatal: storage and detection errors degrade to the next source
instead of breaking resolution.

Use 'prefsync resolve' for a one-shot detection report, 'prefsync
watch' for a live view driven by change events, or 'prefsync config'
to inspect the configuration.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "schema", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("prefsync %s (%s, built %s, %s)\n",
			orUnknown(buildInfo.Version),
			orUnknown(buildInfo.Commit),
			orUnknown(buildInfo.BuildDate),
			orUnknown(buildInfo.GoVersion),
		)
	},
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
