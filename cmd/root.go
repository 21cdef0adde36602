package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"podbay/internal/argstore"
	"podbay/internal/runner"
)

// Exit codes for CLI commands.
// These follow common conventions so scripted invocations can branch on
// what went wrong.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeCommandFailed indicates an engine or systemctl command exited badly.
	ExitCodeCommandFailed = 2
	// ExitCodeInvalidArguments indicates the argument file failed validation.
	ExitCodeInvalidArguments = 3
)

var (
	configPath string
	debugLog   bool
)

// rootCmd represents the base command for the podbay application.
// Called without a subcommand it enters the interactive menu.
var rootCmd = &cobra.Command{
	Use:   "podbay",
	Short: "Manage a single privileged container on podman and systemd",
	Long: `podbay builds, runs and supervises one named container on top of
podman and systemd: interactively through a framed action menu, or
scriptably through subcommands.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "podbay version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return ExitCodeCommandFailed
	}

	var validationErr *argstore.ValidationError
	if errors.As(err, &validationErr) {
		return ExitCodeInvalidArguments
	}

	return ExitCodeError
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle: runMenu -> newSession -> rootCmd.Version.
	rootCmd.RunE = runMenu

	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "",
		"directory containing config.yaml (default is $HOME/.config/podbay)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newServiceCmd())
	rootCmd.AddCommand(newXhostCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDebugCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
