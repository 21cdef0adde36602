package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"podbay/internal/app"
	"podbay/internal/console"
)

func newServiceCmd() *cobra.Command {
	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the container's systemd unit",
	}

	serviceCmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Generate and install the systemd unit file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.InstallService(ctx)
			})
		},
	})

	serviceCmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the container through systemd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				err := a.StartService(ctx)
				if errors.Is(err, console.ErrExit) {
					// Leaving after a systemd start is menu behavior;
					// scripted invocations just finish.
					return nil
				}
				return err
			})
		},
	})

	serviceCmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Enable starting the unit at boot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.EnableService(ctx)
			})
		},
	})

	serviceCmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Disable starting the unit at boot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.DisableService(ctx)
			})
		},
	})

	return serviceCmd
}
