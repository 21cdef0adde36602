package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"podbay/internal/app"
)

func newXhostCmd() *cobra.Command {
	xhostCmd := &cobra.Command{
		Use:   "xhost",
		Short: "Manage X server access for the container",
	}

	xhostCmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Grant the container access to the local X server on every login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.EnableXhost(ctx)
			})
		},
	})

	xhostCmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Remove the X server access grant again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.DisableXhost(ctx)
			})
		},
	})

	return xhostCmd
}
