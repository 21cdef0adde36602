package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"podbay/internal/app"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the image from the architecture-specific containerfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.Build(ctx)
			})
		},
	}
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [archive]",
		Short: "Load the image from a .tar archive",
		Long: `Loads the image from the given .tar archive, defaulting to the
archive name the save command produces in the build context directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.Load(ctx, path)
			})
		},
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the container in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.Start(ctx)
			})
		},
	}
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [archive]",
		Short: "Save the image to a .tar archive",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.Save(ctx, path)
			})
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show image, container and service state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Status only observes, so nothing gets stopped first.
			s, err := newSession(false)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.app.Status(cmd.Context())
		},
	}
}

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Print the debug report to attach to issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(false)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.app.Debug(cmd.Context())
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the engine environment completely",
		Long: `Completely resets the engine environment: all pods, all images,
all containers and all volumes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(cmd, func(ctx context.Context, a *app.App) error {
				return a.Reset(ctx)
			})
		},
	}
}
