package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"podbay/internal/console"
	"podbay/internal/runner"
)

// Build builds a fresh image. Interactive sessions may opt into retrying
// until the build succeeds; scripted ones never retry.
func (a *App) Build(ctx context.Context) error {
	lines := a.lines()

	retry := false
	if a.interactive {
		console.Question(lines, "Do you want to automatically retry building if it fails?", false)
		console.Note(lines, "You may stop building with CTRL+C in that case", false)
		yes, err := console.AskYesNo(a.term, "Enter y for yes and n for no: ")
		if err != nil {
			return err
		}
		retry = yes
	}

	if err := a.clearImage(ctx); err != nil {
		return err
	}

	for {
		err := a.engine.Build(ctx)
		if err == nil {
			if err := a.clearContainer(ctx); err != nil {
				return err
			}
			console.Note(lines, "SUCCESS: Image built successfully", true)
			return nil
		}

		// Clean up the half-built state whether we retry or not. On
		// cancellation the cleanup gets a fresh context.
		cleanupCtx := ctx
		if ctx.Err() != nil {
			cleanupCtx = context.Background()
		}
		if cleanupErr := a.clearImage(cleanupCtx); cleanupErr != nil {
			return cleanupErr
		}

		if ctx.Err() != nil {
			if a.interactive {
				return console.PressEnter(a.term, "Press Enter to return to the menu: ")
			}
			return ctx.Err()
		}

		console.Error(lines, "ERROR: Failed to build the image, take a look at the output to find the problem", true)
		if !retry {
			return err
		}
	}
}

// Load imports an image archive. With an empty path interactive sessions
// prompt for one; scripted ones default to the context directory.
func (a *App) Load(ctx context.Context, path string) error {
	lines := a.lines()

	if path == "" {
		if a.interactive {
			answer, err := console.Prompt(a.term, "Enter the path to the .tar archive you want to load as image: ")
			if err != nil {
				return err
			}
			path = strings.TrimSpace(answer)
		} else {
			path = a.defaultArchivePath()
		}
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := a.clearImage(ctx); err != nil {
		return err
	}

	if err := a.engine.Load(ctx, path); err != nil {
		if cleanupErr := a.clearImage(ctx); cleanupErr != nil {
			return cleanupErr
		}
		console.Error(lines, fmt.Sprintf("ERROR: Image could not be loaded from %s", path), true)
		console.Error(lines, "       Take a look at the output to find the problem", false)
		return err
	}

	if err := a.clearContainer(ctx); err != nil {
		return err
	}
	console.Note(lines, fmt.Sprintf("SUCCESS: Image loaded successfully from %s", path), true)
	return nil
}

// Save exports the image to a .tar archive, confirming the destination in
// interactive sessions.
func (a *App) Save(ctx context.Context, path string) error {
	lines := a.lines()
	imageRef := a.cfg.Container.ImageRef()

	if path == "" {
		if a.interactive {
			folder, err := console.Prompt(a.term, "Enter the path to an existing folder to save the image in: ")
			if err != nil {
				return err
			}
			path = filepath.Join(strings.TrimSpace(folder), a.archiveName())
		} else {
			path = a.defaultArchivePath()
		}
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	console.Question(lines, fmt.Sprintf("Do you want to save the image %s to %s ?", imageRef, path), false)
	if a.interactive {
		yes, err := console.AskYesNo(a.term, "Enter y for yes and n for no: ")
		if err != nil {
			return err
		}
		if !yes {
			return nil
		}
	}

	if err := a.engine.Save(ctx, path); err != nil {
		console.Error(lines, fmt.Sprintf("ERROR: Image %s could not be saved to %s", imageRef, path), true)
		console.Error(lines, "       Take a look at the output to find the problem", false)
		return err
	}

	console.Note(lines, fmt.Sprintf("SUCCESS: Image %s was successfully saved to %s", imageRef, path), true)
	return nil
}

// Start runs the container in the foreground with the stored arguments.
func (a *App) Start(ctx context.Context) error {
	extraArgs, err := a.prepareStart(ctx)
	if err != nil {
		return err
	}
	return a.engine.Run(ctx, extraArgs)
}

// InstallService creates a throwaway container, generates and installs
// the unit file from it, and removes the container again.
func (a *App) InstallService(ctx context.Context) error {
	extraArgs, err := a.prepareStart(ctx)
	if err != nil {
		return err
	}

	if err := a.engine.Create(ctx, extraArgs); err != nil {
		return err
	}

	if err := a.service.InstallUnit(ctx); err != nil {
		return err
	}

	return a.clearContainer(ctx)
}

// StartService starts the unit and leaves the helper, since the container
// now runs in the background.
func (a *App) StartService(ctx context.Context) error {
	if err := a.service.Start(ctx); err != nil {
		return err
	}
	return console.ErrExit
}

// EnableService enables starting the unit at boot.
func (a *App) EnableService(ctx context.Context) error {
	return a.service.Enable(ctx)
}

// DisableService disables starting the unit at boot.
func (a *App) DisableService(ctx context.Context) error {
	return a.service.Disable(ctx)
}

// EnableXhost installs the profile script granting the container access
// to the local X server on every login.
func (a *App) EnableXhost(ctx context.Context) error {
	x := a.cfg.Xhost
	command := fmt.Sprintf("sudo cp --force %s %s && sudo chmod 555 %s && . %s",
		x.Source, x.ProfileScript, x.ProfileScript, x.ProfileScript)
	_, err := a.runner.Run(ctx, command, runner.Options{Capture: true, ValidExitCodes: []int{0}})
	if err != nil {
		return fmt.Errorf("enabling xhost access: %w", err)
	}
	return nil
}

// DisableXhost removes the profile script again.
func (a *App) DisableXhost(ctx context.Context) error {
	command := fmt.Sprintf("sudo rm --force %s", a.cfg.Xhost.ProfileScript)
	if _, err := a.runner.Run(ctx, command, runner.Options{Capture: true, ValidExitCodes: []int{0}}); err != nil {
		return fmt.Errorf("disabling xhost access: %w", err)
	}
	return nil
}

// Status renders an overview of image, container and unit state.
func (a *App) Status(ctx context.Context) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("RESOURCE"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("STATE"),
	})
	tw.AppendRow(table.Row{"IMAGE", a.cfg.Container.ImageRef(), presence(a.engine.ImageExists(ctx), "present", "absent")})
	tw.AppendRow(table.Row{"CONTAINER", a.cfg.Container.Name, presence(a.engine.ContainerRunning(ctx), "running", "not running")})
	tw.AppendRow(table.Row{"SERVICE", a.cfg.Service.Unit, presence(a.service.IsActive(ctx), "active", "inactive")})

	a.term.Println(tw.Render())
	return nil
}

func presence(ok bool, yes, no string) string {
	if ok {
		return text.FgGreen.Sprint(yes)
	}
	return text.FgRed.Sprint(no)
}

// Debug prints the debug report operators attach to issues.
func (a *App) Debug(ctx context.Context) error {
	lines := a.lines()

	report := a.engine.DebugReport(ctx, a.version, a.args.Path())
	console.Status(lines, fmt.Sprintf("The version of the helper is: %s", report.Version), true)
	console.Status(lines, fmt.Sprintf("Report ID: %s", report.ID), false)
	console.Status(lines, fmt.Sprintf("The currently used engine info is:\n%s", report.EngineInfo), false)
	console.Status(lines, fmt.Sprintf("The currently used argument file:\n%s", report.Arguments), false)
	console.Status(lines, fmt.Sprintf("The currently used entrypoint script:\n%s", report.Entrypoint), false)
	console.Status(lines, fmt.Sprintf("Mount info for the graph root:\n%s", report.MountInfo), false)

	if a.interactive {
		return console.PressEnter(a.term, "Press Enter to return to the menu: ")
	}
	return nil
}

// Reset wipes the engine environment completely.
func (a *App) Reset(ctx context.Context) error {
	lines := a.lines()
	if err := a.engine.Reset(ctx); err != nil {
		console.Error(lines, "Could not reset the engine environment, look at the output to find the problem", true)
		console.Error(lines, "Restart your computer and try again", false)
		return err
	}
	return nil
}

// Exit leaves the menu.
func (a *App) Exit(context.Context) error {
	return console.ErrExit
}

func (a *App) archiveName() string {
	return fmt.Sprintf("%s_%s.tar", a.cfg.Container.Name, a.cfg.Container.Tag)
}

func (a *App) defaultArchivePath() string {
	return filepath.Join(a.cfg.Container.ContextDir, a.archiveName())
}
