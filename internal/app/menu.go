package app

import (
	"context"
	"fmt"

	"podbay/internal/console"
)

const menuTitle = "Container Helper"

// Actions returns the interactive menu entries in their numbered order.
func (a *App) Actions() []console.Action {
	c := a.cfg.Container
	s := a.cfg.Service

	return []console.Action{
		{
			Name: "Build",
			Description: []string{
				fmt.Sprintf("Builds a new image from the %s<arch> in '%s'", c.ContainerfilePrefix, c.ContextDir),
				"VERY IMPORTANT: During building of the image, the UID and GID of the user executing this helper",
				"are used to set the UID and GID of the user inside the image",
				fmt.Sprintf("That makes working with files and folders you mount into the container via '%s' easier", a.args.Path()),
				"since you do not have to use chown on those files and folders, to get permissions right",
				"ALSO IMPORTANT: The DISPLAY environment variable that is set while executing the helper is",
				"passed into the build and is in general used to allow displaying",
				"of graphical programs on the host system",
				"Keep those two things in mind, when exporting and importing images with the helper",
				"If you have already built or imported an image, that image gets deleted first - automatically",
			},
			Run: a.Build,
		},
		{
			Name: "Load",
			Description: []string{
				"Loads an already built image from a .tar archive",
				"If you have already built or imported an image, that image gets deleted first - automatically",
			},
			Run: func(ctx context.Context) error { return a.Load(ctx, "") },
		},
		{
			Name: "Start",
			Description: []string{
				"Starts a container based on the image currently present on this system",
				"If you did not build or import an image before trying to start a container, the starting will fail",
			},
			Run: a.Start,
		},
		{
			Name: "Save",
			Description: []string{
				"Saves the image that is currently present on this system to a .tar archive",
				"If you did not build or import an image before trying to export the image, the exporting will fail",
			},
			Run: func(ctx context.Context) error { return a.Save(ctx, "") },
		},
		{
			Name: "Create and install systemd service file",
			Description: []string{
				fmt.Sprintf("The created systemd service file will be installed to '%s'", s.UnitPath),
				"It will not be started or enabled via 'systemctl', it will just be copied to the mentioned location",
				"Use other options of this helper to start and enable the service",
				fmt.Sprintf("You need to re-run this option after changing '%s' to include the changes in the service file", a.args.Path()),
				"You also need to re-run this option after moving the project folder to another location",
				"If you did not build or import an image before trying to create the service file, the creating will fail",
			},
			Run: a.InstallService,
		},
		{
			Name: "Start via systemd",
			Description: []string{
				"Starts a container based on the image currently present on this system",
				fmt.Sprintf("Starting is done via 'sudo systemctl start %s'", s.Unit),
				"After starting the container via systemd, the helper will exit",
				"The started container runs in the background and may be stopped when re-opening the helper",
				"You may connect to the started container with 'ssh'",
				"If you did not create and install a systemd service file first, the starting will fail",
			},
			Run: a.StartService,
		},
		{
			Name: "Automatic start at boot and automatic restart via systemd",
			Description: []string{
				"Enables the automatic starting of a container at boot",
				"Also enables automatic restarting of that container",
				"Automatic restarting happens in every case, which means regular shutdowns and crashes",
				fmt.Sprintf("Enabling is done via 'sudo systemctl enable %s'", s.Unit),
				"This does not start a container via systemd",
				"To start a container via systemd, reboot the system after enabling this option",
				"Or use the regarding option of the helper to start a container via systemd without rebooting",
				"If you did not create and install a systemd service file first, the enabling will fail",
			},
			Run: a.EnableService,
		},
		{
			Name: "Disable automatic start at boot and disable automatic restart via systemd",
			Description: []string{
				"Just reverts the 'Automatic start at boot and automatic restart via systemd' option of the helper",
				fmt.Sprintf("Disabling is done via 'sudo systemctl disable %s'", s.Unit),
				"If you did not create and install a systemd service file first, the disabling will fail",
			},
			Run: a.DisableService,
		},
		{
			Name: "Enable Xhost",
			Description: []string{
				"If you want to run graphical programs inside the container and see them on your normal host system,",
				"you need to grant the container access to your local X server",
				"This option does that, and repeats it automatically every time you login with any user on the host system",
				fmt.Sprintf("That is achieved by placing a shell script in '%s'", a.cfg.Xhost.ProfileScript),
				"NOTICE: You need to have 'xhost' installed on your host system to use that feature",
				"You may check that via executing the 'xhost' command in a terminal to see if the command exists",
			},
			Run: a.EnableXhost,
		},
		{
			Name: "Disable Xhost",
			Description: []string{
				"Just reverts the 'Enable Xhost' option of the helper",
			},
			Run: a.DisableXhost,
		},
		{
			Name: "Status",
			Description: []string{
				"Shows whether the image is present and whether the container and the systemd service are running",
			},
			Run: a.Status,
		},
		{
			Name: "Debug",
			Description: []string{
				"Prints debug information including the version of the helper",
				"Include this information in every issue you open",
			},
			Run: a.Debug,
		},
		{
			Name: "Reset engine environment",
			Description: []string{
				"Completely resets the engine environment",
				"That means: All pods, all images, all containers and all volumes",
			},
			Run: a.Reset,
		},
		{
			Name: "Exit",
			Description: []string{
				"Exits the helper",
			},
			Run: a.Exit,
		},
	}
}

// RunMenu enters the interactive action loop.
func (a *App) RunMenu(ctx context.Context) error {
	menu := console.NewMenu(a.term, menuTitle, a, a.Actions())
	return menu.Run(ctx)
}
