package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"podbay/internal/term"
)

// ErrExit signals that the operator chose to leave the menu.
var ErrExit = errors.New("exit requested")

// Action is one menu entry: a short name, the description lines shown
// under its number, and the handler run when it is chosen.
type Action struct {
	Name        string
	Description []string
	Run         func(ctx context.Context) error
}

// Guard checks for background executions that must be stopped before the
// menu may operate, and knows how to stop them.
type Guard interface {
	ServiceActive(ctx context.Context) bool
	StopService(ctx context.Context) error
	ContainerRunning(ctx context.Context) bool
	StopContainer(ctx context.Context) error
}

// Menu is the interactive action loop. Each pass renders a framed,
// numbered action list and captures the choice at an anchored input
// position inside the frame.
type Menu struct {
	term    *term.Terminal
	title   string
	guard   Guard
	actions []Action
}

// NewMenu creates a menu over the given terminal.
func NewMenu(t *term.Terminal, title string, guard Guard, actions []Action) *Menu {
	return &Menu{
		term:    t,
		title:   title,
		guard:   guard,
		actions: actions,
	}
}

// Run loops until an action returns ErrExit, input reaches end-of-file or
// the context is canceled. Action errors are reported and the loop
// continues.
func (m *Menu) Run(ctx context.Context) error {
	m.term.Clear(true)

	lines := Lines{T: m.term}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// A unit or container running in the background owns the
		// image and the terminal conventions the menu relies on.
		if m.guard.ServiceActive(ctx) {
			if err := m.stopRunning(ctx, "systemd service", m.guard.StopService); err != nil {
				return exitOrError(err)
			}
			continue
		}
		if m.guard.ContainerRunning(ctx) {
			if err := m.stopRunning(ctx, "container", m.guard.StopContainer); err != nil {
				return exitOrError(err)
			}
			continue
		}

		anchor := m.render()
		choice, err := m.term.CaptureInput(anchor, 2)
		if err != nil {
			Error(lines, "Input ended unexpectedly, which is not your fault, just restart the helper", true)
			return err
		}

		index, convErr := strconv.Atoi(strings.TrimSpace(choice))
		if convErr != nil || index < 1 || index > len(m.actions) {
			Error(lines, "That choice was not valid", true)
			continue
		}

		m.term.Clear(true)
		if err := m.actions[index-1].Run(ctx); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			Error(lines, err.Error(), true)
		}
	}
}

// render draws the full menu frame and returns the input anchor. The
// footer is drawn after the anchor is recorded so the frame is complete
// before the cursor jumps back into it.
func (m *Menu) render() term.Position {
	m.term.Clear(false)
	m.term.Header(m.title)

	framed := Framed{T: m.term}
	Status(framed, "Choose, what you want to do next", true)
	for i, action := range m.actions {
		number := text.FgCyan.Sprint(text.Bold.Sprint(strconv.Itoa(i + 1)))
		Note(framed, fmt.Sprintf("Enter %s for: %s", number, text.FgCyan.Sprint(action.Name)), true)
		for _, line := range action.Description {
			Status(framed, line, false)
		}
	}

	m.term.Content("", false)
	m.term.Divider()
	anchor := m.term.PrepareInput(InputPrompt("Enter your choice: "), true)
	m.term.Footer()
	return anchor
}

// stopRunning offers to stop a background execution. Declining leaves the
// program; ErrExit is returned so Run can exit cleanly.
func (m *Menu) stopRunning(ctx context.Context, what string, stop func(ctx context.Context) error) error {
	lines := Lines{T: m.term}

	Question(lines, fmt.Sprintf(
		"The %s is running. It must be stopped to use the helper. Can the helper stop it now?", what), true)
	yes, err := AskYesNo(m.term, "Enter y for yes and n for no: ")
	if err != nil {
		return err
	}
	if !yes {
		return ErrExit
	}

	if err := stop(ctx); err != nil {
		return err
	}

	Note(lines, fmt.Sprintf("You need to re-start the %s with the helper in order to use it again", what), true)
	Note(lines, "Or reboot the system if you have enabled auto-starting at boot", false)
	return PressEnter(m.term, "Press Enter to confirm that you have read that: ")
}

func exitOrError(err error) error {
	if errors.Is(err, ErrExit) {
		return nil
	}
	return err
}
