package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podbay/internal/term"
)

type fakeGuard struct {
	serviceActive    bool
	containerRunning bool
	serviceStops     int
	containerStops   int
}

func (g *fakeGuard) ServiceActive(context.Context) bool    { return g.serviceActive }
func (g *fakeGuard) ContainerRunning(context.Context) bool { return g.containerRunning }

func (g *fakeGuard) StopService(context.Context) error {
	g.serviceStops++
	g.serviceActive = false
	return nil
}

func (g *fakeGuard) StopContainer(context.Context) error {
	g.containerStops++
	g.containerRunning = false
	return nil
}

func testMenu(input string, guard Guard, actions []Action) (*Menu, *bytes.Buffer) {
	out := &bytes.Buffer{}
	tm := term.New(
		term.WithStreams(strings.NewReader(input), out),
		term.WithSize(func() (int, int) { return 100, 40 }),
	)
	return NewMenu(tm, "Helper", guard, actions), out
}

func exitAction() Action {
	return Action{
		Name:        "Exit",
		Description: []string{"Exits the helper"},
		Run:         func(context.Context) error { return ErrExit },
	}
}

func TestMenuRunsChosenAction(t *testing.T) {
	ran := 0
	actions := []Action{
		{
			Name:        "Build",
			Description: []string{"Builds the image"},
			Run: func(context.Context) error {
				ran++
				return nil
			},
		},
		exitAction(),
	}

	menu, out := testMenu("1\n2\n", &fakeGuard{}, actions)

	require.NoError(t, menu.Run(context.Background()))
	assert.Equal(t, 1, ran)
	assert.Contains(t, out.String(), "Helper")
	assert.Contains(t, out.String(), "Builds the image")
}

func TestMenuInvalidChoice(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a number", "build\n1\n"},
		{"zero", "0\n1\n"},
		{"out of range", "9\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu, out := testMenu(tt.input, &fakeGuard{}, []Action{exitAction()})

			require.NoError(t, menu.Run(context.Background()))
			assert.Contains(t, out.String(), "That choice was not valid")
		})
	}
}

func TestMenuReportsActionError(t *testing.T) {
	actions := []Action{
		{
			Name: "Build",
			Run: func(context.Context) error {
				return errors.New("build blew up")
			},
		},
		exitAction(),
	}

	menu, out := testMenu("1\n2\n", &fakeGuard{}, actions)

	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "build blew up")
}

func TestMenuStopsActiveService(t *testing.T) {
	guard := &fakeGuard{serviceActive: true}
	// y to stop, Enter to confirm the notice, 1 to exit.
	menu, out := testMenu("y\n\n1\n", guard, []Action{exitAction()})

	require.NoError(t, menu.Run(context.Background()))
	assert.Equal(t, 1, guard.serviceStops)
	assert.Contains(t, out.String(), "The systemd service is running")
	assert.Contains(t, out.String(), "re-start the systemd service")
}

func TestMenuStopsRunningContainer(t *testing.T) {
	guard := &fakeGuard{containerRunning: true}
	menu, out := testMenu("y\n\n1\n", guard, []Action{exitAction()})

	require.NoError(t, menu.Run(context.Background()))
	assert.Equal(t, 1, guard.containerStops)
	assert.Contains(t, out.String(), "The container is running")
}

func TestMenuDeclinedStopExits(t *testing.T) {
	guard := &fakeGuard{serviceActive: true}
	menu, _ := testMenu("n\n", guard, []Action{exitAction()})

	require.NoError(t, menu.Run(context.Background()))
	assert.Equal(t, 0, guard.serviceStops)
}

func TestMenuRetriesYesNoUntilValid(t *testing.T) {
	guard := &fakeGuard{serviceActive: true}
	menu, _ := testMenu("maybe\nY\n\n1\n", guard, []Action{exitAction()})

	require.NoError(t, menu.Run(context.Background()))
	assert.Equal(t, 1, guard.serviceStops)
}

func TestMenuEOF(t *testing.T) {
	menu, out := testMenu("", &fakeGuard{}, []Action{exitAction()})

	err := menu.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "not your fault")
}

func TestMenuCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	menu, _ := testMenu("1\n", &fakeGuard{}, []Action{exitAction()})
	assert.ErrorIs(t, menu.Run(ctx), context.Canceled)
}
