package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareInput(t *testing.T) {
	tm, out := testTerminal("\x1b[5;12R", 40, 24)

	pos := tm.PrepareInput("Enter your choice: ", false)

	assert.Equal(t, Position{Column: 12, Row: 5}, pos)
	assert.Contains(t, out.String(), "Enter your choice: ")
	assert.Contains(t, out.String(), escCursorReport)
	assert.False(t, strings.HasSuffix(out.String(), "\n"))
}

func TestPrepareInputNewLine(t *testing.T) {
	tm, out := testTerminal("\x1b[5;12R", 40, 24)

	pos := tm.PrepareInput("Enter your choice: ", true)

	assert.Equal(t, Position{Column: 12, Row: 5}, pos)
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestCaptureInput(t *testing.T) {
	// First report answers the save-position query, then the line itself.
	tm, out := testTerminal("\x1b[10;3Rhello\n", 40, 24)

	line, err := tm.CaptureInput(Position{Column: 8, Row: 5}, 2)

	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	got := out.String()
	moveToAnchor := strings.Index(got, "\x1b[5;8H")
	moveBack := strings.Index(got, "\x1b[10;3H")
	require.NotEqual(t, -1, moveToAnchor)
	require.NotEqual(t, -1, moveBack)
	// Position-neutral: the cursor returns to where it was afterwards.
	assert.Greater(t, moveBack, moveToAnchor)
}

func TestCaptureInputShiftsUpNearBottom(t *testing.T) {
	tm, out := testTerminal("\x1b[24;1Rready\n", 40, 24)

	// Anchor at the last row with two rows printed after it: the anchor
	// must shift up by two so the trailing output stays on screen.
	line, err := tm.CaptureInput(Position{Column: 10, Row: 24}, 2)

	require.NoError(t, err)
	assert.Equal(t, "ready", line)
	assert.Contains(t, out.String(), "\x1b[22;10H")
}

func TestCaptureInputEOF(t *testing.T) {
	tm, _ := testTerminal("\x1b[3;3R", 40, 24)

	_, err := tm.CaptureInput(Position{Column: 1, Row: 1}, 0)
	assert.Error(t, err)
}
