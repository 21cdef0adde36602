package term

import (
	"fmt"
	"regexp"
	"strconv"
)

// Position is an absolute cursor position in terminal coordinates,
// 1-indexed in both axes as the terminal protocol counts them. Positions
// are ephemeral: the terminal can be resized between any two calls, so a
// position is only meaningful relative to the query that produced it.
type Position struct {
	Column int
	Row    int
}

// origin is the safe default when a cursor query cannot be answered.
var origin = Position{Column: 1, Row: 1}

// statusReport matches the cursor position report `ESC [ row ; column R`.
// https://en.wikipedia.org/wiki/ANSI_escape_code#CSI_(Control_Sequence_Introducer)_sequences
var statusReport = regexp.MustCompile(`\[(\d+);(\d+)R`)

// CursorPosition queries the terminal for the absolute cursor position by
// writing a device-status-report request and reading the reply. Input is
// switched to raw mode only for the duration of the round trip and the
// previous mode is restored on every exit path.
//
// The query is best effort: a malformed or unparseable report, a read
// failure, or a non-interactive input stream all yield the origin {1,1}
// rather than an error. There is no timeout; a terminal that accepts the
// request but never answers blocks the caller.
func (t *Terminal) CursorPosition() Position {
	if t.raw == nil {
		// No interactive terminal on input, a report will never arrive.
		return origin
	}
	restore, err := t.raw()
	if err != nil {
		return origin
	}
	defer restore()

	fmt.Fprint(t.out, escCursorReport)

	var report []byte
	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			return origin
		}
		report = append(report, b)
		if b == 'R' {
			break
		}
	}

	match := statusReport.FindSubmatch(report)
	if match == nil {
		return origin
	}
	row, _ := strconv.Atoi(string(match[1]))
	column, _ := strconv.Atoi(string(match[2]))
	return Position{Column: column, Row: row}
}

// SetCursorPosition moves the cursor to the given absolute position,
// shifted down by rowOffset (negative offsets shift up). Column and row are
// clamped to a minimum of 1 before the offset is applied.
func (t *Terminal) SetCursorPosition(pos Position, rowOffset int) {
	column := pos.Column
	if column <= 0 {
		column = 1
	}
	row := pos.Row
	if row <= 0 {
		row = 1
	}
	fmt.Fprintf(t.out, escCursorMove, row+rowOffset, column)
}

// CursorBack moves the cursor left by the given number of columns. A
// non-positive step count is a no-op.
func (t *Terminal) CursorBack(steps int) {
	if steps <= 0 {
		return
	}
	fmt.Fprintf(t.out, escCursorBack, steps)
}

// RowOffsetToFit returns the negative row offset needed so that
// additionalRows printed after pos still fit on screen, or 0 when they
// already do. Anchoring input this way prevents prompts near the bottom of
// the screen from scrolling away under output printed after them.
func (t *Terminal) RowOffsetToFit(pos Position, additionalRows int) int {
	_, rows := t.size()
	newRow := pos.Row + additionalRows
	if newRow > rows {
		return rows - newRow
	}
	return 0
}
