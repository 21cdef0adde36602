package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	xterm "golang.org/x/term"
)

// Escape sequences used for screen and cursor control.
// https://en.wikipedia.org/wiki/ANSI_escape_code#CSI_(Control_Sequence_Introducer)_sequences
const (
	escClearScreen  = "\x1b[2J" // clear visible screen, keep scrollback
	escResetDevice  = "\x1bc"   // full reset, clears scrollback too
	escCursorReport = "\x1b[6n" // request a device status report
	escCursorMove   = "\x1b[%d;%dH"
	escCursorBack   = "\x1b[%dD"
)

// Fallback dimensions when the terminal size cannot be determined.
const (
	fallbackColumns = 80
	fallbackRows    = 24
)

// Terminal drives a single interactive terminal device. The zero value is
// not usable; construct one with New.
type Terminal struct {
	out    io.Writer
	reader *bufio.Reader

	// size reports the current terminal dimensions. Re-invoked on every
	// render, never cached.
	size func() (columns, rows int)

	// raw switches input to raw mode and returns the restore function.
	// nil means input is not an interactive terminal and cursor queries
	// must degrade to the origin position.
	raw func() (restore func(), err error)
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithStreams replaces the terminal's input and output streams. Streams
// installed this way are assumed non-interactive: cursor queries return the
// origin unless WithRawMode installs a raw-mode hook as well.
func WithStreams(in io.Reader, out io.Writer) Option {
	return func(t *Terminal) {
		t.reader = bufio.NewReader(in)
		t.out = out
		t.raw = nil
	}
}

// WithSize overrides terminal size detection.
func WithSize(size func() (columns, rows int)) Option {
	return func(t *Terminal) {
		t.size = size
	}
}

// WithRawMode overrides the raw-mode switch used around cursor queries.
func WithRawMode(raw func() (restore func(), err error)) Option {
	return func(t *Terminal) {
		t.raw = raw
	}
}

// New returns a Terminal over stdin/stdout. Raw-mode support is enabled
// only when stdin is an interactive terminal.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		out:    os.Stdout,
		reader: bufio.NewReader(os.Stdin),
	}

	inFd := int(os.Stdin.Fd())
	outFd := int(os.Stdout.Fd())
	t.size = func() (int, int) {
		columns, rows, err := xterm.GetSize(outFd)
		if err != nil || columns <= 0 || rows <= 0 {
			return fallbackColumns, fallbackRows
		}
		return columns, rows
	}
	if xterm.IsTerminal(inFd) {
		t.raw = func() (func(), error) {
			state, err := xterm.MakeRaw(inFd)
			if err != nil {
				return nil, err
			}
			return func() { _ = xterm.Restore(inFd, state) }, nil
		}
	}

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Size returns the current terminal dimensions.
func (t *Terminal) Size() (columns, rows int) {
	return t.size()
}

// Clear clears the screen. With includeBuffer the scrollback buffer is
// discarded as well; otherwise only the visible screen is cleared and the
// cursor returns to the origin.
func (t *Terminal) Clear(includeBuffer bool) {
	if includeBuffer {
		fmt.Fprint(t.out, escResetDevice)
		return
	}
	fmt.Fprint(t.out, escClearScreen)
	t.SetCursorPosition(Position{Column: 1, Row: 1}, 0)
}

// Print writes s without a trailing newline.
func (t *Terminal) Print(s string) {
	fmt.Fprint(t.out, s)
}

// Println writes s followed by a newline.
func (t *Terminal) Println(s string) {
	fmt.Fprintln(t.out, s)
}

// ReadLine reads one line of input with the trailing newline stripped.
// The line read so far is returned even when the read ends in an error,
// so an unterminated final line still comes through.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}
