// Package console holds the operator-facing surface: decorated one-line
// messages, the print sinks they go to, and the interactive action menu.
package console

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/text"

	"podbay/internal/term"
)

// Sink decides where a decorated message line ends up. Picked per call
// site: discarded when the line only feeds a prompt, plain for standard
// output, framed when the line belongs inside a menu frame.
type Sink interface {
	Print(line string)
}

// Discard swallows the line. Used when only the returned string matters.
type Discard struct{}

func (Discard) Print(string) {}

// Plain writes the line to a writer, newline-terminated.
type Plain struct {
	W io.Writer
}

func (p Plain) Print(line string) {
	fmt.Fprintln(p.W, line)
}

// Framed renders the line as frame content.
type Framed struct {
	T *term.Terminal
}

func (f Framed) Print(line string) {
	f.T.Content(line, false)
}

// message builds a "sigil text" line with a colored sigil and hands it to
// the sink. With newLine the whole line is preceded by a blank one.
func message(sink Sink, color text.Color, sigil, msg string, newLine bool) string {
	line := color.Sprint(sigil) + " " + msg
	if newLine {
		line = "\n" + line
	}
	sink.Print(line)
	return line
}

// Status decorates a progress/status line with "~~".
func Status(sink Sink, msg string, newLine bool) string {
	return message(sink, text.FgHiGreen, "~~", msg, newLine)
}

// Error decorates an error line with "!!".
func Error(sink Sink, msg string, newLine bool) string {
	return message(sink, text.FgRed, "!!", msg, newLine)
}

// Note decorates an informational line with "::".
func Note(sink Sink, msg string, newLine bool) string {
	return message(sink, text.FgHiCyan, "::", msg, newLine)
}

// Question decorates a question line with "??".
func Question(sink Sink, msg string, newLine bool) string {
	return message(sink, text.FgHiYellow, "??", msg, newLine)
}

// InputPrompt decorates a prompt with "++". Never printed directly; the
// caller places it in front of a read.
func InputPrompt(msg string) string {
	return message(Discard{}, text.FgHiMagenta, "++", msg, false)
}
