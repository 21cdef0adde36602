package term

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Box-drawing pieces for the menu frame.
// https://en.wikipedia.org/wiki/Box-drawing_character#Box_Drawing
const (
	headerLeft   = "┏"
	headerJoinL  = "┫"
	headerJoinR  = "┣"
	headerRight  = "┓"
	headerFill   = "━"
	contentEdge  = "┃"
	dividerLeft  = "┠"
	dividerRight = "┨"
	dividerFill  = "─"
	footerLeft   = "┗"
	footerRight  = "┛"
	footerFill   = "━"
)

// Fixed decoration widths: the header spends six columns on corners, joints
// and title padding; a content line spends four on edges and padding.
const (
	headerDecorWidth  = 6
	contentDecorWidth = 4
)

// repeat is strings.Repeat that tolerates the degenerate negative counts
// produced by very narrow terminals.
func repeat(s string, count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}

// Header renders the top border with the title centered, bold and
// color-inverted. The title is ellipsified to the interior budget; the fill
// is split by integer division with the spare column going to the right
// half. Width is taken from the live terminal on every call.
func (t *Terminal) Header(title string) {
	columns, _ := t.size()
	remaining := columns - headerDecorWidth

	title = Ellipsify(strings.TrimSpace(title), remaining, false)
	remaining -= VisibleWidth(title)
	half := remaining / 2

	var b strings.Builder
	b.WriteString(headerLeft)
	b.WriteString(repeat(headerFill, half))
	b.WriteString(headerJoinL)
	b.WriteString(text.ReverseVideo.Sprint(" " + text.Bold.Sprint(title) + " "))
	b.WriteString(headerJoinR)
	b.WriteString(repeat(headerFill, remaining-half))
	b.WriteString(headerRight)
	fmt.Fprintln(t.out, b.String())
}

// Content renders one bordered line with s ellipsified to the interior
// budget and padded to the full width. A leading newline in s emits a blank
// content line first.
//
// With asInput the line is printed without a newline and the cursor is
// moved back over the padding plus the right padding column, so a
// subsequent read appears to start exactly where the visible content ended.
// asInput also preserves s as given instead of stripping whitespace.
func (t *Terminal) Content(s string, asInput bool) {
	columns, _ := t.size()
	remaining := columns - contentDecorWidth

	if strings.HasPrefix(s, "\n") {
		t.Content("", false)
		s = strings.TrimPrefix(s, "\n")
	}

	s = Ellipsify(s, remaining, asInput)
	remaining -= VisibleWidth(s)

	line := contentEdge + " " + s + repeat(" ", remaining) + " " + contentEdge
	if asInput {
		fmt.Fprint(t.out, line)
		t.CursorBack(remaining + 1)
		return
	}
	fmt.Fprintln(t.out, line)
}

// Divider renders a horizontal rule separating frame sections.
func (t *Terminal) Divider() {
	columns, _ := t.size()
	fmt.Fprintln(t.out, dividerLeft+repeat(dividerFill, columns-2)+dividerRight)
}

// Footer renders the bottom border of the frame.
func (t *Terminal) Footer() {
	columns, _ := t.size()
	fmt.Fprintln(t.out, footerLeft+repeat(footerFill, columns-2)+footerRight)
}
