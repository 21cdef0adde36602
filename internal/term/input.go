package term

import "fmt"

// PrepareInput renders prompt as an inline content line and records the
// cursor position directly after it. The returned position is the anchor a
// later CaptureInput must return to; the caller is free to print more
// framing (a footer, say) in between. With newLine the cursor is moved to
// the next line after the position is recorded.
func (t *Terminal) PrepareInput(prompt string, newLine bool) Position {
	t.Content(prompt, true)
	pos := t.CursorPosition()
	if newLine {
		fmt.Fprint(t.out, "\n")
	}
	return pos
}

// CaptureInput moves the cursor to the anchor recorded by PrepareInput,
// adjusted so that additionalRows already printed below it stay on screen,
// and reads one line of input. The cursor position from before the call is
// saved first and restored afterwards, so the call is position-neutral no
// matter how much output the caller interleaved between prompt and capture.
func (t *Terminal) CaptureInput(anchor Position, additionalRows int) (string, error) {
	saved := t.CursorPosition()
	t.SetCursorPosition(anchor, t.RowOffsetToFit(anchor, additionalRows))
	line, err := t.ReadLine()
	t.SetCursorPosition(saved, 0)
	return line, err
}
