package console

import (
	"strings"

	"podbay/internal/term"
)

// Lines prints outside any frame through the terminal.
type Lines struct {
	T *term.Terminal
}

func (l Lines) Print(line string) {
	l.T.Println(line)
}

// Prompt prints a decorated input prompt and reads one line.
func Prompt(t *term.Terminal, msg string) (string, error) {
	t.Print(InputPrompt(msg))
	return t.ReadLine()
}

// AskYesNo asks until the operator answers y or n.
func AskYesNo(t *term.Terminal, msg string) (bool, error) {
	for {
		line, err := Prompt(t, msg)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}

// PressEnter blocks until the operator confirms with Enter.
func PressEnter(t *term.Terminal, msg string) error {
	_, err := Prompt(t, msg)
	return err
}
