// Package ui implements operator-facing prompts and reports.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Confirmer asks the operator a yes/no question. Implementations must
// default to no: only an explicit affirmative answer returns true.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// NewConfirmer picks the interactive form on a terminal and a plain line
// read everywhere else (pipes, CI).
func NewConfirmer() Confirmer {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return &FormConfirmer{}
	}
	return &LineConfirmer{In: os.Stdin, Out: os.Stdout}
}

// LineConfirmer reads a single line and accepts "y" or "yes",
// case-insensitive. Anything else, including an empty line or EOF, declines.
type LineConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer.
func (c *LineConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N]: ", prompt)

	scanner := bufio.NewScanner(c.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		// EOF means no answer; default deny.
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

// FormConfirmer shows an interactive confirm form on the terminal.
type FormConfirmer struct{}

// Confirm implements Confirmer. Ctrl-C counts as a decline, not a failure.
func (c *FormConfirmer) Confirm(prompt string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}
