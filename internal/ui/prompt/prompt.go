// File: internal/ui/prompt/prompt.go
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"strata/internal/guard"

	"github.com/mattn/go-isatty"
)

// Prompter collects the user's confirmation for a pending guard
type Prompter interface {
	// ConfirmDelete feeds the user's input into g and reports whether g may now be confirmed.
	// It never calls g.Confirm or g.Cancel; that is left to the caller.
	ConfirmDelete(g *guard.Guard, message string) (bool, error)
}

// New returns an interactive prompter when both streams are terminals and a line-based one otherwise
func New(in io.Reader, out io.Writer) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return NewTeaPrompter(in, out)
	}
	return NewStandardPrompter(in, out)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// StandardPrompter reads one line of input from a plain stream
type StandardPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

func (p *StandardPrompter) ConfirmDelete(g *guard.Guard, message string) (bool, error) {
	if g.Phase() != guard.Pending {
		return false, guard.ErrNotPending
	}

	fmt.Fprintln(p.writer, message)
	if g.IsBatch() {
		fmt.Fprintf(p.writer, "Delete %d items? [y/N]: ", len(g.Targets()))
	} else {
		fmt.Fprintf(p.writer, "To confirm, please type the name '%s': ", g.Expected())
	}

	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("error reading user input: %w", err)
	}
	if errors.Is(err, io.EOF) && input == "" {
		return false, nil
	}

	// Only the line terminator is stripped; names are compared exactly
	input = strings.TrimSuffix(input, "\n")
	input = strings.TrimSuffix(input, "\r")

	if g.IsBatch() {
		answer := strings.ToLower(strings.TrimSpace(input))
		return answer == "y" || answer == "yes", nil
	}

	g.Type(input)
	return g.CanConfirm(), nil
}
