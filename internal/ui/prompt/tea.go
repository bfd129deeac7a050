// File: internal/ui/prompt/tea.go
package prompt

import (
	"fmt"
	"io"
	"strings"

	"strata/internal/guard"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	warningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	targetStyle   = lipgloss.NewStyle().Bold(true)
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// TeaPrompter renders an inline bubbletea dialog. For a single delete the confirm action
// stays disabled until the typed name matches exactly.
type TeaPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out}
}

func (p *TeaPrompter) ConfirmDelete(g *guard.Guard, message string) (bool, error) {
	if g.Phase() != guard.Pending {
		return false, guard.ErrNotPending
	}

	program := tea.NewProgram(newConfirmModel(g, message), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("error running confirmation dialog: %w", err)
	}

	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	return m.confirmed, nil
}

type confirmModel struct {
	guard   *guard.Guard
	message string
	input   textinput.Model

	confirmed bool
	cancelled bool
}

func newConfirmModel(g *guard.Guard, message string) confirmModel {
	input := textinput.New()
	input.Prompt = "> "
	if !g.IsBatch() {
		input.Placeholder = g.Expected()
		input.Focus()
	}

	return confirmModel{
		guard:   g,
		message: message,
		input:   input,
	}
}

func (m confirmModel) Init() tea.Cmd {
	if m.guard.IsBatch() {
		return nil
	}
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			// Ignored while the delete action is disabled
			if !m.guard.CanConfirm() {
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		}

		if m.guard.IsBatch() {
			switch strings.ToLower(key.String()) {
			case "y":
				m.confirmed = true
				return m, tea.Quit
			case "n":
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if m.guard.IsBatch() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.guard.Type(m.input.Value())
	return m, cmd
}

func (m confirmModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(warningStyle.Render(m.message))
	sb.WriteString("\n\n")

	if m.guard.IsBatch() {
		for _, t := range m.guard.Targets() {
			sb.WriteString("  - " + targetStyle.Render(targetLabel(t)) + "\n")
		}
		sb.WriteString("\n")
		sb.WriteString(enabledStyle.Render(fmt.Sprintf("Delete %d items? [y/N]", len(m.guard.Targets()))))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("Type " + targetStyle.Render(fmt.Sprintf("%q", m.guard.Expected())) + " to confirm.\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	if m.guard.CanConfirm() {
		sb.WriteString(enabledStyle.Render("[ Delete ]"))
	} else {
		sb.WriteString(disabledStyle.Render("[ Delete ]"))
	}
	sb.WriteString("  " + hintStyle.Render("enter to delete, esc to cancel"))
	sb.WriteString("\n")
	return sb.String()
}

func targetLabel(t guard.Target) string {
	if t.Name == "" {
		return t.ID
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.ID)
}
