// File: internal/ui/prompt/prompt_test.go

package prompt

import (
	"bytes"
	"strings"
	"testing"

	"strata/internal/guard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingSingle(t *testing.T, name string) *guard.Guard {
	t.Helper()
	g := guard.New(0)
	require.NoError(t, g.RequestSingle(guard.Target{ID: "p1", Name: name}))
	return g
}

func TestStandardPrompterExactMatch(t *testing.T) {
	g := pendingSingle(t, "Budget")
	var out bytes.Buffer
	p := NewStandardPrompter(strings.NewReader("Budget\n"), &out)

	ok, err := p.ConfirmDelete(g, "Delete project Budget?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "type the name 'Budget'")
}

func TestStandardPrompterDoesNotTrim(t *testing.T) {
	g := pendingSingle(t, "Budget ")
	p := NewStandardPrompter(strings.NewReader("Budget\r\n"), &bytes.Buffer{})

	ok, err := p.ConfirmDelete(g, "Delete?")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Budget", g.Typed())
}

func TestStandardPrompterEOF(t *testing.T) {
	g := pendingSingle(t, "Budget")
	p := NewStandardPrompter(strings.NewReader(""), &bytes.Buffer{})

	ok, err := p.ConfirmDelete(g, "Delete?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStandardPrompterBatch(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
	}

	for _, tt := range tests {
		g := guard.New(0)
		require.NoError(t, g.RequestBatch([]guard.Target{{ID: "b1"}, {ID: "b2"}}))
		p := NewStandardPrompter(strings.NewReader(tt.input), &bytes.Buffer{})

		ok, err := p.ConfirmDelete(g, "Delete buckets?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "input %q", tt.input)
	}
}

func TestPrompterRequiresPendingGuard(t *testing.T) {
	p := NewStandardPrompter(strings.NewReader("x\n"), &bytes.Buffer{})
	_, err := p.ConfirmDelete(guard.New(0), "Delete?")
	assert.ErrorIs(t, err, guard.ErrNotPending)
}

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestConfirmModelIgnoresEnterUntilNameMatches(t *testing.T) {
	g := pendingSingle(t, "Budget ")
	var m tea.Model = newConfirmModel(g, "Delete project?")

	m = typeText(m, "Budget")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.(confirmModel).confirmed)
	assert.Contains(t, m.View(), "[ Delete ]")

	m = typeText(m, " ")
	assert.True(t, g.CanConfirm())

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.(confirmModel).confirmed)
}

func TestConfirmModelEscapeCancels(t *testing.T) {
	g := pendingSingle(t, "Budget")
	var m tea.Model = newConfirmModel(g, "Delete project?")

	m = typeText(m, "Budget")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, m.(confirmModel).cancelled)
	assert.False(t, m.(confirmModel).confirmed)
}

func TestConfirmModelBatch(t *testing.T) {
	g := guard.New(0)
	require.NoError(t, g.RequestBatch([]guard.Target{{ID: "b1", Name: "logs"}, {ID: "b2"}}))
	var m tea.Model = newConfirmModel(g, "Delete buckets?")

	view := m.View()
	assert.Contains(t, view, "logs (b1)")
	assert.Contains(t, view, "Delete 2 items?")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.True(t, m.(confirmModel).confirmed)
}
