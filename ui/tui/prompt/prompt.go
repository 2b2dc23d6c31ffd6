// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// Package prompt is a single line bubbletea prompt that offers completions
// while the user types.
package prompt

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/passreader/internal/search"
)

// ErrCancelled is returned by Run when the user aborts the prompt.
var ErrCancelled = errors.New("prompt cancelled")

// MaxSuggestions caps the completion list.
const MaxSuggestions = 8

var (
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// KeyMap holds the bindings the prompt reacts to. Other keys edit the input.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Accept key.Binding
	Cancel key.Binding
}

// DefaultKeyMap cycles completions with tab and the arrow keys, accepts with
// enter and cancels with esc, ctrl+c or ctrl+d.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+d"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model is the prompt state.
type Model struct {
	KeyMap KeyMap

	input     textinput.Model
	completer search.Completer
	matches   []string
	selected  int // -1 when no completion is selected
	value     string
	cancelled bool
	done      bool
}

// New returns a focused prompt showing label in front of the input.
func New(label string, completer search.Completer) *Model {
	in := textinput.New()
	in.Prompt = label + " "
	in.Focus()
	m := &Model{
		KeyMap:    DefaultKeyMap(),
		input:     in,
		completer: completer,
		selected:  -1,
	}
	m.refresh()
	return m
}

// Value returns the accepted text. It is empty until the prompt is done.
func (m *Model) Value() string { return m.value }

// Cancelled reports whether the user aborted the prompt.
func (m *Model) Cancelled() bool { return m.cancelled }

// Matches returns the completions currently offered.
func (m *Model) Matches() []string { return m.matches }

// Selected returns the selected completion, or "" if none is selected.
func (m *Model) Selected() string {
	if m.selected < 0 || m.selected >= len(m.matches) {
		return ""
	}
	return m.matches[m.selected]
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles the key map and forwards everything else to the text input.
// Completions are recomputed whenever the input changes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.KeyMap.Cancel):
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.KeyMap.Accept):
			m.value = m.input.Value()
			if s := m.Selected(); s != "" {
				m.value = s
			}
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.KeyMap.Next):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.KeyMap.Prev):
			m.move(-1)
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

// View renders the input line and up to MaxSuggestions completions. It is
// empty once the prompt is done so nothing is left on the terminal.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	for i, s := range m.matches {
		if i >= MaxSuggestions {
			b.WriteString(suggestionStyle.Render("  …"))
			b.WriteString("\n")
			break
		}
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + s))
		} else {
			b.WriteString(suggestionStyle.Render("  " + s))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// move cycles the selection through the visible completions.
func (m *Model) move(delta int) {
	n := len(m.matches)
	if n > MaxSuggestions {
		n = MaxSuggestions
	}
	if n == 0 {
		return
	}
	if m.selected < 0 {
		if delta > 0 {
			m.selected = 0
		} else {
			m.selected = n - 1
		}
		return
	}
	m.selected = (m.selected + delta + n) % n
}

func (m *Model) refresh() {
	m.selected = -1
	if m.completer == nil {
		m.matches = nil
		return
	}
	m.matches = m.completer.Complete(m.input.Value())
}

// Run shows the prompt on the terminal and blocks until the user accepts or
// cancels. The prompt renders to stderr unless opts say otherwise.
func Run(label string, completer search.Completer, opts ...tea.ProgramOption) (string, error) {
	opts = append([]tea.ProgramOption{tea.WithOutput(os.Stderr)}, opts...)
	final, err := tea.NewProgram(New(label, completer), opts...).Run()
	if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled) {
		return "", ErrCancelled
	}
	if err != nil {
		return "", err
	}
	m, ok := final.(*Model)
	if !ok || m.Cancelled() {
		return "", ErrCancelled
	}
	return m.Value(), nil
}
