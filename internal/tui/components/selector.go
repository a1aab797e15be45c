// Package components holds the bubbletea models backing individual prompt
// questions.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// Selector asks the user to pick one of a question's choices.
type Selector struct {
	title     string
	choices   []connprof.Choice
	cursor    int
	submitted bool
	cancelled bool
	keyMap    selectorKeyMap
	styles    selectorStyles
}

type selectorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

type selectorStyles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

func defaultSelectorKeyMap() selectorKeyMap {
	return selectorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func defaultSelectorStyles() selectorStyles {
	return selectorStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Unselected:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

// NewSelector creates a selector for the given title and choices.
func NewSelector(title string, choices []connprof.Choice) Selector {
	return Selector{
		title:   title,
		choices: choices,
		keyMap:  defaultSelectorKeyMap(),
		styles:  defaultSelectorStyles(),
	}
}

// Init implements tea.Model.
func (s Selector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, s.keyMap.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, s.keyMap.Down):
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case key.Matches(msg, s.keyMap.Select):
			s.submitted = true
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Cancel):
			s.cancelled = true
			return s, tea.Quit
		}
	}
	return s, nil
}

// View implements tea.Model.
func (s Selector) View() string {
	var b strings.Builder

	b.WriteString(s.styles.Title.Render(s.title))
	b.WriteString("\n\n")

	for i, c := range s.choices {
		cursor := "  "
		style := s.styles.Unselected
		symbol := "○"
		if i == s.cursor {
			cursor = ""
			style = s.styles.Selected
			symbol = "●"
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + c.Label))
		b.WriteString("\n")
		if c.Description != "" {
			b.WriteString(s.styles.Description.Render(c.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString(s.styles.Help.Render("\n↑/↓ navigate • enter select • esc cancel"))

	return b.String()
}

// Cancelled returns true if the user cancelled the selection.
func (s Selector) Cancelled() bool {
	return s.cancelled
}

// Value returns the value of the selected choice, or "" when nothing was
// submitted.
func (s Selector) Value() string {
	if !s.submitted || s.cursor < 0 || s.cursor >= len(s.choices) {
		return ""
	}
	return s.choices[s.cursor].Value
}
