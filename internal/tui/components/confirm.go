package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Confirm asks a yes/no question.
type Confirm struct {
	title     string
	value     bool
	submitted bool
	cancelled bool
	keyMap    confirmKeyMap
	styles    confirmStyles
}

type confirmKeyMap struct {
	Toggle key.Binding
	Yes    key.Binding
	No     key.Binding
	Submit key.Binding
	Cancel key.Binding
}

type confirmStyles struct {
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
}

func defaultConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("left", "right", "tab", "h", "l"),
			key.WithHelp("←/→", "toggle"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func defaultConfirmStyles() confirmStyles {
	return confirmStyles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Unselected: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

// NewConfirm creates a yes/no prompt defaulting to the given value.
func NewConfirm(title string, def bool) Confirm {
	return Confirm{
		title:  title,
		value:  def,
		keyMap: defaultConfirmKeyMap(),
		styles: defaultConfirmStyles(),
	}
}

// Init implements tea.Model.
func (c Confirm) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, c.keyMap.Toggle):
			c.value = !c.value
		case key.Matches(msg, c.keyMap.Yes):
			c.value = true
			c.submitted = true
			return c, tea.Quit
		case key.Matches(msg, c.keyMap.No):
			c.value = false
			c.submitted = true
			return c, tea.Quit
		case key.Matches(msg, c.keyMap.Submit):
			c.submitted = true
			return c, tea.Quit
		case key.Matches(msg, c.keyMap.Cancel):
			c.cancelled = true
			return c, tea.Quit
		}
	}
	return c, nil
}

// View implements tea.Model.
func (c Confirm) View() string {
	var b strings.Builder

	b.WriteString(c.styles.Title.Render(c.title))
	b.WriteString("\n\n")

	yes, no := c.styles.Unselected, c.styles.Selected
	if c.value {
		yes, no = c.styles.Selected, c.styles.Unselected
	}
	b.WriteString("  ")
	b.WriteString(yes.Render("Yes"))
	b.WriteString("   ")
	b.WriteString(no.Render("No"))
	b.WriteString("\n")
	b.WriteString(c.styles.Help.Render("y/n or ←/→ • enter submit • esc cancel"))

	return b.String()
}

// Cancelled returns true if the user cancelled the prompt.
func (c Confirm) Cancelled() bool {
	return c.cancelled
}

// Value returns the chosen answer.
func (c Confirm) Value() bool {
	return c.value
}
