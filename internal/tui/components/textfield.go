package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextField asks the user for a single line of text, optionally masked.
type TextField struct {
	title     string
	input     textinput.Model
	submitted bool
	cancelled bool
	keyMap    textFieldKeyMap
	styles    textFieldStyles
}

type textFieldKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

type textFieldStyles struct {
	Title lipgloss.Style
	Box   lipgloss.Style
	Help  lipgloss.Style
}

func defaultTextFieldKeyMap() textFieldKeyMap {
	return textFieldKeyMap{
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

func defaultTextFieldStyles() textFieldStyles {
	return textFieldStyles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Box:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

// NewTextField creates a text field with the given title, placeholder, and
// initial value.
func NewTextField(title, placeholder, value string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return TextField{
		title:  title,
		input:  ti,
		keyMap: defaultTextFieldKeyMap(),
		styles: defaultTextFieldStyles(),
	}
}

// WithMasked configures the field to echo bullets instead of characters.
func (t TextField) WithMasked() TextField {
	t.input.EchoMode = textinput.EchoPassword
	t.input.EchoCharacter = '•'
	return t
}

// Init implements tea.Model.
func (t TextField) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (t TextField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, t.keyMap.Submit):
			t.submitted = true
			return t, tea.Quit
		case key.Matches(msg, t.keyMap.Cancel):
			t.cancelled = true
			return t, tea.Quit
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// View implements tea.Model.
func (t TextField) View() string {
	var b strings.Builder

	b.WriteString(t.styles.Title.Render(t.title))
	b.WriteString("\n\n")
	b.WriteString(t.styles.Box.Render(t.input.View()))
	b.WriteString("\n")
	b.WriteString(t.styles.Help.Render("enter submit • esc cancel"))

	return b.String()
}

// Cancelled returns true if the user cancelled the input.
func (t TextField) Cancelled() bool {
	return t.cancelled
}

// Value returns the entered text.
func (t TextField) Value() string {
	return t.input.Value()
}
