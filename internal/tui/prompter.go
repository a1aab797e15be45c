// Package tui implements the interactive prompting capability on top of
// bubbletea.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sqltools-dev/connprof/internal/tui/components"
	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// QuestionUI renders a single question and returns its answer. It exists so
// the prompting protocol can be tested without a terminal.
type QuestionUI interface {
	Ask(ctx context.Context, q connprof.Question) (value string, cancelled bool, err error)
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithUI injects a QuestionUI (for testing/mocking).
func WithUI(ui QuestionUI) PrompterOption {
	return func(p *Prompter) {
		p.ui = ui
	}
}

// Prompter implements connprof.Prompter. It walks the question sequence in
// order, evaluating each visibility predicate against the draft and the
// answers gathered so far, and applies each answer before the next
// predicate runs.
type Prompter struct {
	ui QuestionUI
}

// NewPrompter creates a terminal-backed Prompter.
func NewPrompter(opts ...PrompterOption) *Prompter {
	p := &Prompter{ui: teaUI{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prompt implements connprof.Prompter. A cancelled run returns (nil, nil);
// answers already applied to the draft before the cancellation are not
// rolled back, matching the draft's single-use lifecycle.
func (p *Prompter) Prompt(ctx context.Context, draft *connprof.Profile, questions []connprof.Question, forProfile bool) (connprof.Answers, error) {
	answers := make(connprof.Answers)
	shown := false

	for i := range questions {
		q := &questions[i]
		if !q.Visible(draft, answers) {
			continue
		}
		if !shown {
			p.printHeader(forProfile)
			shown = true
		}

		value, cancelled, err := p.ui.Ask(ctx, *q)
		if err != nil {
			return nil, err
		}
		if cancelled {
			return nil, nil
		}
		q.Apply(draft, answers, value)
	}

	return answers, nil
}

func (p *Prompter) printHeader(forProfile bool) {
	title := "Connect to server"
	if forProfile {
		title = "Create connection profile"
	}
	fmt.Fprintln(os.Stderr, TitleStyle.Render(title))
}

// teaUI runs one bubbletea program per question.
type teaUI struct{}

func (teaUI) Ask(ctx context.Context, q connprof.Question) (string, bool, error) {
	switch q.Kind {
	case connprof.KindChoice:
		model, err := runModel(ctx, components.NewSelector(q.Message, q.Choices))
		if err != nil {
			return "", false, err
		}
		sel := model.(components.Selector)
		return sel.Value(), sel.Cancelled(), nil

	case connprof.KindConfirm:
		model, err := runModel(ctx, components.NewConfirm(q.Message, q.Default == "true"))
		if err != nil {
			return "", false, err
		}
		conf := model.(components.Confirm)
		return fmt.Sprintf("%t", conf.Value()), conf.Cancelled(), nil

	case connprof.KindPassword:
		model, err := runModel(ctx, components.NewTextField(q.Message, q.Placeholder, "").WithMasked())
		if err != nil {
			return "", false, err
		}
		field := model.(components.TextField)
		return field.Value(), field.Cancelled(), nil

	default:
		model, err := runModel(ctx, components.NewTextField(q.Message, q.Placeholder, q.Default))
		if err != nil {
			return "", false, err
		}
		field := model.(components.TextField)
		return field.Value(), field.Cancelled(), nil
	}
}

func runModel(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	result, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return result, nil
}

// PromptContinue asks a plain y/n question outside the bubbletea flow.
// Non-interactive sessions answer yes.
func PromptContinue(message string) bool {
	if !IsInteractive() {
		return true
	}

	fmt.Fprintf(os.Stderr, "%s [Y/n]: ", message)

	var response string
	fmt.Scanln(&response)

	return response == "" || response == "y" || response == "Y"
}
