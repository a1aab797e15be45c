package connprof

import (
	"context"
	"time"
)

// QuestionKind identifies how a question is presented and answered.
type QuestionKind int

const (
	KindInput    QuestionKind = iota // Free-text input
	KindPassword                     // Masked input
	KindConfirm                      // Yes/no, answered "true"/"false"
	KindChoice                       // Pick one of Choices
)

// Choice is a selectable option for a KindChoice question.
type Choice struct {
	Label       string
	Description string
	Value       string
}

// Answers is the cumulative set of answers gathered so far, keyed by
// question name. Confirm answers are stored as "true"/"false".
type Answers map[string]string

// Bool returns the confirm answer for name, or false if absent.
func (a Answers) Bool(name string) bool {
	return a[name] == "true"
}

// Question describes one unit of interactive input. Questions are created
// fresh per builder invocation, consumed once by a Prompter, and discarded.
//
// ShouldShow and OnAnswer receive the draft profile so that visibility and
// answer application stay pure functions of (draft snapshot, prior answers)
// rather than closures over hidden state.
type Question struct {
	Kind        QuestionKind
	Name        string
	Message     string
	Placeholder string
	Default     string
	Choices     []Choice

	// ShouldShow decides visibility against the draft and the answers
	// gathered so far. A nil ShouldShow means always visible. Prompters
	// must evaluate it in sequence order so later predicates can depend
	// on earlier answers.
	ShouldShow func(draft *Profile, prior Answers) bool

	// OnAnswer applies the answer to the draft. Prompters must invoke it
	// as each answer is produced, before the next question's predicate
	// is evaluated.
	OnAnswer func(draft *Profile, value string)
}

// Visible reports whether the question should be asked given the draft and
// prior answers.
func (q *Question) Visible(draft *Profile, prior Answers) bool {
	if q.ShouldShow == nil {
		return true
	}
	return q.ShouldShow(draft, prior)
}

// Apply records the answer and invokes the question's callback.
func (q *Question) Apply(draft *Profile, answers Answers, value string) {
	answers[q.Name] = value
	if q.OnAnswer != nil {
		q.OnAnswer(draft, value)
	}
}

// Prompter asks an ordered question sequence and returns the answers.
// forProfile distinguishes profile creation from ad-hoc connection prompting
// (it only affects presentation). A cancelled run returns (nil, nil); errors
// are reserved for prompting-infrastructure failures.
type Prompter interface {
	Prompt(ctx context.Context, draft *Profile, questions []Question, forProfile bool) (Answers, error)
}

// AuthResult describes the outcome of an interactive Azure AD login.
type AuthResult struct {
	// Account is the signed-in identity, when the provider reports one.
	Account string

	// ExpiresOn is the access token expiry.
	ExpiresOn time.Time
}

// AuthExchange runs the external interactive login flow for Azure AD
// authentication modes. Implementations may open a browser or display a
// device code; failures propagate to the caller of the assembler.
type AuthExchange interface {
	Login(ctx context.Context, p *Profile) (*AuthResult, error)
}

// ServerSuggester exposes known server names for suggestion and
// deduplication during prompting. The connection store implements it.
type ServerSuggester interface {
	KnownServers() []string
}

// Logger provides a pluggable logging interface for connprof operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}
