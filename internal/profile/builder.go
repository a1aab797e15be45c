// Package profile assembles connection profiles from interactive answers.
package profile

import (
	"strings"

	"github.com/sqltools-dev/connprof/internal/credential"
	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// Names of the questions the builder appends after the credential set.
const (
	QuestionSavePassword = "save_password"
	QuestionProfileName  = "profile_name"
)

// BuildQuestions produces the ordered question sequence for creating a
// profile. Ordering is significant: credential questions first, then the
// save-password confirmation, then the profile name. Later questions'
// visibility predicates may depend on answers to earlier ones.
//
// When the credential layer offers exactly one authentication type, it is
// assigned to the draft immediately instead of being asked.
func BuildQuestions(
	draft *connprof.Profile,
	creds *credential.Layer,
	store connprof.ServerSuggester,
	defaults *connprof.Defaults,
) []connprof.Question {
	if choices := creds.AuthTypeOptions(); len(choices) == 1 {
		draft.AuthType = connprof.ParseAuthType(choices[0].Value)
	}

	questions := creds.RequiredQuestions(draft, true, true, store, defaults)

	questions = append(questions, connprof.Question{
		Kind:    connprof.KindConfirm,
		Name:    QuestionSavePassword,
		Message: "Save password?",
		ShouldShow: func(p *connprof.Profile, prior connprof.Answers) bool {
			return p.ConnectionString == "" && creds.PasswordBased(p)
		},
		OnAnswer: func(p *connprof.Profile, v string) {
			p.SavePassword = v == "true"
		},
	})

	nameDefault := ""
	if defaults != nil {
		nameDefault = defaults.ProfileName
	}
	questions = append(questions, connprof.Question{
		Kind:        connprof.KindInput,
		Name:        QuestionProfileName,
		Message:     "Profile name (optional)",
		Placeholder: "my-profile",
		Default:     nameDefault,
		OnAnswer: func(p *connprof.Profile, v string) {
			// An empty answer resets the name; a stale or defaulted name
			// must never survive an explicit blank.
			p.Name = strings.TrimSpace(v)
		},
	})

	return questions
}
