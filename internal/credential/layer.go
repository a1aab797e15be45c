// Package credential decides which credential fields a connection profile
// needs and expresses them as prompt questions.
package credential

import (
	"runtime"
	"strings"

	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// Question names used across the credential question set. Visibility
// predicates and tests refer to answers by these keys.
const (
	QuestionNewServer = "new_server"
	QuestionServer    = "server"
	QuestionAuthType  = "auth_type"
	QuestionUser      = "user"
	QuestionPassword  = "password"
	QuestionDatabase  = "database"
)

// Value of the server question that routes to free-text entry when the
// store already knows some servers.
const newServerValue = "<new server>"

// Layer produces the credential questions for a draft profile. The zero
// value is not usable; construct with NewLayer.
type Layer struct {
	allowed []connprof.AuthType
}

// NewLayer returns a credential layer offering the given authentication
// types, in order. An empty list falls back to PlatformAuthTypes.
func NewLayer(allowed ...connprof.AuthType) *Layer {
	if len(allowed) == 0 {
		allowed = PlatformAuthTypes()
	}
	return &Layer{allowed: allowed}
}

// PlatformAuthTypes returns the authentication types usable on the current
// platform. Integrated auth needs the Windows SSPI stack.
func PlatformAuthTypes() []connprof.AuthType {
	types := []connprof.AuthType{connprof.AuthSQLLogin}
	if runtime.GOOS == "windows" {
		types = append(types, connprof.AuthIntegrated)
	}
	return append(types, connprof.AuthAzureInteractive, connprof.AuthAzureUniversal)
}

// AuthTypeOptions returns the ordered authentication-type choices.
func (l *Layer) AuthTypeOptions() []connprof.Choice {
	opts := make([]connprof.Choice, 0, len(l.allowed))
	for _, a := range l.allowed {
		opts = append(opts, connprof.Choice{
			Label:       a.String(),
			Description: authDescription(a),
			Value:       a.String(),
		})
	}
	return opts
}

func authDescription(a connprof.AuthType) string {
	switch a {
	case connprof.AuthSQLLogin:
		return "Standard SQL Server authentication"
	case connprof.AuthIntegrated:
		return "Windows credentials of the current session"
	case connprof.AuthAzureInteractive:
		return "Sign in with a browser via Azure Entra ID"
	case connprof.AuthAzureUniversal:
		return "Azure Entra ID universal flow with MFA support"
	default:
		return ""
	}
}

// PasswordBased reports whether the draft's authentication type collects a
// password from the user.
func (l *Layer) PasswordBased(draft *connprof.Profile) bool {
	return draft.AuthType.PasswordBased()
}

// RequiredQuestions returns the ordered credential questions for the draft.
//
// When promptNewServer is set and the store knows previous servers, an
// initial disambiguation choice lets the user pick a known server or enter
// a new one. The auth-type question is skipped when the draft already has
// one (the builder pre-selects single-option layers). User and password
// visibility follow the auth type chosen in earlier answers; the prompting
// capability evaluates predicates in order, so the draft reflects those
// answers by the time later predicates run.
func (l *Layer) RequiredQuestions(
	draft *connprof.Profile,
	isProfile bool,
	promptNewServer bool,
	store connprof.ServerSuggester,
	defaults *connprof.Defaults,
) []connprof.Question {
	var qs []connprof.Question

	var known []string
	if store != nil {
		known = store.KnownServers()
	}

	if promptNewServer && len(known) > 0 {
		choices := make([]connprof.Choice, 0, len(known)+1)
		choices = append(choices, connprof.Choice{Label: "New server", Value: newServerValue})
		for _, s := range known {
			choices = append(choices, connprof.Choice{Label: s, Value: s})
		}
		qs = append(qs, connprof.Question{
			Kind:    connprof.KindChoice,
			Name:    QuestionNewServer,
			Message: "Server",
			Choices: choices,
			OnAnswer: func(p *connprof.Profile, v string) {
				if v != newServerValue {
					p.Server = v
				}
			},
		})
	}

	serverDefault := ""
	if defaults != nil {
		serverDefault = defaults.Server
	}
	qs = append(qs, connprof.Question{
		Kind:        connprof.KindInput,
		Name:        QuestionServer,
		Message:     "Server name",
		Placeholder: "myserver.database.windows.net",
		Default:     serverDefault,
		ShouldShow: func(p *connprof.Profile, prior connprof.Answers) bool {
			// Hidden when a known server was already picked.
			picked, asked := prior[QuestionNewServer]
			return !asked || picked == newServerValue
		},
		OnAnswer: func(p *connprof.Profile, v string) {
			p.Server = strings.TrimSpace(v)
		},
	})

	if !draft.AuthType.IsValid() {
		qs = append(qs, connprof.Question{
			Kind:    connprof.KindChoice,
			Name:    QuestionAuthType,
			Message: "Authentication type",
			Choices: l.AuthTypeOptions(),
			ShouldShow: func(p *connprof.Profile, prior connprof.Answers) bool {
				return !p.AuthType.IsValid()
			},
			OnAnswer: func(p *connprof.Profile, v string) {
				p.AuthType = connprof.ParseAuthType(v)
			},
		})
	}

	userDefault := ""
	if defaults != nil {
		userDefault = defaults.User
	}
	qs = append(qs, connprof.Question{
		Kind:        connprof.KindInput,
		Name:        QuestionUser,
		Message:     "User name",
		Placeholder: "sa",
		Default:     userDefault,
		ShouldShow: func(p *connprof.Profile, prior connprof.Answers) bool {
			return p.AuthType.RequiresUser()
		},
		OnAnswer: func(p *connprof.Profile, v string) {
			p.User = strings.TrimSpace(v)
		},
	})

	qs = append(qs, connprof.Question{
		Kind:    connprof.KindPassword,
		Name:    QuestionPassword,
		Message: "Password",
		ShouldShow: func(p *connprof.Profile, prior connprof.Answers) bool {
			return p.AuthType.PasswordBased()
		},
		OnAnswer: func(p *connprof.Profile, v string) {
			p.Password = v
			p.EmptyPasswordInput = v == ""
		},
	})

	dbDefault := ""
	if defaults != nil {
		dbDefault = defaults.Database
	}
	qs = append(qs, connprof.Question{
		Kind:        connprof.KindInput,
		Name:        QuestionDatabase,
		Message:     "Database (optional)",
		Placeholder: "master",
		Default:     dbDefault,
		OnAnswer: func(p *connprof.Profile, v string) {
			p.Database = strings.TrimSpace(v)
		},
	})

	return qs
}
