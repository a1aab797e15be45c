package profile

import (
	"context"
	"fmt"

	"github.com/sqltools-dev/connprof/internal/credential"
	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// Creator drives interactive profile creation. All collaborators are
// injected so the flow can be exercised with fakes.
type Creator struct {
	// Creds supplies the credential questions and auth-type choices.
	Creds *credential.Layer

	// Store supplies known-server suggestions. May be nil.
	Store connprof.ServerSuggester

	// Exchange runs the Azure AD login for auth types that need it.
	// May be nil, in which case the login step is skipped with a log line.
	Exchange connprof.AuthExchange

	// Logger receives progress and diagnostics. May be nil.
	Logger connprof.Logger
}

// CreateProfile prompts the user for connection parameters and returns the
// completed profile.
//
// Cancellation and validation failure both yield ErrProfileNotCompleted;
// the caller cannot distinguish them by design. A failure from the Azure AD
// exchange propagates and is fatal to this call. The exchange's success is
// logged but does not gate validity: a profile whose login failed earlier in
// a session can still be returned as valid.
func (c *Creator) CreateProfile(ctx context.Context, prompter connprof.Prompter, defaults *connprof.Defaults) (*connprof.Profile, error) {
	draft := connprof.NewProfile()
	if defaults != nil {
		draft.AzureTenantID = defaults.AzureTenantID
		draft.AzureClientID = defaults.AzureClientID
		if defaults.AuthType.IsValid() {
			draft.AuthType = defaults.AuthType
		}
	}

	questions := BuildQuestions(draft, c.Creds, c.Store, defaults)

	answers, err := prompter.Prompt(ctx, draft, questions, true)
	if err != nil {
		return nil, fmt.Errorf("prompting failed: %w", err)
	}
	if answers == nil {
		// User aborted: no validation, no login.
		return nil, connprof.ErrProfileNotCompleted
	}

	if draft.AuthType.RequiresTokenExchange() {
		if err := c.runLogin(ctx, draft); err != nil {
			return nil, err
		}
	}

	if !draft.IsValid() {
		return nil, connprof.ErrProfileNotCompleted
	}
	return draft, nil
}

func (c *Creator) runLogin(ctx context.Context, draft *connprof.Profile) error {
	if c.Exchange == nil {
		c.verbose("no auth exchange wired, skipping %s login", draft.AuthType)
		return nil
	}

	result, err := c.Exchange.Login(ctx, draft)
	if err != nil {
		return fmt.Errorf("%s login: %w", draft.AuthType, err)
	}
	if result.Account != "" {
		c.info("Signed in as %s", result.Account)
	}
	c.verbose("token expires %s", result.ExpiresOn.Format("15:04:05"))
	return nil
}

func (c *Creator) info(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Info(format, args...)
	}
}

func (c *Creator) verbose(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Verbose(format, args...)
	}
}
