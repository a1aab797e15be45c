package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltools-dev/connprof/internal/credential"
	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// scriptedPrompter answers each visible question from the script, mirroring
// how interactive prompting applies answers one at a time so that later
// visibility predicates see earlier answers on the draft.
type scriptedPrompter struct {
	script map[string]string
	cancel bool
	err    error

	asked []string
}

func (s *scriptedPrompter) Prompt(_ context.Context, draft *connprof.Profile, questions []connprof.Question, _ bool) (connprof.Answers, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cancel {
		return nil, nil
	}
	answers := make(connprof.Answers)
	for i := range questions {
		q := &questions[i]
		if !q.Visible(draft, answers) {
			continue
		}
		s.asked = append(s.asked, q.Name)
		q.Apply(draft, answers, s.script[q.Name])
	}
	return answers, nil
}

type recordingExchange struct {
	calls  int
	result *connprof.AuthResult
	err    error
}

func (r *recordingExchange) Login(_ context.Context, _ *connprof.Profile) (*connprof.AuthResult, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

func TestCreateProfile_SQLLogin(t *testing.T) {
	exchange := &recordingExchange{}
	creator := &Creator{
		Creds:    credential.NewLayer(connprof.AuthSQLLogin, connprof.AuthAzureUniversal),
		Exchange: exchange,
	}
	prompter := &scriptedPrompter{script: map[string]string{
		credential.QuestionServer:   "db1",
		credential.QuestionAuthType: connprof.AuthSQLLogin.String(),
		credential.QuestionUser:     "admin",
		credential.QuestionPassword: "s3cret",
		QuestionSavePassword:        "true",
		QuestionProfileName:         "prod",
	}}

	p, err := creator.CreateProfile(context.Background(), prompter, nil)
	require.NoError(t, err)

	assert.Equal(t, "db1", p.Server)
	assert.Equal(t, connprof.AuthSQLLogin, p.AuthType)
	assert.Equal(t, "admin", p.User)
	assert.Equal(t, "s3cret", p.Password)
	assert.True(t, p.SavePassword)
	assert.Equal(t, "prod", p.Name)
	assert.True(t, p.IsValid())
	assert.Zero(t, exchange.calls, "SQL login must not trigger an identity exchange")
}

func TestCreateProfile_Cancelled(t *testing.T) {
	exchange := &recordingExchange{}
	creator := &Creator{
		Creds:    credential.NewLayer(connprof.AuthAzureInteractive),
		Exchange: exchange,
	}
	prompter := &scriptedPrompter{cancel: true}

	p, err := creator.CreateProfile(context.Background(), prompter, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, connprof.ErrProfileNotCompleted)
	assert.Zero(t, exchange.calls, "an aborted run must never reach the login step")
}

func TestCreateProfile_InvalidDraftNotCompleted(t *testing.T) {
	creator := &Creator{Creds: credential.NewLayer(connprof.AuthSQLLogin)}
	// No server answer leaves the draft invalid.
	prompter := &scriptedPrompter{script: map[string]string{
		credential.QuestionUser:     "admin",
		credential.QuestionPassword: "pw",
	}}

	p, err := creator.CreateProfile(context.Background(), prompter, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, connprof.ErrProfileNotCompleted)
}

func TestCreateProfile_PromptError(t *testing.T) {
	creator := &Creator{Creds: credential.NewLayer(connprof.AuthSQLLogin)}
	boom := errors.New("terminal gone")
	prompter := &scriptedPrompter{err: boom}

	_, err := creator.CreateProfile(context.Background(), prompter, nil)
	assert.ErrorIs(t, err, boom)
}

func TestCreateProfile_AzureUniversalRunsExchange(t *testing.T) {
	exchange := &recordingExchange{result: &connprof.AuthResult{Account: "user@contoso.com"}}
	creator := &Creator{
		Creds:    credential.NewLayer(connprof.AuthAzureUniversal),
		Exchange: exchange,
	}
	// Universal auth needs no user name; only the server is required.
	prompter := &scriptedPrompter{script: map[string]string{
		credential.QuestionServer: "myserver.database.windows.net",
	}}

	p, err := creator.CreateProfile(context.Background(), prompter, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, exchange.calls)
	assert.Empty(t, p.User)
	assert.True(t, p.IsValid())
	assert.NotContains(t, prompter.asked, credential.QuestionUser)
	assert.NotContains(t, prompter.asked, credential.QuestionPassword)
}

func TestCreateProfile_ExchangeFailurePropagates(t *testing.T) {
	exchange := &recordingExchange{err: connprof.ErrAuthFailed}
	creator := &Creator{
		Creds:    credential.NewLayer(connprof.AuthAzureInteractive),
		Exchange: exchange,
	}
	prompter := &scriptedPrompter{script: map[string]string{
		credential.QuestionServer: "db1",
		credential.QuestionUser:   "user@contoso.com",
	}}

	p, err := creator.CreateProfile(context.Background(), prompter, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, connprof.ErrAuthFailed)
}

func TestCreateProfile_NilExchangeSkipsLogin(t *testing.T) {
	creator := &Creator{Creds: credential.NewLayer(connprof.AuthAzureUniversal)}
	prompter := &scriptedPrompter{script: map[string]string{
		credential.QuestionServer: "db1",
	}}

	p, err := creator.CreateProfile(context.Background(), prompter, nil)
	require.NoError(t, err)
	assert.True(t, p.IsValid())
}

func TestCreateProfile_DefaultsSeedDraft(t *testing.T) {
	exchange := &recordingExchange{result: &connprof.AuthResult{}}
	creator := &Creator{
		Creds:    credential.NewLayer(connprof.AuthSQLLogin, connprof.AuthAzureUniversal),
		Exchange: exchange,
	}
	defaults := &connprof.Defaults{
		AuthType:      connprof.AuthAzureUniversal,
		AzureTenantID: "tenant-1",
	}
	prompter := &scriptedPrompter{script: map[string]string{
		credential.QuestionServer: "db1",
	}}

	p, err := creator.CreateProfile(context.Background(), prompter, defaults)
	require.NoError(t, err)

	assert.Equal(t, connprof.AuthAzureUniversal, p.AuthType)
	assert.Equal(t, "tenant-1", p.AzureTenantID)
	assert.NotContains(t, prompter.asked, credential.QuestionAuthType,
		"a defaulted auth type must skip the choice")
	assert.Equal(t, 1, exchange.calls)
}
