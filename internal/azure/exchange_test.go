package azure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// fakeCredential returns a canned token and records the requested scopes.
type fakeCredential struct {
	token     string
	expiresOn time.Time
	err       error

	calls  int
	scopes []string
}

func (f *fakeCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.calls++
	f.scopes = opts.Scopes
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return azcore.AccessToken{Token: f.token, ExpiresOn: f.expiresOn}, nil
}

func azureProfile(tenant string) *connprof.Profile {
	p := connprof.NewProfile()
	p.AuthType = connprof.AuthAzureInteractive
	p.Server = "myserver.database.windows.net"
	p.User = "user@contoso.com"
	p.AzureTenantID = tenant
	return p
}

func newTestExchange(cred azcore.TokenCredential, credErr error) *InteractiveExchange {
	e := NewInteractiveExchange(nil, nil)
	e.newCredential = func(tenantID, clientID string) (azcore.TokenCredential, error) {
		if credErr != nil {
			return nil, credErr
		}
		return cred, nil
	}
	return e
}

func TestInteractiveLogin(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	cred := &fakeCredential{token: "tok", expiresOn: expiry}
	e := newTestExchange(cred, nil)

	result, err := e.Login(context.Background(), azureProfile("tenant-1"))
	require.NoError(t, err)

	assert.Equal(t, "user@contoso.com", result.Account)
	assert.WithinDuration(t, expiry, result.ExpiresOn, time.Second)
	assert.Equal(t, []string{Scope}, cred.scopes)
}

func TestInteractiveLogin_ReusesCachedToken(t *testing.T) {
	cred := &fakeCredential{token: "tok", expiresOn: time.Now().Add(time.Hour)}
	e := newTestExchange(cred, nil)

	_, err := e.Login(context.Background(), azureProfile("tenant-1"))
	require.NoError(t, err)
	_, err = e.Login(context.Background(), azureProfile("tenant-1"))
	require.NoError(t, err)

	assert.Equal(t, 1, cred.calls, "a second login within the expiry must not reopen the browser")
}

func TestInteractiveLogin_TokenFailure(t *testing.T) {
	cred := &fakeCredential{err: errors.New("AADSTS50058: silent sign-in failed")}
	e := newTestExchange(cred, nil)

	result, err := e.Login(context.Background(), azureProfile("tenant-1"))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, connprof.ErrAuthFailed)
}

func TestInteractiveLogin_CredentialCreationFailure(t *testing.T) {
	e := newTestExchange(nil, errors.New("bad client id"))

	_, err := e.Login(context.Background(), azureProfile("tenant-1"))
	assert.ErrorIs(t, err, connprof.ErrAuthFailed)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "tenant-1/"+Scope, cacheKey(azureProfile("tenant-1")))
	assert.Equal(t, "organizations/"+Scope, cacheKey(azureProfile("")),
		"a missing tenant falls back to the multi-tenant endpoint")
}

func TestDeviceCodeLogin(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	cred := &fakeCredential{token: "tok", expiresOn: expiry}

	var shown string
	e := NewDeviceCodeExchange(nil, nil, func(message string) {
		shown = message
	})
	var userPrompt func(context.Context, azidentity.DeviceCodeMessage) error
	e.newCredential = func(tenantID, clientID string, prompt func(context.Context, azidentity.DeviceCodeMessage) error) (azcore.TokenCredential, error) {
		userPrompt = prompt
		return cred, nil
	}

	result, err := e.Login(context.Background(), azureProfile("tenant-1"))
	require.NoError(t, err)
	assert.WithinDuration(t, expiry, result.ExpiresOn, time.Second)

	require.NotNil(t, userPrompt)
	require.NoError(t, userPrompt(context.Background(), azidentity.DeviceCodeMessage{
		Message: "enter code ABCD-1234 at https://microsoft.com/devicelogin",
	}))
	assert.Contains(t, shown, "ABCD-1234")
}

func TestDeviceCodeLogin_TokenFailure(t *testing.T) {
	cred := &fakeCredential{err: errors.New("expired_token")}
	e := NewDeviceCodeExchange(nil, nil, func(string) {})
	e.newCredential = func(_, _ string, _ func(context.Context, azidentity.DeviceCodeMessage) error) (azcore.TokenCredential, error) {
		return cred, nil
	}

	result, err := e.Login(context.Background(), azureProfile("tenant-1"))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, connprof.ErrAuthFailed)
}
