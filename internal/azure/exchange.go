// Package azure implements the interactive Azure Entra ID login flows used
// by Azure AD authentication modes.
package azure

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// Scope is the OAuth scope for Azure SQL Database. Azure AD issues tokens
// for SQL access against this resource identifier.
const Scope = "https://database.windows.net/.default"

// InteractiveExchange implements connprof.AuthExchange by opening the
// system browser for an Azure Entra ID login. The credential is created
// lazily on first use; creation or login failures propagate to the caller.
type InteractiveExchange struct {
	logger connprof.Logger
	cache  *TokenCache

	mu   sync.Mutex
	cred azcore.TokenCredential

	// newCredential is replaceable in tests.
	newCredential func(tenantID, clientID string) (azcore.TokenCredential, error)
}

// NewInteractiveExchange creates a browser-based exchange. The cache is
// shared across logins so repeated profile creations within one session
// reuse unexpired tokens.
func NewInteractiveExchange(logger connprof.Logger, cache *TokenCache) *InteractiveExchange {
	if cache == nil {
		cache = NewTokenCache()
	}
	return &InteractiveExchange{
		logger: logger,
		cache:  cache,
		newCredential: func(tenantID, clientID string) (azcore.TokenCredential, error) {
			return azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
				TenantID: tenantID,
				ClientID: clientID,
			})
		},
	}
}

// Login runs the interactive flow for the profile's tenant and returns the
// token expiry. Errors wrap connprof.ErrAuthFailed.
func (e *InteractiveExchange) Login(ctx context.Context, p *connprof.Profile) (*connprof.AuthResult, error) {
	if err := e.init(p); err != nil {
		return nil, fmt.Errorf("%w: %v", connprof.ErrAuthFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, connprof.DefaultLoginTimeout)
	defer cancel()

	key := cacheKey(p)
	_, expiresOn, err := e.cache.Acquire(ctx, key, func(ctx context.Context) (string, time.Time, error) {
		e.verbose("requesting Azure AD token for %s", key)
		token, err := e.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{Scope}})
		if err != nil {
			return "", time.Time{}, err
		}
		return token.Token, token.ExpiresOn, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", connprof.ErrAuthFailed, err)
	}

	return &connprof.AuthResult{Account: p.User, ExpiresOn: expiresOn}, nil
}

func (e *InteractiveExchange) init(p *connprof.Profile) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cred != nil {
		return nil
	}
	cred, err := e.newCredential(p.AzureTenantID, p.AzureClientID)
	if err != nil {
		return fmt.Errorf("failed to create Azure credential: %w", err)
	}
	e.cred = cred
	return nil
}

func (e *InteractiveExchange) verbose(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Verbose(format, args...)
	}
}

// DeviceCodeExchange implements connprof.AuthExchange with the device-code
// flow for environments where a browser cannot be opened (SSH sessions,
// containers). The display callback receives the user-facing instruction
// message.
type DeviceCodeExchange struct {
	logger  connprof.Logger
	cache   *TokenCache
	display func(message string)

	mu   sync.Mutex
	cred azcore.TokenCredential

	newCredential func(tenantID, clientID string, prompt func(context.Context, azidentity.DeviceCodeMessage) error) (azcore.TokenCredential, error)
}

// NewDeviceCodeExchange creates a device-code exchange. display must not
// be nil; it is invoked with the verification message to show the user.
func NewDeviceCodeExchange(logger connprof.Logger, cache *TokenCache, display func(message string)) *DeviceCodeExchange {
	if cache == nil {
		cache = NewTokenCache()
	}
	return &DeviceCodeExchange{
		logger:  logger,
		cache:   cache,
		display: display,
		newCredential: func(tenantID, clientID string, prompt func(context.Context, azidentity.DeviceCodeMessage) error) (azcore.TokenCredential, error) {
			return azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
				TenantID:   tenantID,
				ClientID:   clientID,
				UserPrompt: prompt,
			})
		},
	}
}

// Login runs the device-code flow for the profile's tenant.
func (e *DeviceCodeExchange) Login(ctx context.Context, p *connprof.Profile) (*connprof.AuthResult, error) {
	if err := e.init(p); err != nil {
		return nil, fmt.Errorf("%w: %v", connprof.ErrAuthFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, connprof.DefaultLoginTimeout)
	defer cancel()

	key := cacheKey(p)
	_, expiresOn, err := e.cache.Acquire(ctx, key, func(ctx context.Context) (string, time.Time, error) {
		token, err := e.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{Scope}})
		if err != nil {
			return "", time.Time{}, err
		}
		return token.Token, token.ExpiresOn, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", connprof.ErrAuthFailed, err)
	}

	return &connprof.AuthResult{Account: p.User, ExpiresOn: expiresOn}, nil
}

func (e *DeviceCodeExchange) init(p *connprof.Profile) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cred != nil {
		return nil
	}
	cred, err := e.newCredential(p.AzureTenantID, p.AzureClientID, func(_ context.Context, msg azidentity.DeviceCodeMessage) error {
		e.display(msg.Message)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create Azure credential: %w", err)
	}
	e.cred = cred
	return nil
}

func cacheKey(p *connprof.Profile) string {
	tenant := p.AzureTenantID
	if tenant == "" {
		tenant = "organizations"
	}
	return tenant + "/" + Scope
}
