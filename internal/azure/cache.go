package azure

import (
	"context"
	"sync"
	"time"
)

// tokenFunc acquires a token, returning the token and its expiry.
type tokenFunc func(ctx context.Context) (string, time.Time, error)

type cachedToken struct {
	token     string
	expiresOn time.Time
}

type inflight struct {
	done  chan struct{}
	token string
	exp   time.Time
	err   error
}

// TokenCache caches acquired tokens per key (tenant/scope pair) and
// coalesces concurrent acquisitions for the same key so only one login
// flow runs at a time. Interactive logins open browsers; two at once for
// the same tenant would be hostile to the user.
type TokenCache struct {
	mu       sync.Mutex
	tokens   map[string]cachedToken
	requests map[string]*inflight

	// skew is subtracted from the expiry when deciding reuse.
	skew time.Duration
}

// NewTokenCache returns an empty cache with a 2-minute expiry margin.
func NewTokenCache() *TokenCache {
	return &TokenCache{
		tokens:   make(map[string]cachedToken),
		requests: make(map[string]*inflight),
		skew:     2 * time.Minute,
	}
}

// Acquire returns a cached unexpired token for key, or runs fn to obtain
// one. Concurrent calls for the same key share a single fn invocation;
// errors are not cached.
func (c *TokenCache) Acquire(ctx context.Context, key string, fn tokenFunc) (string, time.Time, error) {
	c.mu.Lock()
	if t, ok := c.tokens[key]; ok && time.Until(t.expiresOn) > c.skew {
		c.mu.Unlock()
		return t.token, t.expiresOn, nil
	}
	if req, ok := c.requests[key]; ok {
		c.mu.Unlock()
		select {
		case <-req.done:
			return req.token, req.exp, req.err
		case <-ctx.Done():
			return "", time.Time{}, ctx.Err()
		}
	}
	req := &inflight{done: make(chan struct{})}
	c.requests[key] = req
	c.mu.Unlock()

	req.token, req.exp, req.err = fn(ctx)
	close(req.done)

	c.mu.Lock()
	delete(c.requests, key)
	if req.err == nil {
		c.tokens[key] = cachedToken{token: req.token, expiresOn: req.exp}
	}
	c.mu.Unlock()

	return req.token, req.exp, req.err
}

// Invalidate drops the cached token for key, forcing the next Acquire to
// run a fresh login.
func (c *TokenCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.tokens, key)
	c.mu.Unlock()
}
