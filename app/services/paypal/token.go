package paypal

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/pkg/http"
)

// expirySafetyMargin is subtracted from the provider's stated token lifetime
// so a token near expiry is never used mid-request.
const expirySafetyMargin = 60 * time.Second

// TokenSource caches one OAuth client-credentials token and refreshes it
// before expiry. Concurrent callers hitting an expired cache share a single
// refresh request.
type TokenSource struct {
	baseURL      string
	clientID     string
	clientSecret string

	mu      sync.Mutex
	token   string
	expires time.Time

	group singleflight.Group
	now   func() time.Time
}

func NewTokenSource(baseURL, clientID, clientSecret string) *TokenSource {
	return &TokenSource{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// Token returns a bearer token that is valid for at least the safety margin.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	if ts.token != "" && ts.now().Before(ts.expires) {
		token := ts.token
		ts.mu.Unlock()
		return token, nil
	}
	ts.mu.Unlock()

	v, err, _ := ts.group.Do("token", func() (interface{}, error) {
		// Another caller may have refreshed between our check and here.
		ts.mu.Lock()
		if ts.token != "" && ts.now().Before(ts.expires) {
			token := ts.token
			ts.mu.Unlock()
			return token, nil
		}
		ts.mu.Unlock()

		return ts.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (ts *TokenSource) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	resp, err := http.Post(ts.baseURL + "/v1/oauth2/token").
		BasicAuth(ts.clientID, ts.clientSecret).
		Form(form).
		Timeout(15 * time.Second).
		WithContext(ctx).
		Send()
	if err != nil {
		return "", &errs.ProviderError{Provider: "paypal", Message: "token request failed", Err: err}
	}
	if !resp.OK() {
		var pe errorResponse
		_ = resp.JSON(&pe)
		return "", &errs.ProviderError{Provider: "paypal", Message: pe.text()}
	}

	var tok tokenResponse
	if err := resp.JSON(&tok); err != nil {
		return "", &errs.ProviderError{Provider: "paypal", Message: "malformed token response", Err: err}
	}

	lifetime := time.Duration(tok.ExpiresIn) * time.Second
	if lifetime > expirySafetyMargin {
		lifetime -= expirySafetyMargin
	}

	ts.mu.Lock()
	ts.token = tok.AccessToken
	ts.expires = ts.now().Add(lifetime)
	ts.mu.Unlock()

	return tok.AccessToken, nil
}
