package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-aggregator/core/upstream"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

// ErrTokenUnavailable is returned when a bearer token cannot be obtained.
var ErrTokenUnavailable = errors.New("bearer token unavailable")

// Auth styles for sending client credentials.
const (
	// AuthStyleParams sends client_id and client_secret in the form body.
	AuthStyleParams = "params"
	// AuthStyleBasic sends client credentials as HTTP Basic authentication.
	AuthStyleBasic = "basic"
)

// Provider returns a bearer token for one upstream provider.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// Config holds OAuth2 client-credentials settings for one provider.
type Config struct {
	// ClientID is the OAuth client id.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// TokenURL is the token endpoint.
	TokenURL string `mapstructure:"token_url" default:""`
	// AuthStyle is either "params" or "basic".
	AuthStyle string `mapstructure:"auth_style" default:"params"`
	// ExpirySkewSeconds refreshes tokens this long before they expire.
	ExpirySkewSeconds int `mapstructure:"expiry_skew_seconds" default:"60"`
}

const defaultFetchTimeout = 30 * time.Second

// Token is a bearer token with its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	// RefreshAt is when the token is replaced, ahead of ExpiresAt.
	RefreshAt time.Time
}

// Valid reports whether the token can still be used at now.
func (t Token) Valid(now time.Time) bool {
	return t.AccessToken != "" && now.Before(t.ExpiresAt)
}

type tokenResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Source is a Provider that obtains tokens with the client-credentials grant and caches
// them until shortly before expiry. Concurrent refreshes are collapsed into one request.
type Source struct {
	cfg    Config
	client *resty.Client
	skew   time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	token Token
	sf    singleflight.Group
}

// NewSource creates a token source.
func NewSource(cfg Config, client *resty.Client) *Source {
	skew := time.Duration(cfg.ExpirySkewSeconds) * time.Second
	if skew < 0 {
		skew = 0
	}
	return &Source{
		cfg:    cfg,
		client: client,
		skew:   skew,
		now:    time.Now,
	}
}

// Token returns a cached token or fetches a new one.
// A refresh is shared by concurrent callers and is not bound to any caller's
// context; each caller stops waiting when its own ctx is done.
func (s *Source) Token(ctx context.Context) (string, error) {
	if tok, ok := s.cached(); ok {
		return tok.AccessToken, nil
	}

	ch := s.sf.DoChan("token", func() (interface{}, error) {
		if tok, ok := s.cached(); ok {
			return tok, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout())
		defer cancel()

		fresh, err := s.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.token = fresh
		s.mu.Unlock()
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrTokenUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(Token).AccessToken, nil
	}
}

// cached returns the stored token when it is outside its refresh window.
func (s *Source) cached() (Token, bool) {
	s.mu.RLock()
	tok := s.token
	s.mu.RUnlock()
	return tok, tok.AccessToken != "" && s.now().Before(tok.RefreshAt)
}

func (s *Source) fetchTimeout() time.Duration {
	if hc := s.client.GetClient(); hc != nil && hc.Timeout > 0 {
		return hc.Timeout
	}
	return defaultFetchTimeout
}

// Invalidate drops the cached token so the next call fetches a new one.
func (s *Source) Invalidate() {
	s.mu.Lock()
	s.token = Token{}
	s.mu.Unlock()
}

func (s *Source) fetch(ctx context.Context) (Token, error) {
	if s.cfg.ClientID == "" || s.cfg.ClientSecret == "" || s.cfg.TokenURL == "" {
		return Token{}, fmt.Errorf("%w: client credentials not configured", ErrTokenUnavailable)
	}

	form := map[string]string{"grant_type": "client_credentials"}
	req := s.client.R().SetContext(ctx)

	switch s.cfg.AuthStyle {
	case AuthStyleBasic:
		req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	default:
		form["client_id"] = s.cfg.ClientID
		form["client_secret"] = s.cfg.ClientSecret
	}

	resp, err := req.SetFormData(form).Post(s.cfg.TokenURL)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrTokenUnavailable, err)
	}

	var body tokenResponse
	if err := upstream.Decode(resp, &body); err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrTokenUnavailable, err)
	}

	expiresIn := time.Duration(body.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		// Providers that omit expires_in get a conservative lifetime.
		expiresIn = 5 * time.Minute
	}

	// Skew is capped at half the lifetime so short-lived tokens are still reused.
	skew := s.skew
	if skew > expiresIn/2 {
		skew = expiresIn / 2
	}

	now := s.now()
	return Token{
		AccessToken: body.AccessToken,
		ExpiresAt:   now.Add(expiresIn),
		RefreshAt:   now.Add(expiresIn - skew),
	}, nil
}

// Static is a Provider that always returns the same token.
type Static string

// Token returns the static token.
func (s Static) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrTokenUnavailable
	}
	return string(s), nil
}
