package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/desertthunder/kmx/internal/shared"
	"golang.org/x/oauth2"
)

// CredentialSource produces the value of the authorization header. An empty value means no credential is available.
type CredentialSource interface {
	Authorization(ctx context.Context) (string, error)
}

// BasicCredential is an HTTP basic credential.
type BasicCredential struct {
	Username string
	Password string
}

// Authorization returns "Basic <base64(user:pass)>", or "" without a username.
func (b BasicCredential) Authorization(context.Context) (string, error) {
	if b.Username == "" {
		return "", nil
	}
	raw := b.Username + ":" + b.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// TokenCredential reads bearer-style credentials from an [oauth2.TokenSource].
type TokenCredential struct {
	src oauth2.TokenSource
}

// NewTokenCredential wraps a token source. Sources that refresh (oauth2.Config.TokenSource) are reused as-is.
func NewTokenCredential(src oauth2.TokenSource) *TokenCredential {
	return &TokenCredential{src: oauth2.ReuseTokenSource(nil, src)}
}

// StaticTokenCredential builds a [TokenCredential] from a fixed access token.
func StaticTokenCredential(token, tokenType string) *TokenCredential {
	return NewTokenCredential(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: tokenType}))
}

// Authorization returns "<type> <access token>", or "" when the source holds no valid token.
func (c *TokenCredential) Authorization(context.Context) (string, error) {
	tok, err := c.src.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}
	if !tok.Valid() {
		return "", nil
	}
	return tok.Type() + " " + tok.AccessToken, nil
}

// CredentialFromConfig picks the configured credential: a token wins over username/password.
func CredentialFromConfig(c shared.CredentialsConfig) CredentialSource {
	if c.Token != "" {
		return StaticTokenCredential(c.Token, c.TokenType)
	}
	return BasicCredential{Username: c.Username, Password: c.Password}
}
