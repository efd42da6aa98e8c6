package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	accountdomain "github.com/saschaorth/item-catalog/services/account/domain"
)

// Default Google endpoints. Overridable so tests can point the connector at
// an httptest server.
const (
	defaultTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	defaultUserInfoURL  = "https://www.googleapis.com/oauth2/v1/userinfo"
	defaultRevokeURL    = "https://accounts.google.com/o/oauth2/revoke"
)

const providerTimeout = 10 * time.Second

// GoogleConfig configures the connector. Zero-valued endpoint fields fall
// back to the public Google endpoints.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	TokenURL     string
	TokenInfoURL string
	UserInfoURL  string
	RevokeURL    string

	HTTPClient *http.Client
}

// Credentials is the provider credential set obtained from a successful
// authorization-code exchange.
type Credentials struct {
	AccessToken string
	SubjectID   string
}

// Profile is the subset of the provider's user-info response the application
// binds to a session.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GoogleConnector drives the Google authorization-code flow: code exchange,
// token introspection with identity binding checks, profile fetch, and token
// revocation. All outbound calls share one bounded-timeout HTTP client.
type GoogleConnector struct {
	oauth        *oauth2.Config
	tokenInfoURL string
	userInfoURL  string
	revokeURL    string
	client       *http.Client
}

// NewGoogleConnector returns a connector for the given client registration.
func NewGoogleConnector(cfg GoogleConfig) *GoogleConnector {
	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{AuthURL: endpoint.AuthURL, TokenURL: cfg.TokenURL}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: providerTimeout}
	}
	c := &GoogleConnector{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		tokenInfoURL: cfg.TokenInfoURL,
		userInfoURL:  cfg.UserInfoURL,
		revokeURL:    cfg.RevokeURL,
		client:       client,
	}
	if c.tokenInfoURL == "" {
		c.tokenInfoURL = defaultTokenInfoURL
	}
	if c.userInfoURL == "" {
		c.userInfoURL = defaultUserInfoURL
	}
	if c.revokeURL == "" {
		c.revokeURL = defaultRevokeURL
	}
	return c
}

// ClientID returns the registered OAuth client id, embedded into the login page.
func (c *GoogleConnector) ClientID() string {
	return c.oauth.ClientID
}

// Connect exchanges the authorization code for provider credentials and
// validates them against the token-info endpoint:
//   - exchange failure -> ErrCodeExchangeFailed
//   - provider-reported introspection error -> ErrTokenIntrospection
//   - token subject != introspected user id -> ErrTokenUserMismatch
//   - introspected client id != registered client id -> ErrTokenClientMismatch
func (c *GoogleConnector) Connect(ctx context.Context, code string) (*Credentials, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", accountdomain.ErrCodeExchangeFailed, err)
	}

	subject, err := idTokenSubject(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", accountdomain.ErrCodeExchangeFailed, err)
	}
	creds := &Credentials{AccessToken: token.AccessToken, SubjectID: subject}

	info, err := c.introspect(ctx, creds.AccessToken)
	if err != nil {
		return nil, err
	}
	if info.UserID != creds.SubjectID {
		return nil, accountdomain.ErrTokenUserMismatch
	}
	if info.IssuedTo != c.oauth.ClientID {
		return nil, accountdomain.ErrTokenClientMismatch
	}
	return creds, nil
}

// FetchProfile retrieves the provider's user-info record for the token.
func (c *GoogleConnector) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	u := c.userInfoURL + "?" + url.Values{
		"access_token": {accessToken},
		"alt":          {"json"},
	}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}
	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &profile, nil
}

// Revoke invalidates the access token at the provider. Any response other
// than HTTP 200 is ErrRevokeFailed.
func (c *GoogleConnector) Revoke(ctx context.Context, accessToken string) error {
	u := c.revokeURL + "?" + url.Values{"token": {accessToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build revoke request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", accountdomain.ErrRevokeFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", accountdomain.ErrRevokeFailed, resp.StatusCode)
	}
	return nil
}

type tokenInfo struct {
	IssuedTo string `json:"issued_to"`
	UserID   string `json:"user_id"`
	Error    string `json:"error"`
	ErrDesc  string `json:"error_description"`
}

func (c *GoogleConnector) introspect(ctx context.Context, accessToken string) (*tokenInfo, error) {
	u := c.tokenInfoURL + "?" + url.Values{"access_token": {accessToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", accountdomain.ErrTokenIntrospection, err)
	}
	defer resp.Body.Close()
	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", accountdomain.ErrTokenIntrospection, err)
	}
	if info.Error != "" {
		msg := info.Error
		if info.ErrDesc != "" {
			msg += ": " + info.ErrDesc
		}
		return nil, fmt.Errorf("%w: %s", accountdomain.ErrTokenIntrospection, msg)
	}
	return &info, nil
}

// idTokenSubject extracts the subject ("sub") claim from the id_token
// returned alongside the access token. The payload is decoded without
// signature verification; the subsequent token-info call is what validates
// the token with the provider.
func idTokenSubject(token *oauth2.Token) (string, error) {
	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", fmt.Errorf("token response missing id_token")
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed id_token")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode id_token payload: %w", err)
	}
	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("parse id_token claims: %w", err)
	}
	if claims.Sub == "" {
		return "", fmt.Errorf("id_token missing sub claim")
	}
	return claims.Sub, nil
}
