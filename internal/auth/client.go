// Package auth is the bridge to the VOYO identity service. It is a thin
// pass-through to Supabase GoTrue with a local file standing in for the web
// app's session cache.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Session is the token pair returned by the identity service.
type Session struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the session can still be used, with a small skew
// so a token never expires mid-run.
func (s *Session) Valid() bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return time.Now().Add(30 * time.Second).Before(s.ExpiresAt)
}

// Client exchanges credentials for sessions against Supabase GoTrue.
type Client struct {
	client      *resty.Client
	baseURL     string
	anonKey     string
	sessionFile string
}

// NewClient creates an auth client. sessionFile may be empty to disable the
// on-disk session cache.
func NewClient(baseURL, anonKey, sessionFile string, timeout time.Duration) *Client {
	return &Client{
		client:      resty.New().SetTimeout(timeout),
		baseURL:     strings.TrimRight(baseURL, "/"),
		anonKey:     anonKey,
		sessionFile: sessionFile,
	}
}

// SignIn performs a password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.tokenRequest(ctx, "password", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Refresh exchanges a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	return c.tokenRequest(ctx, "refresh_token", map[string]string{
		"refresh_token": refreshToken,
	})
}

// CurrentSession returns a usable session: the cached one if still valid,
// a refreshed one if possible, otherwise a fresh password sign-in.
func (c *Client) CurrentSession(ctx context.Context, email, password string) (*Session, error) {
	if cached := c.loadSession(); cached != nil {
		if cached.Valid() {
			return cached, nil
		}
		if cached.RefreshToken != "" {
			if session, err := c.Refresh(ctx, cached.RefreshToken); err == nil {
				c.saveSession(session)
				return session, nil
			}
			logrus.Debug("Session refresh failed, falling back to password sign-in")
		}
	}

	session, err := c.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.saveSession(session)
	return session, nil
}

func (c *Client) tokenRequest(ctx context.Context, grantType string, body map[string]string) (*Session, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.anonKey).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("grant_type", grantType).
		SetBody(body).
		Post(c.baseURL + "/auth/v1/token")

	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("auth returned status %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	var session Session
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, fmt.Errorf("invalid auth response: %w", err)
	}
	if session.ExpiresAt.IsZero() && session.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	}
	return &session, nil
}
