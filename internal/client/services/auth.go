// Package services contains application services for the MindMate client.
// This file defines the authentication service: status check, logout, and
// the login / register flows that fill the local session.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/mindmate-client/internal/client/authhttp"
	"github.com/dmitrijs2005/mindmate-client/internal/client/session"
	"github.com/dmitrijs2005/mindmate-client/internal/common"
	"github.com/dmitrijs2005/mindmate-client/internal/logging"
)

// Fetcher issues authenticated requests. *authhttp.Client implements it.
type Fetcher interface {
	FetchWithAuth(ctx context.Context, target string, opts *authhttp.RequestOptions) (*http.Response, error)
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// SessionStore is the local login state. *session.Session implements it.
type SessionStore interface {
	Token(ctx context.Context) (string, bool)
	Identity(ctx context.Context) (session.Identity, error)
	Save(ctx context.Context, token string, id session.Identity) error
	Clear(ctx context.Context) error
}

// Credentials is what a successful login or registration leaves in the session.
type Credentials struct {
	Token    string
	UserID   string
	Username string
}

// AuthService defines authentication operations for the client.
//
// Contract:
//   - CheckAuth: ask the server whether the stored token is valid; false on any failure.
//   - Logout: notify the server, wipe the local session, go to the login page. Never fails.
//   - Login / Register: obtain a token and persist it with the session identifiers.
//   - Whoami: read the stored session identifiers.
type AuthService interface {
	CheckAuth(ctx context.Context) bool
	Logout(ctx context.Context)
	Login(ctx context.Context, loginID string, password []byte) (*Credentials, error)
	Register(ctx context.Context, username string, password []byte) (*Credentials, error)
	Whoami(ctx context.Context) (session.Identity, error)
}

type authService struct {
	fetcher   Fetcher
	session   SessionStore
	navigator Navigator
	logger    logging.Logger
}

func NewAuthService(fetcher Fetcher, sess SessionStore, nav Navigator, logger logging.Logger) AuthService {
	return &authService{
		fetcher:   fetcher,
		session:   sess,
		navigator: nav,
		logger:    logger.With("module", "auth_service"),
	}
}

type checkResponse struct {
	Authenticated *bool `json:"authenticated"`
}

// CheckAuth fails closed: transport errors, undecodable bodies and a missing
// "authenticated" field all yield false. The HTTP status is not consulted.
func (a *authService) CheckAuth(ctx context.Context) bool {
	resp, err := a.fetcher.FetchWithAuth(ctx, common.EndpointAuthCheck, nil)
	if err != nil {
		a.logger.Error(ctx, "auth check failed", "error", err)
		return false
	}
	defer drainAndClose(resp)

	var cr checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		a.logger.Error(ctx, "auth check failed", "error", fmt.Errorf("decode response: %w", err))
		return false
	}
	if cr.Authenticated == nil {
		a.logger.Error(ctx, "auth check failed", "error", common.ErrNoAuthenticatedField)
		return false
	}

	return *cr.Authenticated
}

// Logout always completes locally. The server notification and the storage
// wipe are best effort; failures are only logged. The wipe and the redirect
// still run once ctx is cancelled or past its deadline.
func (a *authService) Logout(ctx context.Context) {
	resp, err := a.fetcher.FetchWithAuth(ctx, common.EndpointAuthLogout, &authhttp.RequestOptions{Method: http.MethodPost})
	if err != nil {
		a.logger.Error(ctx, "logout notification failed", "error", err)
	} else {
		drainAndClose(resp)
	}

	local := context.WithoutCancel(ctx)
	if err := a.session.Clear(local); err != nil {
		a.logger.Error(local, "clearing local session failed", "error", err)
	}

	a.navigator.Navigate(local, common.LoginPath)
}

type loginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Success  bool        `json:"success"`
	UserID   json.Number `json:"user_id"`
	Username string      `json:"username"`
	Token    string      `json:"token"`
	Error    string      `json:"error"`
}

// Login exchanges credentials for a token. loginID is a username or an email.
func (a *authService) Login(ctx context.Context, loginID string, password []byte) (*Credentials, error) {
	ar, err := a.postCredentials(ctx, common.EndpointAuthLogin, loginRequest{LoginID: loginID, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if !ar.Success {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidCredentials, ar.Error)
	}

	username := ar.Username
	if username == "" {
		username = loginID
	}
	return a.persist(ctx, ar, username)
}

// Register creates an account; the server logs the new user in right away.
func (a *authService) Register(ctx context.Context, username string, password []byte) (*Credentials, error) {
	ar, err := a.postCredentials(ctx, common.EndpointAuthRegister, registerRequest{Username: username, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	if !ar.Success {
		return nil, fmt.Errorf("%w: %s", common.ErrRegistrationFailed, ar.Error)
	}

	return a.persist(ctx, ar, username)
}

func (a *authService) Whoami(ctx context.Context) (session.Identity, error) {
	return a.session.Identity(ctx)
}

func (a *authService) postCredentials(ctx context.Context, endpoint string, payload any) (*authResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := a.fetcher.FetchWithAuth(ctx, endpoint, &authhttp.RequestOptions{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	defer drainAndClose(resp)

	var ar authResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", common.ErrUnexpectedResponse, resp.StatusCode, err)
	}
	return &ar, nil
}

func (a *authService) persist(ctx context.Context, ar *authResponse, username string) (*Credentials, error) {
	if ar.Token == "" {
		return nil, fmt.Errorf("%w: no token issued", common.ErrUnexpectedResponse)
	}

	creds := &Credentials{Token: ar.Token, UserID: ar.UserID.String(), Username: username}
	if err := a.session.Save(ctx, creds.Token, session.Identity{UserID: creds.UserID, Username: creds.Username}); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.logger.Info(ctx, "session stored", "user_id", creds.UserID, "username", creds.Username, "token", logging.Mask(creds.Token))
	return creds, nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
