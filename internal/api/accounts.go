package api

import (
	"context"
	"fmt"
)

// Session is the credential returned by a successful sign-in.
type Session struct {
	AccessToken string `json:"accessToken"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}

// sessionResponse accepts the session either at the top level or wrapped in
// a data envelope.
type sessionResponse struct {
	Session
	Data *Session `json:"data"`
}

func (r sessionResponse) session() (Session, error) {
	s := r.Session
	if r.Data != nil && r.Data.AccessToken != "" {
		s = *r.Data
	}
	if s.AccessToken == "" {
		return Session{}, fmt.Errorf("response carries no access token")
	}
	return s, nil
}

// SignUpRequest is the sign-up form payload.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	var resp sessionResponse
	if err := c.postJSON(ctx, "/auth/sign-in", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp); err != nil {
		return Session{}, err
	}
	return resp.session()
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	return c.postJSON(ctx, "/auth/sign-up", "", req, nil)
}

// ForgotPassword asks the API to mail a verification token to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/auth/forgot-password", "", map[string]string{
		"email": email,
	}, nil)
}

// VerifyToken checks the mailed token for email.
func (c *Client) VerifyToken(ctx context.Context, email, token string) error {
	return c.postJSON(ctx, "/auth/verify-token", "", map[string]string{
		"email": email,
		"token": token,
	}, nil)
}

// ResetPassword sets a new password for email.
func (c *Client) ResetPassword(ctx context.Context, email, password string) error {
	return c.postJSON(ctx, "/auth/reset-password", "", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
}
