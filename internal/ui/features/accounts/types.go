// Package accounts provides the public account pages: sign-in, sign-up and
// the password reset flow.
package accounts

import (
	"context"

	"github.com/leapstack-labs/signdesk/internal/api"
)

// NoticeID is the element id of the form notice.
const NoticeID = "account-notice"

// User-facing messages.
const (
	MsgSignInRequired   = "Please enter your email and password."
	MsgSignUpRequired   = "Please fill in your name, email and password."
	MsgEmailRequired    = "Please enter your email."
	MsgTokenRequired    = "Please enter the token from your email."
	MsgPasswordRequired = "Please enter a new password."
	MsgPasswordMismatch = "Passwords do not match."
	MsgRequestFailed    = "Something went wrong. Please try again."
)

// Where each flow continues on success.
const (
	AfterSignIn = "/upload-document"
	AfterSignUp = "/sign-in"
	AfterReset  = "/sign-in"
)

// Signals is the client signal set shared by the account forms.
type Signals struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
	Token    string `json:"token"`
}

// Accounts is the part of the REST API behind these pages.
type Accounts interface {
	SignIn(ctx context.Context, email, password string) (api.Session, error)
	SignUp(ctx context.Context, req api.SignUpRequest) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyToken(ctx context.Context, email, token string) error
	ResetPassword(ctx context.Context, email, password string) error
}
