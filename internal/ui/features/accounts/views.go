package accounts

import (
	"context"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// field is one input of an account form.
type field struct {
	signal      string
	label       string
	inputType   string
	placeholder string
}

var (
	nameField     = field{"name", "Name", "text", "Your name"}
	emailField    = field{"email", "Email", "email", "you@example.com"}
	passwordField = field{"password", "Password", "password", ""}
	confirmField  = field{"confirm", "Confirm password", "password", ""}
	tokenField    = field{"token", "Verification token", "text", ""}
	newPassword   = field{"password", "New password", "password", ""}
)

// form describes one account page.
type form struct {
	id      string
	heading string
	intro   string
	action  string
	submit  string
	fields  []field
	links   [][2]string
}

func (f form) component() templ.Component {
	return components.Component(func(ctx context.Context, w *components.Writer) {
		w.Open("section", "id", f.id, "class", "auth-card",
			"data-signals", `{"name": "", "email": "", "password": "", "confirm": "", "token": ""}`)
		w.Elem("h1", f.heading)
		if f.intro != "" {
			w.Elem("p", f.intro, "class", "muted")
		}
		w.Render(ctx, components.NoticeBox(NoticeID, components.Notice{}))

		w.Open("form", "class", "auth-form", "data-on:submit", "@post('"+f.action+"')")
		for _, fd := range f.fields {
			id := f.id + "-" + fd.signal
			w.Elem("label", fd.label, "for", id)
			w.Void("input", components.Attrs(
				[]string{"id", id, "type", fd.inputType, "class", "input", "data-bind:" + fd.signal, ""},
				components.If(fd.placeholder != "", "placeholder", fd.placeholder),
			)...)
		}
		w.Elem("button", f.submit, "type", "submit", "class", "button primary",
			"data-indicator:busy", "", "data-attr:disabled", "$busy")
		w.Close("form")

		if len(f.links) > 0 {
			w.Open("p", "class", "auth-links")
			for _, l := range f.links {
				w.Elem("a", l[1], "href", l[0])
			}
			w.Close("p")
		}
		w.Close("section")
	})
}

// SignInForm renders the sign-in page.
func SignInForm() templ.Component {
	return form{
		id:      "sign-in",
		heading: "Sign In",
		action:  "/sign-in",
		submit:  "Sign In",
		fields:  []field{emailField, passwordField},
		links:   [][2]string{{"/forgot-password", "Forgot password?"}, {"/sign-up", "Create an account"}},
	}.component()
}

// SignUpForm renders the sign-up page.
func SignUpForm() templ.Component {
	return form{
		id:      "sign-up",
		heading: "Sign Up",
		action:  "/sign-up",
		submit:  "Create account",
		fields:  []field{nameField, emailField, passwordField, confirmField},
		links:   [][2]string{{"/sign-in", "Already have an account? Sign in"}},
	}.component()
}

// ForgotForm renders the forgot-password page.
func ForgotForm() templ.Component {
	return form{
		id:      "forgot-password",
		heading: "Forgot Password",
		intro:   "We will email you a verification token.",
		action:  "/forgot-password",
		submit:  "Send token",
		fields:  []field{emailField},
		links:   [][2]string{{"/sign-in", "Back to sign in"}},
	}.component()
}

// VerifyForm renders the token verification page for email. action is the
// escaped page path the form posts back to.
func VerifyForm(email, action string) templ.Component {
	return form{
		id:      "token-verification",
		heading: "Verify Token",
		intro:   "Enter the token sent to " + email + ".",
		action:  action,
		submit:  "Verify",
		fields:  []field{tokenField},
		links:   [][2]string{{"/forgot-password", "Send a new token"}},
	}.component()
}

// ResetForm renders the reset-password page for email.
func ResetForm(email, action string) templ.Component {
	return form{
		id:      "reset-password",
		heading: "Reset Password",
		intro:   "Choose a new password for " + email + ".",
		action:  action,
		submit:  "Reset password",
		fields:  []field{newPassword, confirmField},
	}.component()
}
