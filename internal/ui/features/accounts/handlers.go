package accounts

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/signdesk/internal/api"
	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// Handlers provides HTTP handlers for the account pages.
type Handlers struct {
	accounts Accounts
	auth     *auth.Store
	renderer *common.Renderer
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(accounts Accounts, authStore *auth.Store, renderer *common.Renderer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		accounts: accounts,
		auth:     authStore,
		renderer: renderer,
		logger:   logger,
	}
}

// SignInPage renders the sign-in form.
func (h *Handlers) SignInPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Sign In", SignInForm())
}

// SignUpPage renders the sign-up form.
func (h *Handlers) SignUpPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Sign Up", SignUpForm())
}

// ForgotPage renders the forgot-password form.
func (h *Handlers) ForgotPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Forgot Password", ForgotForm())
}

// VerifyPage renders the token form for the email in the path.
func (h *Handlers) VerifyPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Verify Token", VerifyForm(chi.URLParam(r, "email"), r.URL.EscapedPath()))
}

// ResetPage renders the new-password form for the email in the path.
func (h *Handlers) ResetPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Reset Password", ResetForm(chi.URLParam(r, "email"), r.URL.EscapedPath()))
}

// SignIn exchanges the form credentials for a session and stores it.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	signals, ok := h.readSignals(w, r)
	if !ok {
		return
	}
	email := strings.TrimSpace(signals.Email)
	if email == "" || signals.Password == "" {
		h.fail(w, r, MsgSignInRequired)
		return
	}

	session, err := h.accounts.SignIn(r.Context(), email, signals.Password)
	if err != nil {
		h.failRequest(w, r, "sign-in", err)
		return
	}

	cred := auth.Credential{AccessToken: session.AccessToken, Email: session.Email, Name: session.Name}
	if cred.Email == "" {
		cred.Email = email
	}
	// The session cookie must be written before the SSE stream starts.
	if err := h.auth.Save(w, r, cred); err != nil {
		h.logger.Error("failed to store credential", "error", err)
		h.fail(w, r, MsgRequestFailed)
		return
	}

	h.logger.Info("signed in", "email", cred.Email)
	_ = datastar.NewSSE(w, r).Redirect(AfterSignIn)
}

// SignUp registers an account and continues to sign-in.
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	signals, ok := h.readSignals(w, r)
	if !ok {
		return
	}
	req := api.SignUpRequest{
		Name:     strings.TrimSpace(signals.Name),
		Email:    strings.TrimSpace(signals.Email),
		Password: signals.Password,
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.fail(w, r, MsgSignUpRequired)
		return
	}
	if signals.Password != signals.Confirm {
		h.fail(w, r, MsgPasswordMismatch)
		return
	}

	if err := h.accounts.SignUp(r.Context(), req); err != nil {
		h.failRequest(w, r, "sign-up", err)
		return
	}
	_ = datastar.NewSSE(w, r).Redirect(AfterSignUp)
}

// ForgotPassword requests a verification token and continues to the token
// page.
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	signals, ok := h.readSignals(w, r)
	if !ok {
		return
	}
	email := strings.TrimSpace(signals.Email)
	if email == "" {
		h.fail(w, r, MsgEmailRequired)
		return
	}

	if err := h.accounts.ForgotPassword(r.Context(), email); err != nil {
		h.failRequest(w, r, "forgot-password", err)
		return
	}
	_ = datastar.NewSSE(w, r).Redirect("/token/" + url.PathEscape(email))
}

// VerifyToken checks the mailed token and continues to the reset page.
func (h *Handlers) VerifyToken(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	signals, ok := h.readSignals(w, r)
	if !ok {
		return
	}
	token := strings.TrimSpace(signals.Token)
	if token == "" {
		h.fail(w, r, MsgTokenRequired)
		return
	}

	if err := h.accounts.VerifyToken(r.Context(), email, token); err != nil {
		h.failRequest(w, r, "verify-token", err)
		return
	}
	_ = datastar.NewSSE(w, r).Redirect("/reset-password/" + url.PathEscape(email))
}

// ResetPassword sets the new password and continues to sign-in.
func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	signals, ok := h.readSignals(w, r)
	if !ok {
		return
	}
	if signals.Password == "" {
		h.fail(w, r, MsgPasswordRequired)
		return
	}
	if signals.Password != signals.Confirm {
		h.fail(w, r, MsgPasswordMismatch)
		return
	}

	if err := h.accounts.ResetPassword(r.Context(), email, signals.Password); err != nil {
		h.failRequest(w, r, "reset-password", err)
		return
	}
	_ = datastar.NewSSE(w, r).Redirect(AfterReset)
}

func (h *Handlers) readSignals(w http.ResponseWriter, r *http.Request) (Signals, bool) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.fail(w, r, "Failed to read signals: "+err.Error())
		return signals, false
	}
	return signals, true
}

// failRequest reports an API failure, preferring the server's message.
func (h *Handlers) failRequest(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Warn("account request failed", "op", op, "error", err)
	msg := api.MessageOf(err)
	if msg == "" {
		msg = MsgRequestFailed
	}
	h.fail(w, r, msg)
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, msg string) {
	sse := datastar.NewSSE(w, r)
	notice := components.Notice{Kind: components.NoticeError, Message: msg}
	if err := sse.PatchElementTempl(components.NoticeBox(NoticeID, notice)); err != nil {
		_ = sse.ConsoleError(err)
	}
}
