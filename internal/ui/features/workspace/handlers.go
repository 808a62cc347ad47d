// Package workspace provides the static shell pages: team, settings and the
// navigation demo page.
package workspace

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/routes"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// SignOutRedirect is where sign-out lands.
const SignOutRedirect = "/sign-in"

// Handlers provides HTTP handlers for the workspace pages.
type Handlers struct {
	auth     *auth.Store
	renderer *common.Renderer
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authStore *auth.Store, renderer *common.Renderer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		auth:     authStore,
		renderer: renderer,
		logger:   logger,
	}
}

// TeamPage renders the team page.
func (h *Handlers) TeamPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Team", teamView())
}

// SettingsPage renders the signed-in identity and the sign-out action.
func (h *Handlers) SettingsPage(w http.ResponseWriter, r *http.Request) {
	var cred *auth.Credential
	if c, err := h.auth.Load(r); err == nil {
		cred = &c
	}
	h.renderer.Render(w, r, "Settings", settingsView(cred))
}

// TestPage renders the navigation demo page.
func (h *Handlers) TestPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Test", testView(common.BuildNav(h.renderer.Table, routes.NotFound)))
}

// SignOut clears the stored credential and returns to sign-in.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Clear(w, r); err != nil {
		h.logger.Error("sign-out failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = datastar.NewSSE(w, r).Redirect(SignOutRedirect)
}

func teamView() templ.Component {
	return components.Component(func(_ context.Context, w *components.Writer) {
		w.Open("section", "id", "team", "class", "panel")
		w.Elem("h1", "Team")
		w.Elem("p", "Invite colleagues to share documents and agreements.", "class", "muted")
		w.Close("section")
	})
}

func settingsView(cred *auth.Credential) templ.Component {
	return components.Component(func(_ context.Context, w *components.Writer) {
		w.Open("section", "id", "settings", "class", "panel")
		w.Elem("h1", "Settings")

		if cred == nil {
			w.Open("p", "class", "muted")
			w.Text("You are not signed in. ")
			w.Elem("a", "Sign in", "href", "/sign-in")
			w.Close("p")
			w.Close("section")
			return
		}

		w.Open("dl", "class", "identity")
		w.Elem("dt", "Name")
		w.Elem("dd", common.DisplayName(cred.Name, cred.Email))
		w.Elem("dt", "Email")
		w.Elem("dd", cred.Email)
		w.Close("dl")
		w.Elem("button", "Sign out",
			"id", "sign-out",
			"type", "button",
			"class", "button",
			"data-on:click", "@post('/settings/sign-out')",
		)
		w.Close("section")
	})
}

func testView(nav []components.NavItem) templ.Component {
	return components.Component(func(_ context.Context, w *components.Writer) {
		w.Open("section", "id", "test", "class", "panel")
		w.Elem("h1", "Navigation")
		w.Open("nav", "class", "navbar-demo")
		for _, item := range nav {
			w.Elem("a", item.Label, "href", item.Href, "class", "navbar-link")
		}
		w.Close("nav")
		w.Close("section")
	})
}
