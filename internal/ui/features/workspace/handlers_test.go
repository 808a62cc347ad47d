package workspace

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()
	fixture := features.SetupTestFixture(t)
	return NewHandlers(fixture.Auth, fixture.Renderer, fixture.Logger), fixture
}

func TestTeamPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.TeamPage(rec, httptest.NewRequest(http.MethodGet, "/team", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Team - SignDesk</title>")
	assert.Contains(t, rec.Body.String(), `id="sidebar"`)
}

func TestSettingsPage(t *testing.T) {
	tests := []struct {
		name       string
		cred       *auth.Credential
		wantBody   []string
		unwantBody []string
	}{
		{
			name:       "signed out",
			wantBody:   []string{"You are not signed in."},
			unwantBody: []string{`id="sign-out"`},
		},
		{
			name:     "signed in",
			cred:     &auth.Credential{AccessToken: "tok", Email: "grace.hopper@example.com"},
			wantBody: []string{"grace.hopper@example.com", "Grace Hopper", `id="sign-out"`, "/settings/sign-out"},
		},
		{
			name:     "signed in with name",
			cred:     &auth.Credential{AccessToken: "tok", Email: "g@example.com", Name: "Grace Hopper"},
			wantBody: []string{"Grace Hopper"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixture := setupTestHandlers(t)
			req := httptest.NewRequest(http.MethodGet, "/settings", nil)
			if tt.cred != nil {
				req = features.WithCookies(req, fixture.SignIn(*tt.cred))
			}
			rec := httptest.NewRecorder()
			h.SettingsPage(rec, req)

			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
			for _, unwant := range tt.unwantBody {
				assert.NotContains(t, body, unwant)
			}
		})
	}
}

func TestSignOut(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	cookies := fixture.SignIn(auth.Credential{AccessToken: "tok", Email: "a@b.co"})
	sessionID := fixture.SessionIDOf(cookies)

	rec := httptest.NewRecorder()
	h.SignOut(rec, features.WithCookies(httptest.NewRequest(http.MethodPost, "/settings/sign-out", nil), cookies))

	assert.Contains(t, rec.Body.String(), SignOutRedirect)

	after := rec.Result().Cookies()
	require.NotEmpty(t, after)
	_, err := fixture.Auth.Load(features.WithCookies(httptest.NewRequest(http.MethodGet, "/", nil), after))
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, sessionID, fixture.SessionIDOf(after), "sign-out keeps the browser session")
}

func TestTestPage_ListsShellPages(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.TestPage(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `class="navbar-demo"`)
	for _, href := range []string{"/upload-document", "/create-agreement", "/history", "/team", "/settings"} {
		assert.Contains(t, body, `href="`+href+`" class="navbar-link"`)
	}
	assert.NotContains(t, body, `href="/sign-in" class="navbar-link"`)
}
