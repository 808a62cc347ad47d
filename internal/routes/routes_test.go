package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	table := Default()

	tests := []struct {
		name     string
		path     string
		wantPage Page
		wantArgs map[string]string
	}{
		{name: "root", path: "/", wantPage: Home},
		{name: "sign in", path: "/sign-in", wantPage: SignIn},
		{name: "sign up", path: "/sign-up", wantPage: SignUp},
		{name: "forgot password", path: "/forgot-password", wantPage: ForgotPassword},
		{name: "token with email", path: "/token/jane@example.com", wantPage: TokenVerification, wantArgs: map[string]string{"email": "jane@example.com"}},
		{name: "escaped email", path: "/reset-password/jane%2Bsign@example.com", wantPage: ResetPassword, wantArgs: map[string]string{"email": "jane+sign@example.com"}},
		{name: "upload", path: "/upload-document", wantPage: UploadDocument},
		{name: "agreement", path: "/create-agreement", wantPage: CreateAgreement},
		{name: "history", path: "/history", wantPage: History},
		{name: "team", path: "/team", wantPage: Team},
		{name: "settings", path: "/settings", wantPage: Settings},
		{name: "test", path: "/test", wantPage: Test},
		{name: "trailing slash", path: "/history/", wantPage: History},
		{name: "query string", path: "/team?tab=members", wantPage: Team},
		{name: "empty path", path: "", wantPage: Home},
		{name: "unknown", path: "/does-not-exist", wantPage: NotFound},
		{name: "token without email", path: "/token", wantPage: NotFound},
		{name: "two levels of params", path: "/token/a/b", wantPage: NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := table.Resolve(tt.path)
			assert.Equal(t, tt.wantPage, m.Page())
			assert.Equal(t, tt.wantPage != NotFound, m.Found())
			for k, v := range tt.wantArgs {
				assert.Equal(t, v, m.Param(k))
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	table := Default()
	first := table.Resolve("/token/a@b.co")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, table.Resolve("/token/a@b.co"))
	}
}

func TestPublicPathSet(t *testing.T) {
	want := []Page{Home, SignIn, SignUp, ForgotPassword, TokenVerification, ResetPassword}
	assert.Equal(t, want, PublicPages())

	for _, p := range []Page{UploadDocument, CreateAgreement, History, Team, Settings, Test, NotFound} {
		assert.False(t, IsPublic(p), "%s should not be public", p)
	}
}

func TestEveryPageHasAnEntry(t *testing.T) {
	table := Default()
	for _, p := range Pages() {
		e, ok := table.Lookup(p)
		require.True(t, ok, "page %s has no entry", p)
		assert.Equal(t, p, e.Page)
		assert.NotEmpty(t, e.Title)
	}
	assert.Len(t, table.Entries(), len(Pages()))
}

func TestNewRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{name: "duplicate pattern", entries: []Entry{{Pattern: "/a", Page: Home}, {Pattern: "/a", Page: Team}}},
		{name: "duplicate page", entries: []Entry{{Pattern: "/a", Page: Home}, {Pattern: "/b", Page: Home}}},
		{name: "relative pattern", entries: []Entry{{Pattern: "a", Page: Home}}},
		{name: "not found bound", entries: []Entry{{Pattern: "/missing", Page: NotFound}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries...)
			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	table := Default()
	assert.Equal(t, "/token/jane@example.com", table.Path(TokenVerification, "email", "jane@example.com"))
	assert.Equal(t, "/history", table.Path(History))
	assert.Equal(t, "/", table.Path(NotFound))

	// Round trip through Resolve.
	m := table.Resolve(table.Path(ResetPassword, "email", "a b@example.com"))
	assert.Equal(t, ResetPassword, m.Page())
	assert.Equal(t, "a b@example.com", m.Param("email"))
}

func TestPageString(t *testing.T) {
	assert.Equal(t, "upload-document", UploadDocument.String())
	assert.Equal(t, "not-found", NotFound.String())
	assert.Equal(t, "page(99)", Page(99).String())
}
