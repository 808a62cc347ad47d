package home

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/ui/features"
)

func TestHomePage(t *testing.T) {
	tests := []struct {
		name       string
		signedIn   bool
		wantBody   []string
		unwantBody []string
	}{
		{
			name: "signed out visitor sees auth links",
			wantBody: []string{
				"<title>Home - SignDesk</title>",
				`href="/sign-in"`,
				`href="/sign-up"`,
				"Effortless Document Management",
				"Collaborate with Ease",
				`data-on-interval__duration.5s="$slide = ($slide + 1) % 3"`,
			},
			unwantBody: []string{`id="topbar"`, "/shell/"},
		},
		{
			name:       "signed in user is sent to uploads",
			signedIn:   true,
			wantBody:   []string{`href="/upload-document"`},
			unwantBody: []string{`href="/sign-up"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := features.SetupTestFixture(t)
			h := NewHandlers(fixture.Renderer)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.signedIn {
				req = features.WithCookies(req, fixture.SignIn(auth.Credential{AccessToken: "tok", Email: "a@b.co"}))
			}
			rec := httptest.NewRecorder()
			h.HomePage(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
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

func TestHomePage_OnlyFirstSlideVisible(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Renderer)

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Equal(t, len(Slides), strings.Count(body, `class="slide"`))
	assert.Equal(t, len(Slides)-1, strings.Count(body, `style="display: none"`))
	assert.Contains(t, body, `data-show="$slide === 0"`)
}

func TestDurationModifier(t *testing.T) {
	assert.Equal(t, "5s", durationModifier(5*time.Second))
	assert.Equal(t, "150ms", durationModifier(150*time.Millisecond))
}
