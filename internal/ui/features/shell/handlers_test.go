package shell

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/layout"
	"github.com/leapstack-labs/signdesk/internal/routes"
	"github.com/leapstack-labs/signdesk/internal/ui/features"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/notifier"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()
	fixture := features.SetupTestFixture(t)
	return NewHandlers(fixture.Renderer, fixture.Hub, fixture.Logger), fixture
}

// startStream runs the SSE handler for tab until the request times out and
// waits for its subscription to appear.
func startStream(t *testing.T, h *Handlers, tab string, signals Signals, timeout time.Duration) (*httptest.ResponseRecorder, <-chan struct{}) {
	t.Helper()

	req := features.SignalsQuery(t, "/shell/"+tab+"/sse", signals)
	req = features.RequestWithTimeout(t, features.RequestWithPathParam(req, "tab", tab), timeout)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Stream(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return h.hub.Has(tab) }, time.Second, 5*time.Millisecond)
	return rec, done
}

func postAction(t *testing.T, handler http.HandlerFunc, tab, action string, signals Signals) *httptest.ResponseRecorder {
	t.Helper()
	req := features.SignalsRequest(t, http.MethodPost, "/shell/"+tab+"/"+action, signals)
	req = features.RequestWithPathParam(req, "tab", tab)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// =============================================================================
// Middleware
// =============================================================================

func TestMiddleware_StoresViewAndTab(t *testing.T) {
	h, _ := setupTestHandlers(t)

	var (
		view  layout.View
		tab   string
		found bool
	)
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		view, found = layout.ViewFrom(r.Context())
		tab, _ = common.TabIDFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	req.AddCookie(&http.Cookie{Name: common.ViewportCookie, Value: "700"})
	h.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, found)
	assert.NotEmpty(t, tab)
	assert.Equal(t, routes.History, view.Page)
	assert.Equal(t, layout.ChromeClosed, view.State)
	assert.Equal(t, 700, view.Width)
}

func TestMiddleware_SkipsActions(t *testing.T) {
	h, _ := setupTestHandlers(t)

	var found bool
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, found = layout.ViewFrom(r.Context())
	})
	h.Middleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/upload-document/submit", nil))
	assert.False(t, found)
}

// =============================================================================
// Stream
// =============================================================================

func TestStream_SendsInitialView(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec, done := startStream(t, h, "tab-1", Signals{Path: "/history", ViewportWidth: 1280}, 100*time.Millisecond)
	<-done

	body := rec.Body.String()
	assert.Equal(t, 1, features.CountEvents(body, "datastar-patch-elements"))
	assert.Equal(t, 1, features.CountEvents(body, "datastar-patch-signals"))
	assert.Contains(t, body, `id="chrome"`)
	assert.Contains(t, body, "chrome-open")
	assert.Contains(t, body, `"contentInset":256`)
	assert.False(t, h.hub.Has("tab-1"), "subscription is released on disconnect")
}

func TestStream_AppliesEvents(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec, done := startStream(t, h, "tab-2", Signals{Path: "/upload-document", ViewportWidth: 1280}, 300*time.Millisecond)

	assert.Equal(t, http.StatusNoContent, postAction(t, h.Resize, "tab-2", "resize", Signals{ViewportWidth: 600}).Code)
	assert.Equal(t, http.StatusNoContent, postAction(t, h.Open, "tab-2", "open", Signals{}).Code)
	<-done

	body := rec.Body.String()
	// Mount, resize below the breakpoint, open as overlay.
	assert.Equal(t, 3, features.CountEvents(body, "datastar-patch-elements"))
	assert.Contains(t, body, "chrome-closed")
	assert.Contains(t, body, `id="sidebar-overlay"`)
	assert.Contains(t, body, `"contentInset":0`)
}

func TestStream_SkipsUnchangedViews(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec, done := startStream(t, h, "tab-3", Signals{Path: "/sign-in", ViewportWidth: 1280}, 150*time.Millisecond)

	// Sidebar actions are no-ops on public pages.
	postAction(t, h.Open, "tab-3", "open", Signals{})
	postAction(t, h.Close, "tab-3", "close", Signals{})
	<-done

	body := rec.Body.String()
	assert.Equal(t, 1, features.CountEvents(body, "datastar-patch-elements"))
	assert.Contains(t, body, "chrome-hidden")
}

func TestStream_NavigateWhileNarrowCloses(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec, done := startStream(t, h, "tab-4", Signals{Path: "/history", ViewportWidth: 600}, 300*time.Millisecond)
	postAction(t, h.Open, "tab-4", "open", Signals{})
	postAction(t, h.Navigate, "tab-4", "navigate", Signals{Path: "/team"})
	<-done

	body := rec.Body.String()
	assert.Equal(t, 3, features.CountEvents(body, "datastar-patch-elements"))
	last := body[strings.LastIndex(body, "datastar-patch-elements"):]
	assert.Contains(t, last, "chrome-closed")
}

func TestStream_ShowsSignedInUser(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	cookies := fixture.SignIn(auth.Credential{AccessToken: "t", Name: "Ann Lee"})

	req := features.SignalsQuery(t, "/shell/tab-5/sse", Signals{Path: "/settings", ViewportWidth: 1280})
	req = features.WithCookies(req, cookies)
	req = features.RequestWithTimeout(t, features.RequestWithPathParam(req, "tab", "tab-5"), 50*time.Millisecond)
	rec := httptest.NewRecorder()
	h.Stream(rec, req)

	assert.Contains(t, rec.Body.String(), "Ann Lee")
}

func TestStream_FallsBackWithoutSignals(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/shell/tab-6/sse", nil)
	req.AddCookie(&http.Cookie{Name: common.ViewportCookie, Value: "500"})
	req = features.RequestWithTimeout(t, features.RequestWithPathParam(req, "tab", "tab-6"), 50*time.Millisecond)
	rec := httptest.NewRecorder()
	h.Stream(rec, req)

	// Path defaults to the public root.
	assert.Contains(t, rec.Body.String(), "chrome-hidden")
}

// =============================================================================
// Actions
// =============================================================================

func TestActions_UnknownTabIsDropped(t *testing.T) {
	h, _ := setupTestHandlers(t)

	assert.Equal(t, http.StatusNoContent, postAction(t, h.Open, "missing", "open", Signals{}).Code)
	assert.Equal(t, http.StatusNoContent, postAction(t, h.Close, "missing", "close", Signals{}).Code)
	assert.Equal(t, http.StatusNoContent, postAction(t, h.Navigate, "missing", "navigate", Signals{Path: "/team"}).Code)
}

func TestResize_SetsCookie(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postAction(t, h.Resize, "tab", "resize", Signals{ViewportWidth: 900})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "900", cookies[0].Value)
}

func TestActions_RejectBadSignals(t *testing.T) {
	h, _ := setupTestHandlers(t)

	assert.Equal(t, http.StatusBadRequest, postAction(t, h.Resize, "tab", "resize", Signals{}).Code)
	assert.Equal(t, http.StatusBadRequest, postAction(t, h.Navigate, "tab", "navigate", Signals{}).Code)

	req := httptest.NewRequest(http.MethodPost, "/shell/tab/resize", strings.NewReader("{not json"))
	req = features.RequestWithPathParam(req, "tab", "tab")
	rec := httptest.NewRecorder()
	h.Resize(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActions_WaitForSlowStream(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Renderer, notifier.NewWithBuffer[layout.Event](1), fixture.Logger)

	events := h.hub.Subscribe("tab")
	defer h.hub.Unsubscribe("tab", events)

	received := make(chan []layout.Event)
	go func() {
		var got []layout.Event
		for ev := range events {
			time.Sleep(2 * time.Millisecond)
			got = append(got, ev)
			if len(got) == 20 {
				break
			}
		}
		received <- got
	}()

	for i := range 20 {
		width := 800
		if i%2 == 1 {
			width = 1280
		}
		rec := postAction(t, h.Resize, "tab", "resize", Signals{ViewportWidth: width})
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	got := <-received
	require.Len(t, got, 20)
	assert.Equal(t, layout.Resized{Width: 1280}, got[19], "final resize is delivered")
}

func TestActions_UndeliveredEventIsUnavailable(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Renderer, notifier.NewWithBuffer[layout.Event](1), fixture.Logger)
	h.publishTimeout = 20 * time.Millisecond

	events := h.hub.Subscribe("tab")
	defer h.hub.Unsubscribe("tab", events)

	assert.Equal(t, http.StatusNoContent, postAction(t, h.Open, "tab", "open", Signals{}).Code)
	assert.Equal(t, http.StatusServiceUnavailable, postAction(t, h.Close, "tab", "close", Signals{}).Code)

	assert.Equal(t, layout.SidebarOpened{}, <-events)
}
