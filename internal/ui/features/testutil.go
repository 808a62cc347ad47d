// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/signdesk/internal/api"
	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/layout"
	"github.com/leapstack-labs/signdesk/internal/routes"
	"github.com/leapstack-labs/signdesk/internal/state"
	"github.com/leapstack-labs/signdesk/internal/testutil"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/notifier"
)

// TestSessionSecret signs test session cookies.
const TestSessionSecret = "test-secret-key-32-bytes-long!!"

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Table    *routes.Table
	Store    *state.SQLiteStore
	Auth     *auth.Store
	Renderer *common.Renderer
	Hub      *notifier.Hub[layout.Event]
	API      *FakeAPI
	Client   *api.Client
	Logger   *slog.Logger

	t *testing.T
}

// SetupTestFixture creates a complete fixture: an in-memory store, a cookie
// session store, a renderer and an API client pointed at a fake server.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	store, err := state.OpenAndMigrate(context.Background(), ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	table := routes.Default()
	authStore := auth.NewStore(sessions.NewCookieStore([]byte(TestSessionSecret)), logger)
	fake := NewFakeAPI(t)

	return &TestFixture{
		Table: table,
		Store: store,
		Auth:  authStore,
		Renderer: &common.Renderer{
			Table:        table,
			Auth:         authStore,
			Layout:       layout.DefaultConfig(),
			DefaultWidth: 1280,
		},
		Hub:    notifier.New[layout.Event](),
		API:    fake,
		Client: api.NewClient(api.Config{BaseURL: fake.URL(), Timeout: 5 * time.Second}, logger),
		Logger: logger,
		t:      t,
	}
}

// SignIn stores cred in a fresh session and returns the session cookies.
func (f *TestFixture) SignIn(cred auth.Credential) []*http.Cookie {
	f.t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(f.t, f.Auth.Save(rec, httptest.NewRequest(http.MethodPost, "/sign-in", nil), cred))
	return rec.Result().Cookies()
}

// Session returns cookies for a signed-out session with a known id.
func (f *TestFixture) Session() ([]*http.Cookie, string) {
	f.t.Helper()
	rec := httptest.NewRecorder()
	id, err := f.Auth.SessionID(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(f.t, err)
	return rec.Result().Cookies(), id
}

// SessionIDOf returns the session id carried by cookies.
func (f *TestFixture) SessionIDOf(cookies []*http.Cookie) string {
	f.t.Helper()
	req := WithCookies(httptest.NewRequest(http.MethodGet, "/", nil), cookies)
	id, err := f.Auth.SessionID(httptest.NewRecorder(), req)
	require.NoError(f.t, err)
	return id
}

// WithCookies adds cookies to r.
func WithCookies(r *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// SignalsRequest builds a Datastar action request carrying signals as its
// JSON body.
func SignalsRequest(t *testing.T, method, target string, signals any) *http.Request {
	t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return req
}

// SignalsQuery builds a Datastar GET request carrying signals in the query.
func SignalsQuery(t *testing.T, target string, signals any) *http.Request {
	t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, target+"?datastar="+url.QueryEscape(string(body)), nil)
	req.Header.Set("Datastar-Request", "true")
	return req
}

// MultipartRequest builds a multipart POST with one file field.
func MultipartRequest(t *testing.T, target, field, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// FormRequest builds a urlencoded form POST.
func FormRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// CountEvents counts SSE events of the given type in body, or all events
// when typ is empty.
func CountEvents(body, typ string) int {
	return strings.Count(body, "event: "+typ)
}

// RecordedRequest is a request received by the fake API.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	FileName      string
	FileContent   []byte
	SignerEmails  string
	JSON          map[string]string
}

// FakeAPI is a stand-in for the REST API.
type FakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	status   int
	body     string
	block    chan struct{}
}

// NewFakeAPI starts a fake API answering 200 with an envelope id.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		status: http.StatusOK,
		body:   `{"message":"ok","data":{"docuSignEnvelopeId":"env-1"}}`,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the server root.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Respond sets the canned response.
func (f *FakeAPI) Respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.body = body
}

// Block makes requests wait until the returned func is called.
func (f *FakeAPI) Block() (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.block = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Requests returns the requests received so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			rec.SignerEmails = r.FormValue("signerEmails")
			if file, header, err := r.FormFile("file"); err == nil {
				rec.FileName = header.Filename
				rec.FileContent, _ = io.ReadAll(file)
				_ = file.Close()
			}
		}
	} else {
		_ = json.NewDecoder(r.Body).Decode(&rec.JSON)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	status, body, block := f.status, f.body, f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
