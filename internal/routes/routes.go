// Package routes maps request paths to the application's pages.
//
// The table is built once from a static list of entries and never changes
// afterwards. Resolution is delegated to chi's radix tree so a path resolves
// to the same entry the HTTP router would serve.
package routes

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Page identifies one page of the application. The set is closed: every
// resolvable path maps to exactly one variant, and NotFound covers the rest.
type Page int

// Page variants.
const (
	NotFound Page = iota
	Home
	SignIn
	SignUp
	ForgotPassword
	TokenVerification
	ResetPassword
	UploadDocument
	CreateAgreement
	History
	Team
	Settings
	Test
)

var pageNames = [...]string{
	NotFound:          "not-found",
	Home:              "home",
	SignIn:            "sign-in",
	SignUp:            "sign-up",
	ForgotPassword:    "forgot-password",
	TokenVerification: "token-verification",
	ResetPassword:     "reset-password",
	UploadDocument:    "upload-document",
	CreateAgreement:   "create-agreement",
	History:           "history",
	Team:              "team",
	Settings:          "settings",
	Test:              "test",
}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return fmt.Sprintf("page(%d)", int(p))
	}
	return pageNames[p]
}

// Pages returns every page variant except NotFound, in declaration order.
func Pages() []Page {
	pages := make([]Page, 0, len(pageNames)-1)
	for p := Home; int(p) < len(pageNames); p++ {
		pages = append(pages, p)
	}
	return pages
}

// publicPages render without the authenticated chrome.
var publicPages = map[Page]struct{}{
	Home:              {},
	SignIn:            {},
	SignUp:            {},
	ForgotPassword:    {},
	TokenVerification: {},
	ResetPassword:     {},
}

// IsPublic reports whether p belongs to the public path set.
func IsPublic(p Page) bool {
	_, ok := publicPages[p]
	return ok
}

// PublicPages returns the public path set in declaration order.
func PublicPages() []Page {
	var out []Page
	for _, p := range Pages() {
		if IsPublic(p) {
			out = append(out, p)
		}
	}
	return out
}

// Entry binds a path pattern to a page. Patterns use chi syntax, so a named
// parameter is written as {name}.
type Entry struct {
	Pattern string
	Page    Page
	Title   string
}

// Match is the result of resolving a path.
type Match struct {
	Entry  Entry
	Path   string
	Params map[string]string
}

// Page returns the matched page, NotFound when nothing matched.
func (m Match) Page() Page { return m.Entry.Page }

// Found reports whether the path matched an entry.
func (m Match) Found() bool { return m.Entry.Page != NotFound }

// Public reports whether the matched page renders without chrome.
func (m Match) Public() bool { return IsPublic(m.Entry.Page) }

// Param returns the named path parameter, or "" when absent.
func (m Match) Param(name string) string { return m.Params[name] }

// DefaultEntries is the application's route surface.
var DefaultEntries = []Entry{
	{Pattern: "/", Page: Home, Title: "Home"},
	{Pattern: "/sign-in", Page: SignIn, Title: "Sign In"},
	{Pattern: "/sign-up", Page: SignUp, Title: "Sign Up"},
	{Pattern: "/forgot-password", Page: ForgotPassword, Title: "Forgot Password"},
	{Pattern: "/token/{email}", Page: TokenVerification, Title: "Verify Token"},
	{Pattern: "/reset-password/{email}", Page: ResetPassword, Title: "Reset Password"},
	{Pattern: "/upload-document", Page: UploadDocument, Title: "Upload Document"},
	{Pattern: "/create-agreement", Page: CreateAgreement, Title: "Create Agreement"},
	{Pattern: "/history", Page: History, Title: "History"},
	{Pattern: "/team", Page: Team, Title: "Team"},
	{Pattern: "/settings", Page: Settings, Title: "Settings"},
	{Pattern: "/test", Page: Test, Title: "Test"},
}

var notFoundEntry = Entry{Page: NotFound, Title: "Page Not Found"}

// Table resolves paths to entries.
type Table struct {
	entries []Entry
	byPage  map[Page]Entry
	byPat   map[string]Entry
	mux     *chi.Mux
}

// New builds a table from entries. Patterns must be unique, and each page may
// appear at most once.
func New(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byPage:  make(map[Page]Entry, len(entries)),
		byPat:   make(map[string]Entry, len(entries)),
		mux:     chi.NewMux(),
	}

	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	for _, e := range entries {
		if !strings.HasPrefix(e.Pattern, "/") {
			return nil, fmt.Errorf("route %s: pattern %q must start with /", e.Page, e.Pattern)
		}
		if e.Page == NotFound {
			return nil, fmt.Errorf("route %q: not-found cannot be bound to a pattern", e.Pattern)
		}
		if _, dup := t.byPat[e.Pattern]; dup {
			return nil, fmt.Errorf("duplicate route pattern %q", e.Pattern)
		}
		if _, dup := t.byPage[e.Page]; dup {
			return nil, fmt.Errorf("page %s bound twice", e.Page)
		}

		t.entries = append(t.entries, e)
		t.byPage[e.Page] = e
		t.byPat[e.Pattern] = e
		t.mux.Get(e.Pattern, noop)
	}

	return t, nil
}

// Default returns the table built from DefaultEntries.
func Default() *Table {
	t, err := New(DefaultEntries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns the table's entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the entry bound to p.
func (t *Table) Lookup(p Page) (Entry, bool) {
	e, ok := t.byPage[p]
	return e, ok
}

// Resolve maps a request path to its entry. Paths that match nothing resolve
// to NotFound; Resolve never fails.
func (t *Table) Resolve(path string) Match {
	path = normalize(path)

	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) {
		return Match{Entry: notFoundEntry, Path: path}
	}

	e, ok := t.byPat[rctx.RoutePattern()]
	if !ok {
		return Match{Entry: notFoundEntry, Path: path}
	}

	m := Match{Entry: e, Path: path}
	for i, key := range rctx.URLParams.Keys {
		if key == "" || key == "*" {
			continue
		}
		if m.Params == nil {
			m.Params = make(map[string]string, len(rctx.URLParams.Keys))
		}
		value := rctx.URLParams.Values[i]
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
		m.Params[key] = value
	}
	return m
}

// Path builds a concrete path for p, substituting params given as
// name/value pairs. Values are path-escaped.
func (t *Table) Path(p Page, params ...string) string {
	e, ok := t.byPage[p]
	if !ok {
		return "/"
	}
	out := e.Pattern
	for i := 0; i+1 < len(params); i += 2 {
		out = strings.ReplaceAll(out, "{"+params[i]+"}", url.PathEscape(params[i+1]))
	}
	return out
}

// normalize strips the query string and a trailing slash from non-root paths.
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
