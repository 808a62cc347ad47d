package common

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/layout"
	"github.com/leapstack-labs/signdesk/internal/routes"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

type tabKey struct{}

// WithTabID returns a context carrying the page's tab id.
func WithTabID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, tabKey{}, id)
}

// TabIDFrom returns the tab id stored by WithTabID.
func TabIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tabKey{}).(string)
	return id, ok && id != ""
}

// Renderer renders full pages inside the document and, for shell pages, the
// chrome.
type Renderer struct {
	Table        *routes.Table
	Auth         *auth.Store
	Layout       layout.Config
	DefaultWidth int
	IsDev        bool
}

// Mount computes the layout view and tab id for a page request. The shell
// middleware calls it once per page; pages reached without the middleware
// mount on demand.
func (rn *Renderer) Mount(r *http.Request) (layout.View, string) {
	ctrl := layout.New(rn.Layout, rn.Table)
	view := ctrl.Mount(ViewportWidth(r, rn.DefaultWidth), r.URL.Path)
	return view, uuid.New().String()
}

// PageData assembles the document data for r.
func (rn *Renderer) PageData(r *http.Request, title string) components.PageData {
	view, ok := layout.ViewFrom(r.Context())
	tab, hasTab := TabIDFrom(r.Context())
	if !ok || !hasTab {
		view, tab = rn.Mount(r)
	}

	data := components.PageData{
		Title:        title,
		Page:         view.Page,
		Path:         view.Path,
		View:         view,
		TabID:        tab,
		SidebarWidth: rn.sidebarWidth(),
		IsDev:        rn.IsDev,
	}
	if view.ShowChrome {
		data.Nav = BuildNav(rn.Table, view.Page)
		data.User = rn.User(r)
	}
	return data
}

// ChromeData assembles the data for re-rendering the chrome of a tab.
func (rn *Renderer) ChromeData(r *http.Request, tab string, view layout.View) components.PageData {
	return components.PageData{
		Page:         view.Page,
		Path:         view.Path,
		View:         view,
		TabID:        tab,
		User:         rn.User(r),
		Nav:          BuildNav(rn.Table, view.Page),
		SidebarWidth: rn.sidebarWidth(),
		IsDev:        rn.IsDev,
	}
}

// User returns the display name of the signed-in user, or "".
func (rn *Renderer) User(r *http.Request) string {
	if rn.Auth == nil {
		return ""
	}
	cred, err := rn.Auth.Load(r)
	if err != nil {
		return ""
	}
	return DisplayName(cred.Name, cred.Email)
}

// Render writes the page, or a 500 when rendering fails.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	rn.RenderStatus(w, r, http.StatusOK, title, body)
}

// RenderStatus is Render with an explicit status code.
func (rn *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	data := rn.PageData(r, title)

	var buf bytes.Buffer
	if err := components.Document(data, body).Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (rn *Renderer) sidebarWidth() int {
	if rn.Layout.SidebarWidth > 0 {
		return rn.Layout.SidebarWidth
	}
	return layout.DefaultSidebarWidth
}

// BuildNav lists the shell pages of table as sidebar links.
func BuildNav(table *routes.Table, current routes.Page) []components.NavItem {
	var items []components.NavItem
	for _, e := range table.Entries() {
		if routes.IsPublic(e.Page) || strings.Contains(e.Pattern, "{") {
			continue
		}
		items = append(items, components.NavItem{
			Label:  e.Title,
			Href:   e.Pattern,
			Active: e.Page == current,
		})
	}
	return items
}
