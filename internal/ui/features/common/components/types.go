package components

import (
	"github.com/leapstack-labs/signdesk/internal/layout"
	"github.com/leapstack-labs/signdesk/internal/routes"
)

// AppName is shown in titles and the top bar.
const AppName = "SignDesk"

// DatastarScript is the Datastar client bundle.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// PageData holds everything the document and the shell chrome need.
type PageData struct {
	Title        string
	Page         routes.Page
	Path         string
	View         layout.View
	TabID        string
	User         string
	Nav          []NavItem
	SidebarWidth int
	IsDev        bool
}

// NavItem is a sidebar link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// ShellSignals is the client signal set seeded on every page.
type ShellSignals struct {
	TabID         string `json:"tabId"`
	Path          string `json:"path"`
	ViewportWidth int    `json:"viewportWidth"`
	SidebarOpen   bool   `json:"sidebarOpen"`
	ContentInset  int    `json:"contentInset"`
}

// ChromeSignals is the part of ShellSignals owned by the server.
type ChromeSignals struct {
	SidebarOpen  bool `json:"sidebarOpen"`
	ContentInset int  `json:"contentInset"`
}

// NoticeKind selects the notice styling.
type NoticeKind string

// Notice kinds.
const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a user-facing message.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Message == ""
}

// ShellSignalsFor returns the initial signals of a page.
func ShellSignalsFor(data PageData) ShellSignals {
	return ShellSignals{
		TabID:         data.TabID,
		Path:          data.Path,
		ViewportWidth: data.View.Width,
		SidebarOpen:   data.View.SidebarOpen,
		ContentInset:  data.View.ContentInset,
	}
}

// ChromeSignalsFor returns the server-owned signals for v.
func ChromeSignalsFor(v layout.View) ChromeSignals {
	return ChromeSignals{
		SidebarOpen:  v.SidebarOpen,
		ContentInset: v.ContentInset,
	}
}
