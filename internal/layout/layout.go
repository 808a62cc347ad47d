// Package layout decides whether the navigation chrome renders and how much
// horizontal space the content area reserves for the sidebar.
//
// A Controller owns one tab's layout state. It is driven by discrete events
// (viewport resizes, route changes, explicit open/close actions) and never
// performs I/O, so none of its operations can fail.
package layout

import (
	"context"

	"github.com/leapstack-labs/signdesk/internal/routes"
)

// State is the chrome state for the current path and viewport.
type State int

// Chrome states.
const (
	ChromeHidden State = iota
	ChromeOpen
	ChromeClosed
)

func (s State) String() string {
	switch s {
	case ChromeHidden:
		return "chrome-hidden"
	case ChromeOpen:
		return "chrome-open"
	case ChromeClosed:
		return "chrome-closed"
	default:
		return "chrome-unknown"
	}
}

// Default layout values.
const (
	DefaultBreakpoint   = 1024
	DefaultSidebarWidth = 256
)

// Config holds the responsive thresholds.
type Config struct {
	// Breakpoint is the viewport width at and above which the sidebar docks
	// open beside the content.
	Breakpoint int
	// SidebarWidth is the inset reserved for a docked sidebar, in CSS pixels.
	SidebarWidth int
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{Breakpoint: DefaultBreakpoint, SidebarWidth: DefaultSidebarWidth}
}

func (c Config) withDefaults() Config {
	if c.Breakpoint <= 0 {
		c.Breakpoint = DefaultBreakpoint
	}
	if c.SidebarWidth < 0 {
		c.SidebarWidth = 0
	}
	return c
}

// Resolver maps paths to pages. *routes.Table satisfies it.
type Resolver interface {
	Resolve(path string) routes.Match
}

// View is a read-only snapshot of the layout state. It is comparable.
type View struct {
	State        State
	Path         string
	Page         routes.Page
	Width        int
	ShowChrome   bool
	SidebarOpen  bool
	Overlay      bool
	ContentInset int
}

// Controller holds the layout state for one mounted shell.
type Controller struct {
	cfg      Config
	resolver Resolver

	width       int
	path        string
	page        routes.Page
	public      bool
	sidebarOpen bool
}

// New creates a controller. Call Mount before reading its view.
func New(cfg Config, resolver Resolver) *Controller {
	return &Controller{cfg: cfg.withDefaults(), resolver: resolver}
}

// Mount sets the initial state from the viewport width and path, following
// the same rule as a route change.
func (c *Controller) Mount(width int, path string) View {
	c.width = clampWidth(width)
	return c.Navigate(path)
}

// Navigate applies a route change. Public paths hide the chrome; otherwise
// the sidebar opens on wide viewports and closes on narrow ones.
func (c *Controller) Navigate(path string) View {
	m := c.resolver.Resolve(path)
	c.path = m.Path
	c.page = m.Page()
	c.public = m.Public()
	c.sidebarOpen = c.wide()
	return c.View()
}

// Resize applies a viewport width change. Only crossing the breakpoint moves
// the sidebar: upward forces it open, downward forces it closed.
func (c *Controller) Resize(width int) View {
	width = clampWidth(width)
	wasWide := c.wide()
	c.width = width
	isWide := c.wide()

	switch {
	case isWide && !wasWide:
		c.sidebarOpen = true
	case !isWide && wasWide:
		c.sidebarOpen = false
	}
	return c.View()
}

// OpenSidebar opens a closed sidebar. It has no effect while the chrome is
// hidden.
func (c *Controller) OpenSidebar() View {
	if !c.public {
		c.sidebarOpen = true
	}
	return c.View()
}

// CloseSidebar closes an open sidebar (close button or overlay click). It has
// no effect while the chrome is hidden.
func (c *Controller) CloseSidebar() View {
	if !c.public {
		c.sidebarOpen = false
	}
	return c.View()
}

// State returns the current chrome state.
func (c *Controller) State() State {
	switch {
	case c.public:
		return ChromeHidden
	case c.sidebarOpen:
		return ChromeOpen
	default:
		return ChromeClosed
	}
}

// View returns a snapshot of the current state.
func (c *Controller) View() View {
	state := c.State()
	v := View{
		State:       state,
		Path:        c.path,
		Page:        c.page,
		Width:       c.width,
		ShowChrome:  state != ChromeHidden,
		SidebarOpen: state == ChromeOpen,
	}
	if v.SidebarOpen {
		if c.wide() {
			v.ContentInset = c.cfg.SidebarWidth
		} else {
			v.Overlay = true
		}
	}
	return v
}

// Breakpoint returns the configured breakpoint.
func (c *Controller) Breakpoint() int { return c.cfg.Breakpoint }

// Run consumes events until ctx is done or events is closed, calling emit
// with every view that differs from the previous one. It returns emit's
// error, if any.
func (c *Controller) Run(ctx context.Context, events <-chan Event, emit func(View) error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			prev := c.View()
			next := c.Apply(ev)
			if next == prev {
				continue
			}
			if err := emit(next); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) wide() bool { return c.width >= c.cfg.Breakpoint }

func clampWidth(width int) int {
	if width < 0 {
		return 0
	}
	return width
}
