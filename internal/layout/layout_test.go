package layout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/signdesk/internal/routes"
)

const (
	wide   = 1280
	narrow = 800
)

func newController() *Controller {
	return New(DefaultConfig(), routes.Default())
}

func publicPaths() []string {
	return []string{"/", "/sign-in", "/sign-up", "/forgot-password", "/token/a@b.co", "/reset-password/a@b.co"}
}

func shellPaths() []string {
	return []string{"/upload-document", "/create-agreement", "/history", "/team", "/settings", "/test"}
}

func TestPublicPathsHideChrome(t *testing.T) {
	for _, path := range publicPaths() {
		for _, width := range []int{0, narrow, DefaultBreakpoint - 1, DefaultBreakpoint, wide} {
			for _, priorOpen := range []bool{true, false} {
				c := newController()
				c.Mount(width, "/history")
				if priorOpen {
					c.OpenSidebar()
				} else {
					c.CloseSidebar()
				}

				v := c.Navigate(path)
				assert.Equal(t, ChromeHidden, v.State, "path=%s width=%d", path, width)
				assert.False(t, v.ShowChrome)
				assert.False(t, v.SidebarOpen)
				assert.False(t, v.Overlay)
				assert.Zero(t, v.ContentInset)

				// Explicit actions cannot bring the chrome back on a public path.
				assert.Equal(t, ChromeHidden, c.OpenSidebar().State)
				assert.Zero(t, c.View().ContentInset)
			}
		}
	}
}

func TestInitialStateOnShellPaths(t *testing.T) {
	for _, path := range shellPaths() {
		t.Run(path, func(t *testing.T) {
			v := newController().Mount(wide, path)
			assert.Equal(t, ChromeOpen, v.State)
			assert.True(t, v.ShowChrome)
			assert.Equal(t, DefaultSidebarWidth, v.ContentInset)

			v = newController().Mount(narrow, path)
			assert.Equal(t, ChromeClosed, v.State)
			assert.True(t, v.ShowChrome)
			assert.Zero(t, v.ContentInset)
		})
	}
}

func TestBreakpointIsInclusive(t *testing.T) {
	assert.Equal(t, ChromeOpen, newController().Mount(DefaultBreakpoint, "/team").State)
	assert.Equal(t, ChromeClosed, newController().Mount(DefaultBreakpoint-1, "/team").State)
}

func TestResizeCrossingBreakpoint(t *testing.T) {
	c := newController()
	require.Equal(t, ChromeClosed, c.Mount(narrow, "/history").State)

	assert.Equal(t, ChromeOpen, c.Resize(wide).State)
	assert.Equal(t, ChromeClosed, c.Resize(narrow).State)
	assert.Equal(t, ChromeOpen, c.Resize(DefaultBreakpoint).State)
}

func TestResizeWithoutCrossingKeepsSidebar(t *testing.T) {
	c := newController()
	c.Mount(wide, "/team")
	c.CloseSidebar()
	assert.Equal(t, ChromeClosed, c.Resize(wide+200).State, "wide to wider must not reopen")

	c.Mount(narrow, "/team")
	c.OpenSidebar()
	v := c.Resize(narrow - 100)
	assert.Equal(t, ChromeOpen, v.State, "narrow to narrower must not close")
	assert.True(t, v.Overlay)
	assert.Zero(t, v.ContentInset)
}

func TestNavigateWhileNarrowAlwaysCloses(t *testing.T) {
	for _, from := range shellPaths() {
		for _, to := range shellPaths() {
			c := newController()
			c.Mount(narrow, from)
			require.Equal(t, ChromeOpen, c.OpenSidebar().State)

			assert.Equal(t, ChromeClosed, c.Navigate(to).State, "%s -> %s", from, to)
			assert.Equal(t, to, c.View().Path)
		}
	}
}

func TestNavigateWhileWideReopens(t *testing.T) {
	c := newController()
	c.Mount(wide, "/history")
	c.CloseSidebar()
	assert.Equal(t, ChromeOpen, c.Navigate("/team").State)
}

func TestOpenAndCloseActions(t *testing.T) {
	c := newController()
	c.Mount(narrow, "/settings")

	v := c.OpenSidebar()
	assert.Equal(t, ChromeOpen, v.State)
	assert.True(t, v.Overlay, "narrow open sidebar overlays content")

	v = c.CloseSidebar()
	assert.Equal(t, ChromeClosed, v.State)
	assert.False(t, v.Overlay)

	// Idempotent.
	assert.Equal(t, ChromeClosed, c.CloseSidebar().State)
}

func TestNotFoundKeepsShellRules(t *testing.T) {
	v := newController().Mount(wide, "/nope")
	assert.Equal(t, routes.NotFound, v.Page)
	assert.Equal(t, ChromeOpen, v.State)
}

func TestScenarios(t *testing.T) {
	t.Run("wide viewport upload page opens sidebar", func(t *testing.T) {
		c := newController()
		c.Mount(wide, "/")
		assert.Equal(t, ChromeOpen, c.Navigate("/upload-document").State)
	})

	t.Run("narrow history then widen", func(t *testing.T) {
		c := newController()
		c.Mount(narrow, "/")
		assert.Equal(t, ChromeClosed, c.Navigate("/history").State)
		assert.Equal(t, ChromeOpen, c.Resize(wide).State)
	})

	t.Run("sign in from open upload page hides chrome", func(t *testing.T) {
		c := newController()
		c.Mount(wide, "/upload-document")
		require.Equal(t, ChromeOpen, c.State())
		assert.Equal(t, ChromeHidden, c.Navigate("/sign-in").State)
	})
}

func TestApplyEvents(t *testing.T) {
	c := newController()
	c.Mount(narrow, "/team")

	assert.Equal(t, ChromeOpen, c.Apply(SidebarOpened{}).State)
	assert.Equal(t, ChromeClosed, c.Apply(SidebarClosed{}).State)
	assert.Equal(t, ChromeOpen, c.Apply(Resized{Width: wide}).State)
	assert.Equal(t, ChromeHidden, c.Apply(Navigated{Path: "/sign-up"}).State)
	assert.Equal(t, ChromeHidden, c.Apply(nil).State)
}

func TestNegativeWidthClamps(t *testing.T) {
	v := newController().Mount(-50, "/team")
	assert.Equal(t, 0, v.Width)
	assert.Equal(t, ChromeClosed, v.State)
}

func TestConfigDefaults(t *testing.T) {
	c := New(Config{}, routes.Default())
	assert.Equal(t, DefaultBreakpoint, c.Breakpoint())

	c = New(Config{Breakpoint: 600, SidebarWidth: 200}, routes.Default())
	v := c.Mount(700, "/team")
	assert.Equal(t, ChromeOpen, v.State)
	assert.Equal(t, 200, v.ContentInset)
}

func TestRunEmitsOnlyChanges(t *testing.T) {
	c := newController()
	c.Mount(narrow, "/history")

	events := make(chan Event, 8)
	events <- Resized{Width: narrow - 10} // width only
	events <- Resized{Width: wide}        // open
	events <- Resized{Width: wide + 10}   // width only
	events <- SidebarClosed{}             // closed
	events <- Navigated{Path: "/sign-in"} // hidden
	close(events)

	var got []View
	err := c.Run(context.Background(), events, func(v View) error {
		got = append(got, v)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 5)
	assert.Equal(t, ChromeClosed, got[0].State)
	assert.Equal(t, ChromeOpen, got[1].State)
	assert.Equal(t, ChromeOpen, got[2].State)
	assert.Equal(t, ChromeClosed, got[3].State)
	assert.Equal(t, ChromeHidden, got[4].State)
}

func TestRunSkipsIdenticalViews(t *testing.T) {
	c := newController()
	c.Mount(wide, "/history")

	events := make(chan Event, 2)
	events <- SidebarOpened{}
	events <- Navigated{Path: "/history"}
	close(events)

	calls := 0
	require.NoError(t, c.Run(context.Background(), events, func(View) error {
		calls++
		return nil
	}))
	assert.Zero(t, calls)
}

func TestRunStopsOnContextAndEmitError(t *testing.T) {
	c := newController()
	c.Mount(narrow, "/history")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.NoError(t, c.Run(ctx, make(chan Event), func(View) error { return nil }))

	boom := errors.New("stream closed")
	events := make(chan Event, 1)
	events <- SidebarOpened{}
	err := c.Run(context.Background(), events, func(View) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestViewContext(t *testing.T) {
	_, ok := ViewFrom(context.Background())
	assert.False(t, ok)

	want := newController().Mount(wide, "/team")
	got, ok := ViewFrom(WithView(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "chrome-hidden", ChromeHidden.String())
	assert.Equal(t, "chrome-open", ChromeOpen.String())
	assert.Equal(t, "chrome-closed", ChromeClosed.String())
	assert.Equal(t, "chrome-unknown", State(7).String())
}
