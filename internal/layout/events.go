package layout

// Event is a discrete input to a Controller. The set is closed.
type Event interface {
	apply(c *Controller) View
}

// Resized reports a new viewport width.
type Resized struct{ Width int }

// Navigated reports a route change.
type Navigated struct{ Path string }

// SidebarOpened is the explicit "open sidebar" action.
type SidebarOpened struct{}

// SidebarClosed is the explicit "close sidebar" action, including overlay
// clicks.
type SidebarClosed struct{}

func (e Resized) apply(c *Controller) View {
	return c.Resize(e.Width)
}

func (e Navigated) apply(c *Controller) View {
	return c.Navigate(e.Path)
}

func (SidebarOpened) apply(c *Controller) View {
	return c.OpenSidebar()
}

func (SidebarClosed) apply(c *Controller) View {
	return c.CloseSidebar()
}

// Apply feeds one event to the controller and returns the resulting view.
func (c *Controller) Apply(ev Event) View {
	if ev == nil {
		return c.View()
	}
	return ev.apply(c)
}
