// Package shell serves the live layout of the authenticated shell: one
// layout controller per open browser tab, driven by resize, navigation and
// sidebar events posted from the page.
package shell

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/signdesk/internal/layout"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
	"github.com/leapstack-labs/signdesk/internal/ui/notifier"
)

// PublishTimeout bounds how long an action waits for its tab's stream to
// take an event.
const PublishTimeout = 2 * time.Second

// Signals is the part of the page signals the shell endpoints read.
type Signals struct {
	Path          string `json:"path"`
	ViewportWidth int    `json:"viewportWidth"`
}

// Handlers provides HTTP handlers for the shell feature.
type Handlers struct {
	renderer *common.Renderer
	hub      *notifier.Hub[layout.Event]
	logger   *slog.Logger

	publishTimeout time.Duration
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(renderer *common.Renderer, hub *notifier.Hub[layout.Event], logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		renderer: renderer,
		hub:      hub,
		logger:   logger,

		publishTimeout: PublishTimeout,
	}
}

// Middleware mounts the layout for page requests and stores the view and a
// fresh tab id in the request context.
func (h *Handlers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		view, tab := h.renderer.Mount(r)
		ctx := layout.WithView(r.Context(), view)
		ctx = common.WithTabID(ctx, tab)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Stream is the long-lived SSE endpoint of one tab. It owns the tab's layout
// controller for as long as the connection stays open: the subscription is
// released when the client goes away.
func (h *Handlers) Stream(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")

	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Debug("shell stream without signals", "tab", tab, "error", err)
	}
	width := signals.ViewportWidth
	if width <= 0 {
		width = common.ViewportWidth(r, h.renderer.DefaultWidth)
	}
	path := signals.Path
	if path == "" {
		path = "/"
	}

	ctrl := layout.New(h.renderer.Layout, h.renderer.Table)
	view := ctrl.Mount(width, path)

	events := h.hub.Subscribe(tab)
	defer h.hub.Unsubscribe(tab, events)

	sse := datastar.NewSSE(w, r)
	emit := func(v layout.View) error {
		if err := sse.PatchElementTempl(components.Chrome(h.renderer.ChromeData(r, tab, v))); err != nil {
			return err
		}
		return sse.MarshalAndPatchSignals(components.ChromeSignalsFor(v))
	}

	h.logger.Debug("shell mounted", "tab", tab, "path", path, "width", width, "state", view.State)
	if err := emit(view); err != nil {
		return
	}
	if err := ctrl.Run(r.Context(), events, emit); err != nil {
		h.logger.Debug("shell stream closed", "tab", tab, "error", err)
	}
}

// Resize reports a new viewport width.
func (h *Handlers) Resize(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if signals.ViewportWidth <= 0 {
		http.Error(w, "viewportWidth must be positive", http.StatusBadRequest)
		return
	}

	common.SetViewportCookie(w, signals.ViewportWidth)
	h.publish(w, r, layout.Resized{Width: signals.ViewportWidth})
}

// Navigate reports a route change.
func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if signals.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	h.publish(w, r, layout.Navigated{Path: signals.Path})
}

// Open is the menu button.
func (h *Handlers) Open(w http.ResponseWriter, r *http.Request) {
	h.publish(w, r, layout.SidebarOpened{})
}

// Close is the close button and the overlay.
func (h *Handlers) Close(w http.ResponseWriter, r *http.Request) {
	h.publish(w, r, layout.SidebarClosed{})
}

// publish hands ev to the tab's stream, waiting while the stream catches up.
// Events for tabs without a stream are dropped. An event the stream could not
// take in time answers 503 so the page can retry.
func (h *Handlers) publish(w http.ResponseWriter, r *http.Request, ev layout.Event) {
	tab := chi.URLParam(r, "tab")

	ctx, cancel := context.WithTimeout(r.Context(), h.publishTimeout)
	defer cancel()

	n, err := h.hub.Send(ctx, tab, ev)
	if err != nil {
		h.logger.Warn("shell event not delivered", "tab", tab, "event", ev, "error", err)
		http.Error(w, "layout event not delivered", http.StatusServiceUnavailable)
		return
	}
	if n == 0 {
		h.logger.Debug("dropping shell event for unknown tab", "tab", tab, "event", ev)
	}
	w.WriteHeader(http.StatusNoContent)
}
