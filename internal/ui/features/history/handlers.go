// Package history lists the upload attempts of the current session.
package history

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/state"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// PageSize is the number of uploads shown.
const PageSize = 50

// Handlers provides HTTP handlers for the history feature.
type Handlers struct {
	store    state.Store
	auth     *auth.Store
	renderer *common.Renderer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store state.Store, authStore *auth.Store, renderer *common.Renderer) *Handlers {
	return &Handlers{
		store:    store,
		auth:     authStore,
		renderer: renderer,
	}
}

// HistoryPage renders the session's uploads, newest first.
func (h *Handlers) HistoryPage(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.auth.SessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	uploads, err := h.store.ListUploads(r.Context(), sessionID, PageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "History", historyView(uploads))
}

func historyView(uploads []*state.Upload) templ.Component {
	return components.Component(func(_ context.Context, w *components.Writer) {
		w.Open("section", "id", "history", "class", "panel")
		w.Elem("h1", "History")

		if len(uploads) == 0 {
			w.Elem("p", "No uploads yet.", "class", "empty-state")
			w.Close("section")
			return
		}

		w.Open("table", "class", "table")
		w.Open("thead")
		w.Open("tr")
		for _, col := range []string{"Document", "Size", "Signers", "Status", "When"} {
			w.Elem("th", col)
		}
		w.Close("tr")
		w.Close("thead")

		w.Open("tbody")
		for _, u := range uploads {
			w.Open("tr", "class", "upload-"+string(u.Status))
			w.Elem("td", u.FileName)
			w.Elem("td", common.FormatFileSize(u.FileSize))
			w.Elem("td", strings.Join(u.SignerEmails, ", "))
			w.Elem("td", statusLabel(u), "title", u.Message)
			w.Elem("td", common.FormatWhen(u.CreatedAt))
			w.Close("tr")
		}
		w.Close("tbody")
		w.Close("table")
		w.Close("section")
	})
}

func statusLabel(u *state.Upload) string {
	switch u.Status {
	case state.UploadSent:
		return "Sent"
	case state.UploadFailed:
		return "Failed"
	default:
		return string(u.Status)
	}
}
