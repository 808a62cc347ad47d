package documents

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/state"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// Handlers provides HTTP handlers for the upload feature.
type Handlers struct {
	service  *Service
	auth     *auth.Store
	renderer *common.Renderer
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service, authStore *auth.Store, renderer *common.Renderer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		service:  service,
		auth:     authStore,
		renderer: renderer,
		logger:   logger,
	}
}

// UploadPage renders the upload form with the session's draft.
func (h *Handlers) UploadPage(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.auth.SessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	draft, err := h.service.Draft(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "Upload Document", UploadPage(draft, components.Notice{}))
}

// SelectFile stores the file chosen in the form, replacing any previous one.
func (h *Handlers) SelectFile(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.auth.SessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	name, contentType, content, readErr := readFile(r)

	sse := datastar.NewSSE(w, r)
	if readErr != nil {
		h.logger.Debug("file selection rejected", "error", readErr)
		_ = sse.PatchElementTempl(components.NoticeBox(NoticeID, errorNotice(MsgNoFile)))
		return
	}

	draft, err := h.service.SelectFile(r.Context(), sessionID, name, contentType, content)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	_ = sse.PatchElementTempl(components.NoticeBox(NoticeID, components.Notice{}))
	if err := sse.PatchElementTempl(FileList(draft)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// RemoveFile drops the selected file.
func (h *Handlers) RemoveFile(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.auth.SessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	draft, err := h.service.RemoveFile(r.Context(), sessionID)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(FileList(draft)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// SetEmails keeps the recipient text across reloads.
func (h *Handlers) SetEmails(w http.ResponseWriter, r *http.Request) {
	var signals FormSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sessionID, err := h.auth.SessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := h.service.SetEmails(r.Context(), sessionID, signals.Emails); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Submit validates the form and uploads the document.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals FormSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(components.NoticeBox(NoticeID, errorNotice("Failed to read signals: "+err.Error())))
		return
	}

	sessionID, err := h.auth.SessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)

	res, err := h.service.Submit(r.Context(), sessionID, signals.Emails, func() (auth.Credential, error) {
		return h.auth.Load(r)
	})
	if err != nil {
		h.logger.Error("upload submit failed", "session", sessionID, "error", err)
		_ = sse.PatchElementTempl(components.NoticeBox(NoticeID, errorNotice(MsgUploadError)))
		return
	}

	if err := sse.PatchElementTempl(components.NoticeBox(NoticeID, res.Notice)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if res.Draft != nil {
		_ = sse.PatchElementTempl(FileList(res.Draft))
	}
	if res.Upload != nil && res.Upload.Status == state.UploadSent {
		_ = sse.MarshalAndPatchSignals(FormSignals{Emails: ""})
	}
}

// readFile reads the "file" field of a multipart form.
func readFile(r *http.Request) (name, contentType string, content []byte, err error) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		return "", "", nil, err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", nil, err
	}
	defer func() { _ = file.Close() }()

	content, err = io.ReadAll(file)
	if err != nil {
		return "", "", nil, err
	}
	if header.Filename == "" {
		return "", "", nil, errors.New("file has no name")
	}
	return header.Filename, header.Header.Get("Content-Type"), content, nil
}
