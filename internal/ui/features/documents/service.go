package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"

	"github.com/leapstack-labs/signdesk/internal/api"
	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/state"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// User-facing messages.
const (
	MsgNoEmails       = "Please provide at least one email."
	MsgNoFile         = "Please select files to upload."
	MsgInvalidEmail   = "Invalid email address: "
	MsgSignIn         = "Please sign in to upload documents."
	MsgUploaded       = "Files uploaded successfully!"
	MsgUploadFailed   = "Upload failed: "
	MsgUploadError    = "An error occurred during the upload."
	MsgUploadInFlight = "An upload is already in progress."
)

// ValidationError is a form problem caught before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Uploader sends documents to the API. *api.Client satisfies it.
type Uploader interface {
	UploadDocument(ctx context.Context, token string, u api.Upload) (*api.UploadResult, error)
}

// CredentialFunc reads the signed-in credential.
type CredentialFunc func() (auth.Credential, error)

// Result is the outcome of a form operation.
type Result struct {
	Notice components.Notice
	Draft  *state.Draft
	// Upload is the history record written by a submit that reached the
	// API, nil otherwise.
	Upload *state.Upload
}

// Service owns the upload form state of every browser session.
type Service struct {
	store    state.Store
	uploader Uploader
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}

	drafts draftLocks
}

// NewService creates a Service.
func NewService(store state.Store, uploader Uploader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:    store,
		uploader: uploader,
		logger:   logger,
		inflight: make(map[string]struct{}),
		drafts:   draftLocks{locks: make(map[string]*draftLock)},
	}
}

// Draft returns the session's form state.
func (s *Service) Draft(ctx context.Context, sessionID string) (*state.Draft, error) {
	return s.store.GetDraft(ctx, sessionID)
}

// SelectFile replaces the selected file.
func (s *Service) SelectFile(ctx context.Context, sessionID, name, contentType string, content []byte) (*state.Draft, error) {
	if name == "" {
		return nil, &ValidationError{Message: MsgNoFile}
	}
	return s.updateDraft(ctx, sessionID, func(d *state.Draft) {
		d.FileName = name
		d.ContentType = contentType
		d.Content = content
		d.FileSize = int64(len(content))
	})
}

// RemoveFile drops the selected file and keeps the recipients.
func (s *Service) RemoveFile(ctx context.Context, sessionID string) (*state.Draft, error) {
	return s.updateDraft(ctx, sessionID, func(d *state.Draft) {
		d.RemoveFile()
	})
}

// SetEmails stores the recipient text as typed.
func (s *Service) SetEmails(ctx context.Context, sessionID, emails string) (*state.Draft, error) {
	return s.updateDraft(ctx, sessionID, func(d *state.Draft) {
		d.Emails = emails
	})
}

// updateDraft applies fn to the stored draft and saves it while holding the
// session's draft lock.
func (s *Service) updateDraft(ctx context.Context, sessionID string, fn func(d *state.Draft)) (*state.Draft, error) {
	unlock := s.drafts.lock(sessionID)
	defer unlock()

	d, err := s.store.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(d)
	if err := s.store.SaveDraft(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseEmails splits recipient text on commas, trimming entries and dropping
// blanks.
func ParseEmails(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks a draft in submit order: recipients present, a file
// selected, every recipient a plain address.
func Validate(d *state.Draft) ([]string, error) {
	if strings.TrimSpace(d.Emails) == "" {
		return nil, &ValidationError{Message: MsgNoEmails}
	}
	if !d.HasFile() {
		return nil, &ValidationError{Message: MsgNoFile}
	}

	emails := ParseEmails(d.Emails)
	if len(emails) == 0 {
		return nil, &ValidationError{Message: MsgNoEmails}
	}
	for _, e := range emails {
		addr, err := mail.ParseAddress(e)
		if err != nil || addr.Address != e {
			return nil, &ValidationError{Message: MsgInvalidEmail + e}
		}
	}
	return emails, nil
}

// Submit validates the session's draft with emails applied and, when valid
// and signed in, uploads it. Form problems, missing credentials and API
// failures are reported in the result's notice; the error is reserved for
// local storage failures.
func (s *Service) Submit(ctx context.Context, sessionID, emails string, credential CredentialFunc) (Result, error) {
	if !s.acquire(sessionID) {
		return Result{Notice: errorNotice(MsgUploadInFlight)}, nil
	}
	defer s.release(sessionID)

	d, err := s.SetEmails(ctx, sessionID, emails)
	if err != nil {
		return Result{}, err
	}

	signers, err := Validate(d)
	if err != nil {
		return Result{Notice: errorNotice(err.Error()), Draft: d}, nil
	}

	cred, err := credential()
	if err != nil {
		s.logger.Debug("upload without credential", "session", sessionID, "error", err)
		return Result{Notice: errorNotice(MsgSignIn), Draft: d}, nil
	}

	res, uploadErr := s.uploader.UploadDocument(ctx, cred.AccessToken, api.Upload{
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		Content:      bytes.NewReader(d.Content),
		SignerEmails: signers,
	})

	record := &state.Upload{
		SessionID:    sessionID,
		Account:      cred.Email,
		FileName:     d.FileName,
		FileSize:     d.FileSize,
		SignerEmails: signers,
	}

	if uploadErr != nil {
		s.logger.Warn("upload failed", "session", sessionID, "file", d.FileName, "error", uploadErr)
		notice := errorNotice(MsgUploadError)
		if msg := api.MessageOf(uploadErr); msg != "" {
			notice = errorNotice(MsgUploadFailed + msg)
		}
		record.Status = state.UploadFailed
		record.Message = notice.Message
		if err := s.store.RecordUpload(ctx, record); err != nil {
			return Result{}, fmt.Errorf("failed to record upload: %w", err)
		}
		return Result{Notice: notice, Draft: d, Upload: record}, nil
	}

	record.Status = state.UploadSent
	record.Message = MsgUploaded
	record.EnvelopeID = res.EnvelopeID()
	if err := s.store.RecordUpload(ctx, record); err != nil {
		return Result{}, fmt.Errorf("failed to record upload: %w", err)
	}
	unlock := s.drafts.lock(sessionID)
	err = s.store.ClearDraft(ctx, sessionID)
	unlock()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Notice: components.Notice{Kind: components.NoticeSuccess, Message: MsgUploaded},
		Draft:  &state.Draft{SessionID: sessionID},
		Upload: record,
	}, nil
}

// InFlight reports whether sessionID has an upload running.
func (s *Service) InFlight(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[sessionID]
	return ok
}

func (s *Service) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	delete(s.inflight, sessionID)
	s.mu.Unlock()
}

func errorNotice(msg string) components.Notice {
	return components.Notice{Kind: components.NoticeError, Message: msg}
}

// IsValidation reports whether err is a form problem.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// draftLocks holds one mutex per session with a pending draft update.
type draftLocks struct {
	mu    sync.Mutex
	locks map[string]*draftLock
}

type draftLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until sessionID's draft is free and returns the unlock func.
func (l *draftLocks) lock(sessionID string) func() {
	l.mu.Lock()
	dl, ok := l.locks[sessionID]
	if !ok {
		dl = &draftLock{}
		l.locks[sessionID] = dl
	}
	dl.refs++
	l.mu.Unlock()

	dl.mu.Lock()
	return func() {
		dl.mu.Unlock()
		l.mu.Lock()
		dl.refs--
		if dl.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
