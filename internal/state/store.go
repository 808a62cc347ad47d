// Package state persists the application's local state in SQLite: the
// in-progress upload form of each browser session and the history of
// submitted uploads.
package state

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence surface used by the UI features.
type Store interface {
	GetDraft(ctx context.Context, sessionID string) (*Draft, error)
	SaveDraft(ctx context.Context, d *Draft) error
	ClearDraft(ctx context.Context, sessionID string) error

	RecordUpload(ctx context.Context, u *Upload) error
	ListUploads(ctx context.Context, sessionID string, limit int) ([]*Upload, error)
	LatestEnvelope(ctx context.Context, sessionID string) (*Upload, error)
}

// Draft is the upload form state of one browser session.
type Draft struct {
	SessionID   string
	Emails      string
	FileName    string
	ContentType string
	FileSize    int64
	Content     []byte
	UpdatedAt   time.Time
}

// HasFile reports whether a file is selected.
func (d *Draft) HasFile() bool {
	return d != nil && d.FileName != ""
}

// RemoveFile drops the selected file, keeping the recipient text.
func (d *Draft) RemoveFile() {
	d.FileName = ""
	d.ContentType = ""
	d.FileSize = 0
	d.Content = nil
}

// UploadStatus is the outcome of a submitted upload.
type UploadStatus string

// Upload statuses.
const (
	UploadSent   UploadStatus = "sent"
	UploadFailed UploadStatus = "failed"
)

// Upload is one submitted upload attempt.
type Upload struct {
	ID           string
	SessionID    string
	Account      string
	FileName     string
	FileSize     int64
	SignerEmails []string
	Status       UploadStatus
	Message      string
	EnvelopeID   string
	CreatedAt    time.Time
}
