package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// GetDraft returns the draft of a session. A session without a saved draft
// gets an empty one.
func (s *SQLiteStore) GetDraft(ctx context.Context, sessionID string) (*Draft, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	d := &Draft{SessionID: sessionID}
	var updated int64
	err = db.QueryRowContext(ctx,
		`SELECT emails, file_name, content_type, file_size, content, updated_at FROM drafts WHERE session_id = ?`,
		sessionID,
	).Scan(&d.Emails, &d.FileName, &d.ContentType, &d.FileSize, &d.Content, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	d.UpdatedAt = time.Unix(0, updated).UTC()
	return d, nil
}

// SaveDraft inserts or replaces the draft of d.SessionID.
func (s *SQLiteStore) SaveDraft(ctx context.Context, d *Draft) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if d.SessionID == "" {
		return fmt.Errorf("draft has no session id")
	}

	d.UpdatedAt = time.Now().UTC()
	_, err = db.ExecContext(ctx,
		`INSERT INTO drafts (session_id, emails, file_name, content_type, file_size, content, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   emails = excluded.emails,
		   file_name = excluded.file_name,
		   content_type = excluded.content_type,
		   file_size = excluded.file_size,
		   content = excluded.content,
		   updated_at = excluded.updated_at`,
		d.SessionID, d.Emails, d.FileName, d.ContentType, d.FileSize, d.Content, d.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	s.logger.Debug("saved draft",
		slog.String("session", d.SessionID),
		slog.String("file", d.FileName),
		slog.Int64("size", d.FileSize))
	return nil
}

// ClearDraft deletes the draft of a session.
func (s *SQLiteStore) ClearDraft(ctx context.Context, sessionID string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM drafts WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
