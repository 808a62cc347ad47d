package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const uploadColumns = `id, session_id, account, file_name, file_size, signer_emails, status, message, envelope_id, created_at`

// RecordUpload stores an upload attempt. ID and CreatedAt are filled in when
// empty.
func (s *SQLiteStore) RecordUpload(ctx context.Context, u *Upload) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	if u.ID == "" {
		u.ID = generateID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	emails := u.SignerEmails
	if emails == nil {
		emails = []string{}
	}
	encoded, err := json.Marshal(emails)
	if err != nil {
		return fmt.Errorf("failed to encode signer emails: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO uploads (`+uploadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.SessionID, u.Account, u.FileName, u.FileSize, string(encoded),
		string(u.Status), u.Message, u.EnvelopeID, u.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}

	s.logger.Debug("recorded upload",
		slog.String("id", u.ID),
		slog.String("status", string(u.Status)),
		slog.String("file", u.FileName))
	return nil
}

// ListUploads returns the newest uploads of a session, at most limit rows.
// An empty sessionID lists every session; a non-positive limit means no
// limit.
func (s *SQLiteStore) ListUploads(ctx context.Context, sessionID string, limit int) ([]*Upload, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	var rows *sql.Rows
	if sessionID == "" {
		rows, err = db.QueryContext(ctx,
			`SELECT `+uploadColumns+` FROM uploads ORDER BY created_at DESC, id LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT `+uploadColumns+` FROM uploads WHERE session_id = ? ORDER BY created_at DESC, id LIMIT ?`,
			sessionID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var uploads []*Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return uploads, nil
}

// LatestEnvelope returns the newest successful upload of a session that
// produced an envelope id.
func (s *SQLiteStore) LatestEnvelope(ctx context.Context, sessionID string) (*Upload, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx,
		`SELECT `+uploadColumns+` FROM uploads
		 WHERE session_id = ? AND status = ? AND envelope_id != ''
		 ORDER BY created_at DESC LIMIT 1`,
		sessionID, string(UploadSent))
	u, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUpload(row scanner) (*Upload, error) {
	var (
		u       Upload
		emails  string
		status  string
		created int64
	)
	if err := row.Scan(&u.ID, &u.SessionID, &u.Account, &u.FileName, &u.FileSize,
		&emails, &status, &u.Message, &u.EnvelopeID, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan upload: %w", err)
	}

	if err := json.Unmarshal([]byte(emails), &u.SignerEmails); err != nil {
		return nil, fmt.Errorf("failed to decode signer emails of upload %s: %w", u.ID, err)
	}
	u.Status = UploadStatus(status)
	u.CreatedAt = time.Unix(0, created).UTC()
	return &u, nil
}
