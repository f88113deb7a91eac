package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maplebrook/homeledger/internal/ledger"
)

// AttachmentMaxBytes caps a single receipt blob.
const AttachmentMaxBytes = 10 * 1024 * 1024

var allowedAttachmentMIME = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// Attachment is the single optional blob kept per entry.
type Attachment struct {
	EntryUUID string
	FileName  *string
	MIMEType  string
	Blob      []byte
}

func (s *Store) GetAttachment(ctx context.Context, entryUUID string) (*Attachment, error) {
	var a Attachment
	err := s.reader.QueryRowContext(ctx,
		`SELECT entry_uuid, file_name, mime_type, file_blob FROM gl_entry_attachment WHERE entry_uuid = ?`,
		entryUUID,
	).Scan(&a.EntryUUID, &a.FileName, &a.MIMEType, &a.Blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAttachmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return &a, nil
}

// UpsertAttachment stores or replaces the entry's blob. The entry must
// already exist; the foreign key rejects orphan attachments.
func (s *Store) UpsertAttachment(ctx context.Context, entryUUID string, fileName *string, mimeType string, blob []byte) error {
	if !allowedAttachmentMIME[mimeType] {
		return fmt.Errorf("%w: %s", ledger.ErrInvalidMIMEType, mimeType)
	}
	if len(blob) > AttachmentMaxBytes {
		return fmt.Errorf("attachment exceeds %d bytes", AttachmentMaxBytes)
	}

	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO gl_entry_attachment (entry_uuid, file_name, mime_type, file_blob)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(entry_uuid) DO UPDATE SET
		   file_name = excluded.file_name,
		   mime_type = excluded.mime_type,
		   file_blob = excluded.file_blob`,
		entryUUID, fileName, mimeType, blob,
	)
	if err != nil {
		return fmt.Errorf("upsert attachment: %w", err)
	}
	return nil
}

func (s *Store) DeleteAttachment(ctx context.Context, entryUUID string) error {
	_, err := s.writer.ExecContext(ctx,
		`DELETE FROM gl_entry_attachment WHERE entry_uuid = ?`, entryUUID)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}
