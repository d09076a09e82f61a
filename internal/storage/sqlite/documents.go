package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/qikCode/marithon-project/pkg/logger"
)

// DocumentStorage handles storage of document records
type DocumentStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewDocumentStorage creates a new SQLite document storage
func NewDocumentStorage(db *sql.DB, log *logger.Logger) *DocumentStorage {
	storage := &DocumentStorage{
		db:     db,
		logger: log.Named("sqlite-documents"),
	}

	if err := storage.initDB(); err != nil {
		storage.logger.Error("Failed to initialize document storage", logger.Error(err))
	}

	return storage
}

// initDB initializes the database tables
func (s *DocumentStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL,
			stored_path TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			sha256 TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'uploaded',
			error TEXT,
			uploaded_at TIMESTAMP NOT NULL,
			processed_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_sha256 ON documents(sha256)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents(uploaded_at)`,
	}

	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create document index: %w", err)
		}
	}

	return nil
}

// StoreDocument stores a document record and returns its ID
func (s *DocumentStorage) StoreDocument(record *DocumentRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO documents
		(filename, stored_path, size_bytes, sha256, status, error, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Filename,
		record.StoredPath,
		record.SizeBytes,
		record.SHA256,
		record.Status,
		record.Error,
		record.UploadedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetDocument returns a document by ID, or nil when it does not exist
func (s *DocumentStorage) GetDocument(id int64) (*DocumentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, filename, stored_path, size_bytes, sha256, status, error, uploaded_at, processed_at
		FROM documents
		WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	defer rows.Close()

	records, err := s.scanDocumentRows(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// GetDocumentBySHA256 returns the most recent document with the given content
// hash, or nil when none exists. Used for duplicate-upload detection.
func (s *DocumentStorage) GetDocumentBySHA256(hash string) (*DocumentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, filename, stored_path, size_bytes, sha256, status, error, uploaded_at, processed_at
		FROM documents
		WHERE sha256 = ?
		ORDER BY id DESC
		LIMIT 1`,
		hash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query document by hash: %w", err)
	}
	defer rows.Close()

	records, err := s.scanDocumentRows(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// ListDocuments returns documents ordered by upload time, newest first
func (s *DocumentStorage) ListDocuments(limit, offset int) ([]*DocumentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, filename, stored_path, size_bytes, sha256, status, error, uploaded_at, processed_at
		FROM documents
		ORDER BY uploaded_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	return s.scanDocumentRows(rows)
}

// GetUnprocessed returns documents still awaiting extraction, oldest first
func (s *DocumentStorage) GetUnprocessed(limit int) ([]*DocumentRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, filename, stored_path, size_bytes, sha256, status, error, uploaded_at, processed_at
		FROM documents
		WHERE status = ?
		ORDER BY uploaded_at ASC, id ASC
		LIMIT ?`,
		StatusUploaded, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed documents: %w", err)
	}
	defer rows.Close()

	return s.scanDocumentRows(rows)
}

// UpdateStatus updates a document's processing status and error message
func (s *DocumentStorage) UpdateStatus(id int64, status, errorMsg string) error {
	_, err := s.db.Exec(
		`UPDATE documents
		SET status = ?, error = ?
		WHERE id = ?`,
		status,
		errorMsg,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}

	return nil
}

// SetProcessed marks a document as processed at the given time
func (s *DocumentStorage) SetProcessed(id int64, processedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE documents
		SET status = ?, error = '', processed_at = ?
		WHERE id = ?`,
		StatusProcessed,
		processedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark document processed: %w", err)
	}

	return nil
}

// DeleteDocument removes a document record; its events go with it via the
// event storage, which the caller invokes first.
func (s *DocumentStorage) DeleteDocument(id int64) error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// scanDocumentRows scans database rows into DocumentRecord structs
func (s *DocumentStorage) scanDocumentRows(rows *sql.Rows) ([]*DocumentRecord, error) {
	var records []*DocumentRecord
	for rows.Next() {
		var record DocumentRecord
		var uploadedAt string
		var processedAt, errorMsg sql.NullString

		if err := rows.Scan(
			&record.ID,
			&record.Filename,
			&record.StoredPath,
			&record.SizeBytes,
			&record.SHA256,
			&record.Status,
			&errorMsg,
			&uploadedAt,
			&processedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		var err error
		record.UploadedAt, err = time.Parse(time.RFC3339, uploadedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse uploaded_at: %w", err)
		}

		if processedAt.Valid && processedAt.String != "" {
			t, err := time.Parse(time.RFC3339, processedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse processed_at: %w", err)
			}
			record.ProcessedAt = &t
		}
		if errorMsg.Valid {
			record.Error = errorMsg.String
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}
