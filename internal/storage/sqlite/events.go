package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/qikCode/marithon-project/internal/extraction"
	"github.com/qikCode/marithon-project/pkg/logger"
)

// EventStorage handles storage of extracted event records
type EventStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewEventStorage creates a new SQLite event storage
func NewEventStorage(db *sql.DB, log *logger.Logger) *EventStorage {
	storage := &EventStorage{
		db:     db,
		logger: log.Named("sqlite-events"),
	}

	if err := storage.initDB(); err != nil {
		storage.logger.Error("Failed to initialize event storage", logger.Error(err))
	}

	return storage
}

// initDB initializes the database tables
func (s *EventStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			event TEXT NOT NULL,
			start_time TEXT,
			end_time TEXT,
			duration TEXT,
			location TEXT,
			remarks TEXT,
			context TEXT,
			confidence REAL NOT NULL,
			extraction_method TEXT NOT NULL,
			raw_text TEXT,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (document_id) REFERENCES documents(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_events_document_id ON events(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type)`,
		`CREATE INDEX IF NOT EXISTS idx_events_start_time ON events(start_time)`,
	}

	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create event index: %w", err)
		}
	}

	return nil
}

// StoreEvents replaces a document's events with the given set in one
// transaction, preserving slice order via ascending IDs.
func (s *EventStorage) StoreEvents(documentID int64, events []extraction.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("failed to clear existing events: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO events
		(document_id, event_type, event, start_time, end_time, duration, location, remarks, context, confidence, extraction_method, raw_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, ev := range events {
		if _, err := stmt.Exec(
			documentID,
			string(ev.Type),
			ev.Name,
			ev.StartTime,
			ev.EndTime,
			ev.Duration,
			ev.Location,
			ev.Remarks,
			ev.Context,
			ev.Confidence,
			string(ev.Method),
			ev.RawText,
			now,
		); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}

	return nil
}

// GetEventsByDocument returns a document's events in stored order, optionally
// filtered by event type (empty string means all types).
func (s *EventStorage) GetEventsByDocument(documentID int64, eventType string) ([]*EventRecord, error) {
	query := `SELECT id, document_id, event_type, event, start_time, end_time, duration, location, remarks, context, confidence, extraction_method, raw_text, created_at
		FROM events
		WHERE document_id = ?`
	args := []any{documentID}
	if eventType != "" {
		query += ` AND event_type = ?`
		args = append(args, eventType)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return s.scanEventRows(rows)
}

// GetRecentEvents returns the newest events across all documents
func (s *EventStorage) GetRecentEvents(limit int) ([]*EventRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, document_id, event_type, event, start_time, end_time, duration, location, remarks, context, confidence, extraction_method, raw_text, created_at
		FROM events
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	return s.scanEventRows(rows)
}

// GetEventCounts returns per-type event counts for a document
func (s *EventStorage) GetEventCounts(documentID int64) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT event_type, COUNT(*)
		FROM events
		WHERE document_id = ?
		GROUP BY event_type`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query event counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		counts[eventType] = count
	}

	return counts, rows.Err()
}

// DeleteEventsByDocument removes all events belonging to a document
func (s *EventStorage) DeleteEventsByDocument(documentID int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE document_id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}

// scanEventRows scans database rows into EventRecord structs
func (s *EventStorage) scanEventRows(rows *sql.Rows) ([]*EventRecord, error) {
	var records []*EventRecord
	for rows.Next() {
		var record EventRecord
		var eventType, method, createdAt string
		var startTime, endTime, duration, location, remarks, context, rawText sql.NullString

		if err := rows.Scan(
			&record.ID,
			&record.DocumentID,
			&eventType,
			&record.Name,
			&startTime,
			&endTime,
			&duration,
			&location,
			&remarks,
			&context,
			&record.Confidence,
			&method,
			&rawText,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		record.Type = extraction.EventType(eventType)
		record.Method = extraction.Method(method)
		record.StartTime = startTime.String
		record.EndTime = endTime.String
		record.Duration = duration.String
		record.Location = location.String
		record.Remarks = remarks.String
		record.Context = context.String
		record.RawText = rawText.String

		var err error
		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}
