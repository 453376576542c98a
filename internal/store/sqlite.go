package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vigilant-ai/vigilant/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite. WAL mode plus
// single-statement upserts mean a concurrent reader in another process
// (dispatch run, webhook server, simulator) sees either the old or the new
// record, never a partial write.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for cross-process concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS remediations (
		address TEXT PRIMARY KEY,
		staff_name TEXT NOT NULL,
		client_label TEXT NOT NULL,
		shift_id TEXT NOT NULL,
		audit_score TEXT NOT NULL,
		risk_level TEXT NOT NULL,
		message_body TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		fix_text TEXT,
		fix_at INTEGER
	);

	CREATE TABLE IF NOT EXISTS messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		address TEXT NOT NULL,
		direction TEXT NOT NULL,
		body TEXT NOT NULL,
		staff_name TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_address ON messages(address);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetRemediation retrieves the remediation record for a contact address.
func (s *SQLiteStore) GetRemediation(ctx context.Context, address string) (*domain.RemediationRecord, error) {
	query := `
		SELECT address, staff_name, client_label, shift_id, audit_score,
		       risk_level, message_body, status, created_at, fix_text, fix_at
		FROM remediations WHERE address = ?`

	row := s.db.QueryRowContext(ctx, query, address)

	rec, err := scanRemediation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan remediation row: %w", err)
	}
	return rec, nil
}

// PutRemediation persists a record, fully overwriting any prior record for
// the same address. Every column is replaced so a superseded record leaves
// nothing behind.
func (s *SQLiteStore) PutRemediation(ctx context.Context, rec *domain.RemediationRecord) error {
	query := `
	INSERT INTO remediations (
		address, staff_name, client_label, shift_id, audit_score,
		risk_level, message_body, status, created_at, fix_text, fix_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(address) DO UPDATE SET
		staff_name = excluded.staff_name,
		client_label = excluded.client_label,
		shift_id = excluded.shift_id,
		audit_score = excluded.audit_score,
		risk_level = excluded.risk_level,
		message_body = excluded.message_body,
		status = excluded.status,
		created_at = excluded.created_at,
		fix_text = excluded.fix_text,
		fix_at = excluded.fix_at`

	var fixText interface{}
	if rec.FixText != "" {
		fixText = rec.FixText
	}
	var fixAt interface{}
	if rec.FixAt != nil {
		fixAt = rec.FixAt.Unix()
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.Address, rec.StaffName, rec.ClientLabel, rec.ShiftID,
		string(rec.AuditScore), string(rec.RiskLevel), rec.MessageBody,
		string(rec.Status), rec.CreatedAt.Unix(), fixText, fixAt,
	)
	if err != nil {
		return fmt.Errorf("put remediation: %w", err)
	}
	return nil
}

// AllRemediations returns every record keyed by contact address.
func (s *SQLiteStore) AllRemediations(ctx context.Context) (map[string]*domain.RemediationRecord, error) {
	query := `
		SELECT address, staff_name, client_label, shift_id, audit_score,
		       risk_level, message_body, status, created_at, fix_text, fix_at
		FROM remediations`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query remediations: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close remediation rows", "error", closeErr)
		}
	}()

	records := make(map[string]*domain.RemediationRecord)
	for rows.Next() {
		rec, err := scanRemediation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan remediation row: %w", err)
		}
		records[rec.Address] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate remediations: %w", err)
	}

	return records, nil
}

// AppendMessage appends one entry to the message log.
func (s *SQLiteStore) AppendMessage(ctx context.Context, msg *domain.ConversationMessage) error {
	query := `
	INSERT INTO messages (id, address, direction, body, staff_name, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.Address, string(msg.Direction), msg.Body,
		msg.StaffName, msg.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// ListMessages returns the full message log in append order.
func (s *SQLiteStore) ListMessages(ctx context.Context) ([]domain.ConversationMessage, error) {
	query := `
		SELECT id, address, direction, body, staff_name, created_at
		FROM messages ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close message rows", "error", closeErr)
		}
	}()

	var messages []domain.ConversationMessage
	for rows.Next() {
		var msg domain.ConversationMessage
		var direction string
		var createdAt int64

		if err := rows.Scan(&msg.ID, &msg.Address, &direction, &msg.Body, &msg.StaffName, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}

		msg.Direction = domain.Direction(direction)
		msg.Timestamp = time.Unix(createdAt, 0)
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func scanRemediation(scan func(dest ...interface{}) error) (*domain.RemediationRecord, error) {
	var rec domain.RemediationRecord
	var auditScore, riskLevel, status string
	var createdAt int64
	var fixText sql.NullString
	var fixAt sql.NullInt64

	err := scan(
		&rec.Address, &rec.StaffName, &rec.ClientLabel, &rec.ShiftID,
		&auditScore, &riskLevel, &rec.MessageBody, &status,
		&createdAt, &fixText, &fixAt,
	)
	if err != nil {
		return nil, err
	}

	rec.AuditScore = domain.AuditScore(auditScore)
	rec.RiskLevel = domain.RiskLevel(riskLevel)
	rec.Status = domain.RemediationStatus(status)
	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.FixText = fixText.String
	if fixAt.Valid {
		ts := time.Unix(fixAt.Int64, 0)
		rec.FixAt = &ts
	}

	return &rec, nil
}
