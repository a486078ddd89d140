package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/campusbites/cafeteria/internal/logger"
	"github.com/campusbites/cafeteria/pkg/types"
)

// DBFileName is the SQLite database file created inside the data directory.
const DBFileName = "cafeteria.db"

var _ types.Store = (*Store)(nil)

// Store implements types.Store on a single SQLite database file.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
	log    logger.Logger
}

// Open creates the data directory if needed, opens the database file, and
// applies the schema. The schema uses IF NOT EXISTS so reopening an
// existing store preserves its contents.
func Open(dataDir string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	return &Store{db: db, log: log}, nil
}

// Close releases the database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		s.db = nil
	}
	return nil
}

// LoadDocument returns the raw JSON value stored under key, or nil when the
// key is absent.
func (s *Store) LoadDocument(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM documents WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", key, err)
	}
	return []byte(value), nil
}

// SaveDocument writes the raw JSON value under key, replacing any previous
// value.
func (s *Store) SaveDocument(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveDocumentLocked(key, value)
}

func (s *Store) saveDocumentLocked(key string, value []byte) error {
	if s.closed {
		return types.ErrStoreClosed
	}

	_, err := s.db.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving document %s: %w", key, err)
	}
	return nil
}

// deleteDocumentLocked removes a key. Used when a stored value turns out to
// be corrupt. The caller must hold the write lock.
func (s *Store) deleteDocumentLocked(key string) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	if _, err := s.db.Exec("DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting document %s: %w", key, err)
	}
	return nil
}

// LogTransition appends one applied transition to the status audit table.
func (s *Store) LogTransition(orderID string, status types.Status, timestamp int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}

	_, err := s.db.Exec(
		"INSERT INTO status_log (log_id, order_id, status, timestamp, created_at) VALUES (?, ?, ?, ?, ?)",
		newUUID(), orderID, string(status), timestamp, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("logging transition for %s: %w", orderID, err)
	}
	return nil
}

// TransitionLog returns the audited transitions for one order, oldest
// first. Read-only; used by the CLI for inspection.
func (s *Store) TransitionLog(orderID string) ([]types.StatusUpdate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}

	rows, err := s.db.Query(
		"SELECT status, timestamp FROM status_log WHERE order_id = ? ORDER BY timestamp ASC",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("reading transition log for %s: %w", orderID, err)
	}
	defer rows.Close()

	var out []types.StatusUpdate
	for rows.Next() {
		var status string
		var ts int64
		if err := rows.Scan(&status, &ts); err != nil {
			return nil, fmt.Errorf("scanning transition log row: %w", err)
		}
		out = append(out, types.StatusUpdate{Status: types.Status(status), Timestamp: ts})
	}
	return out, rows.Err()
}

// newUUID generates a UUID v7 string for audit row IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
