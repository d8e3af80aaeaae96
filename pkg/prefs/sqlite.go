package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

var _ Prefs = (*SQLite)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS prefs (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLite is a Prefs backed by a SQLite database file.
// Writes are kept in a pending overlay and committed in a single transaction by Flush.
type SQLite struct {
	conn     *sql.DB
	logger   *log.Logger
	pending  map[string]*string
	clearAll bool
}

// SQLiteOpt configures a SQLite in OpenSQLite.
type SQLiteOpt = func(s *SQLite) error

// SQLiteLogger sets the logger used to report read failures, which are otherwise treated as missing keys.
func SQLiteLogger(logger *log.Logger) SQLiteOpt {
	return func(s *SQLite) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		s.logger = logger
		return nil
	}
}

// OpenSQLite creates or opens the database at path and applies the schema.
func OpenSQLite(path string, opts ...SQLiteOpt) (*SQLite, error) {
	s := &SQLite{
		logger:  discardLogger(),
		pending: map[string]*string{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	s.conn = conn
	return s, nil
}

// Close discards anything not yet flushed and closes the database.
func (s *SQLite) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *SQLite) lookup(key string) (string, bool) {
	if val, ok := s.pending[key]; ok {
		if val == nil {
			return "", false
		}
		return *val, true
	}
	if s.clearAll || s.conn == nil {
		return "", false
	}
	var val string
	err := s.conn.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&val)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Printf("failed to read preference: %v", err)
		}
		return "", false
	}
	return val, true
}

func (s *SQLite) GetString(key, def string) string {
	if val, ok := s.lookup(key); ok {
		return val
	}
	return def
}

func (s *SQLite) SetString(key, value string) error {
	if s.conn == nil {
		return ErrClosed
	}
	s.pending[key] = &value
	return nil
}

func (s *SQLite) HasKey(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

func (s *SQLite) DeleteKey(key string) error {
	if s.conn == nil {
		return ErrClosed
	}
	s.pending[key] = nil
	return nil
}

func (s *SQLite) DeleteAll() error {
	if s.conn == nil {
		return ErrClosed
	}
	s.clearAll = true
	s.pending = map[string]*string{}
	return nil
}

func (s *SQLite) Flush() (err error) {
	if s.conn == nil {
		return ErrClosed
	}
	if !s.clearAll && len(s.pending) == 0 {
		return nil
	}
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin flush: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if s.clearAll {
		if _, err = tx.Exec(`DELETE FROM prefs`); err != nil {
			return fmt.Errorf("clear preferences: %w", err)
		}
	}
	for key, val := range s.pending {
		if val == nil {
			_, err = tx.Exec(`DELETE FROM prefs WHERE key = ?`, key)
		} else {
			_, err = tx.Exec(`INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, *val)
		}
		if err != nil {
			return fmt.Errorf("write preference: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit flush: %w", err)
	}
	s.pending = map[string]*string{}
	s.clearAll = false
	return nil
}
