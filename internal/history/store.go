// Package history keeps a local record of generation runs so past diagram
// sources can be listed and compared without round-tripping to the backend.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"pdc/internal/log"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("history record not found")

// Kind classifies what a record holds.
type Kind string

const (
	KindDiagram     Kind = "diagram"
	KindIntegration Kind = "integration"
	KindSettlement  Kind = "settlement"
)

// Record is one stored generation run.
type Record struct {
	ID          int64
	GUID        string
	Kind        Kind
	BusinessID  string
	TemplateID  string
	StrategyID  string
	DiagramType string
	Prompt      string
	Source      string // mermaid text, markdown, or metrics JSON
	CreatedAt   time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guid TEXT NOT NULL UNIQUE,
	kind TEXT NOT NULL,
	business_id TEXT NOT NULL DEFAULT '',
	template_id TEXT NOT NULL DEFAULT '',
	strategy_id TEXT NOT NULL DEFAULT '',
	diagram_type TEXT NOT NULL DEFAULT '',
	prompt TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_business ON runs(business_id);
`

// Store persists generation runs in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the history database at path.
// ":memory:" opens an ephemeral store, used by tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	log.Debug(log.CatDB, "history store opened", "path", path)
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a run and fills in its ID, GUID and CreatedAt.
func (s *Store) Save(rec *Record) error {
	if rec.GUID == "" {
		rec.GUID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (guid, kind, business_id, template_id, strategy_id, diagram_type, prompt, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GUID, string(rec.Kind), rec.BusinessID, rec.TemplateID, rec.StrategyID,
		rec.DiagramType, rec.Prompt, rec.Source, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	return nil
}

const runColumns = `id, guid, kind, business_id, template_id, strategy_id, diagram_type, prompt, source, created_at`

func scanRun(scanner interface{ Scan(...any) error }) (Record, error) {
	var rec Record
	var kind string
	err := scanner.Scan(
		&rec.ID, &rec.GUID, &kind, &rec.BusinessID, &rec.TemplateID,
		&rec.StrategyID, &rec.DiagramType, &rec.Prompt, &rec.Source, &rec.CreatedAt,
	)
	rec.Kind = Kind(kind)
	return rec, err
}

// List returns up to limit runs, newest first. businessID filters when
// non-empty.
func (s *Store) List(businessID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if businessID != "" {
		query += ` WHERE business_id = ?`
		args = append(args, businessID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get fetches one run by its numeric id or guid.
func (s *Store) Get(idOrGUID string) (Record, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE guid = ? OR id = ?`,
		idOrGUID, idOrGUID,
	)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("run %q: %w", idOrGUID, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get run: %w", err)
	}
	return rec, nil
}
