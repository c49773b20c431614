package sqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fathom-search/fathom/internal/models"
	"github.com/fathom-search/fathom/internal/registry"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL,
		last_indexed_at TIMESTAMP
	);`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Register(name, path string) (int64, error) {
	canonical, err := registry.CanonicalPath(path)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(`INSERT INTO projects(name, path) VALUES(?, ?)`, name, canonical)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, registry.ErrDuplicateName
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) Resolve(name string) (string, error) {
	row := s.db.QueryRow(`SELECT path FROM projects WHERE name = ?`, name)
	var path string
	if err := row.Scan(&path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", registry.ErrProjectNotFound
		}
		return "", err
	}
	return path, nil
}

func (s *Store) List() ([]models.Project, error) {
	rows, err := s.db.Query(
		`SELECT id, name, path, last_indexed_at FROM projects ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []models.Project
	for rows.Next() {
		var p models.Project
		var ts sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Path, &ts); err != nil {
			return nil, err
		}
		if ts.Valid {
			t := ts.Time
			p.LastIndexedAt = &t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Touch(name string) error {
	_, err := s.db.Exec(
		`UPDATE projects SET last_indexed_at = ? WHERE name = ?`,
		time.Now().UTC(), name,
	)
	return err
}

func (s *Store) Remove(name string) error {
	// deleting an absent name is intentionally not an error
	_, err := s.db.Exec(`DELETE FROM projects WHERE name = ?`, name)
	return err
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite surfaces SQLITE_CONSTRAINT_UNIQUE in the message;
	// the driver's error type is not exported for matching.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ registry.Store = (*Store)(nil)
