package sqlvec

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/fathom-search/fathom/internal/models"
	"github.com/fathom-search/fathom/internal/storage"
	_ "github.com/mattn/go-sqlite3"
)

// Store keeps one vector collection per project in a single SQLite file.
// Each collection is a trio of tables named from storage.CollectionName:
// snippet metadata, a vec0 virtual table, and a rowid<->fingerprint map.
type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	// enable sqlite-vec for all future connections
	sqlite_vec.Auto()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

type collection struct {
	db   *sql.DB
	name string
}

func (s *Store) GetOrCreateCollection(projectKey string) (storage.Collection, error) {
	c := &collection{db: s.db, name: storage.CollectionName(projectKey)}
	if _, err := s.db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS snippets_%s (
		fingerprint TEXT PRIMARY KEY,
		file TEXT NOT NULL,
		class_name TEXT,
		method_name TEXT NOT NULL,
		parameters TEXT,
		return_type TEXT,
		start_line INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		body TEXT NOT NULL
	);`, c.name)); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) Query(
	projectKey string,
	embedding []float32,
	topK int,
) ([]models.SemanticHit, error) {
	name := storage.CollectionName(projectKey)
	exists, err := tableExists(s.db, "vec_"+name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", storage.ErrCollectionNotFound, projectKey)
	}
	if topK <= 0 {
		topK = 5
	}
	v, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, err
	}
	// KNN via MATCH ... ORDER BY distance using sqlite-vec
	rows, err := s.db.Query(fmt.Sprintf(`
        WITH knn AS (
            SELECT rowid, distance
            FROM vec_%[1]s
            WHERE embedding MATCH ?
            ORDER BY distance
            LIMIT ?
        )
        SELECT sn.fingerprint, sn.file, sn.class_name, sn.method_name,
               sn.parameters, sn.return_type, sn.start_line, sn.end_line, sn.body,
               k.distance
        FROM knn k
        JOIN vecmap_%[1]s m ON m.rid = k.rowid
        JOIN snippets_%[1]s sn ON sn.fingerprint = m.fingerprint
        ORDER BY k.distance ASC
    `, name), v, topK)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var hits []models.SemanticHit
	for rows.Next() {
		var sn models.Snippet
		var distance float32
		if err := rows.Scan(
			&sn.Fingerprint, &sn.File, &sn.ClassName, &sn.MethodName,
			&sn.Parameters, &sn.ReturnType, &sn.StartLine, &sn.EndLine, &sn.Body,
			&distance,
		); err != nil {
			return nil, err
		}
		hits = append(hits, models.SemanticHit{Snippet: sn, Distance: distance})
	}
	return hits, rows.Err()
}

func (c *collection) Upsert(snippets []models.Snippet, embeddings [][]float32) error {
	if len(snippets) != len(embeddings) {
		return fmt.Errorf("snippets and embeddings length mismatch")
	}
	if len(snippets) == 0 {
		return nil
	}
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	if err := c.ensureVecTables(tx, embeddings); err != nil {
		_ = tx.Rollback()
		return err
	}

	snippetStmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO snippets_%s(
		fingerprint,file,class_name,method_name,parameters,return_type,start_line,end_line,body
	) VALUES(?,?,?,?,?,?,?,?,?)
	ON CONFLICT(fingerprint) DO UPDATE SET
		file=excluded.file,
		class_name=excluded.class_name,
		method_name=excluded.method_name,
		parameters=excluded.parameters,
		return_type=excluded.return_type,
		start_line=excluded.start_line,
		end_line=excluded.end_line,
		body=excluded.body`, c.name))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = snippetStmt.Close() }()

	insertVecStmt, err := tx.Prepare(
		fmt.Sprintf(`INSERT INTO vec_%s(embedding) VALUES(?)`, c.name),
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = insertVecStmt.Close() }()
	replaceVecStmt, err := tx.Prepare(
		fmt.Sprintf(`INSERT OR REPLACE INTO vec_%s(rowid, embedding) VALUES(?, ?)`, c.name),
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = replaceVecStmt.Close() }()
	upsertMapStmt, err := tx.Prepare(
		fmt.Sprintf(`INSERT OR REPLACE INTO vecmap_%s(rid, fingerprint) VALUES(?, ?)`, c.name),
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = upsertMapStmt.Close() }()
	selectRidStmt, err := tx.Prepare(
		fmt.Sprintf(`SELECT rid FROM vecmap_%s WHERE fingerprint = ?`, c.name),
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = selectRidStmt.Close() }()

	for i, sn := range snippets {
		if _, err := snippetStmt.Exec(
			sn.Fingerprint, sn.File, sn.ClassName, sn.MethodName,
			sn.Parameters, sn.ReturnType, sn.StartLine, sn.EndLine, sn.Body,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
		v, err := sqlite_vec.SerializeFloat32(embeddings[i])
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		// reuse the existing vector rowid for an already-seen fingerprint
		var rid sql.NullInt64
		if err := selectRidStmt.QueryRow(sn.Fingerprint).Scan(&rid); err != nil &&
			!errors.Is(err, sql.ErrNoRows) {
			_ = tx.Rollback()
			return err
		}
		if rid.Valid {
			if _, err := replaceVecStmt.Exec(rid.Int64, v); err != nil {
				_ = tx.Rollback()
				return err
			}
		} else {
			if _, err := insertVecStmt.Exec(v); err != nil {
				_ = tx.Rollback()
				return err
			}
			var newRid int64
			if err := tx.QueryRow(`SELECT last_insert_rowid()`).Scan(&newRid); err != nil {
				_ = tx.Rollback()
				return err
			}
			if _, err := upsertMapStmt.Exec(newRid, sn.Fingerprint); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
	}
	return tx.Commit()
}

func (c *collection) Drop() error {
	for _, table := range []string{"snippets_", "vec_", "vecmap_"} {
		if _, err := c.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s%s`, table, c.name)); err != nil {
			return err
		}
	}
	// recreate the metadata table so the handle stays usable
	_, err := c.db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS snippets_%s (
		fingerprint TEXT PRIMARY KEY,
		file TEXT NOT NULL,
		class_name TEXT,
		method_name TEXT NOT NULL,
		parameters TEXT,
		return_type TEXT,
		start_line INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		body TEXT NOT NULL
	);`, c.name))
	return err
}

// ensureVecTables creates the vec0 virtual table and rowid map on first
// upsert, when the embedding dimension becomes known.
func (c *collection) ensureVecTables(tx *sql.Tx, embeddings [][]float32) error {
	exists, err := tableExistsTx(tx, "vec_"+c.name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return fmt.Errorf("cannot create vector table: unknown embedding dimension")
	}
	dim := len(embeddings[0])
	if _, err := tx.Exec(fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS vec_%s USING vec0(
        embedding float32[%d]
    );`, c.name, dim)); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS vecmap_%s (
        rid INTEGER UNIQUE NOT NULL,
        fingerprint TEXT UNIQUE NOT NULL
    );`, c.name)); err != nil {
		return err
	}
	return nil
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type IN ('table','virtual table') AND name = ?`,
		table,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		// vec0 tables register as plain 'table' in some sqlite builds; retry loosely
		err = db.QueryRow(
			`SELECT name FROM sqlite_master WHERE name = ?`, table,
		).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func tableExistsTx(tx *sql.Tx, table string) (bool, error) {
	var name string
	err := tx.QueryRow(
		`SELECT name FROM sqlite_master WHERE name = ?`, table,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ storage.VectorStore = (*Store)(nil)
