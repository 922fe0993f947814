package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"actdex/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  titleInSourceLanguage TEXT,
  shortName TEXT,
  status TEXT NOT NULL,
  issuedDate TEXT,
  inForceDate TEXT,
  sourceUrl TEXT,
  description TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS provisions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  docId TEXT NOT NULL,
  provisionRef TEXT NOT NULL,
  chapter TEXT,
  section TEXT NOT NULL,
  title TEXT,
  content TEXT NOT NULL,
  position INTEGER NOT NULL,
  UNIQUE(docId, provisionRef),
  FOREIGN KEY(docId) REFERENCES documents(id)
);
CREATE INDEX IF NOT EXISTS idx_provisions_doc_section ON provisions(docId, section);

CREATE TABLE IF NOT EXISTS definitions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  docId TEXT NOT NULL,
  term TEXT NOT NULL,
  definition TEXT NOT NULL,
  sourceProvision TEXT,
  FOREIGN KEY(docId) REFERENCES documents(id)
);
CREATE INDEX IF NOT EXISTS idx_definitions_term ON definitions(term);

CREATE VIRTUAL TABLE IF NOT EXISTS provisions_fts USING fts5(
  docId UNINDEXED, provisionRef UNINDEXED, title, content
);

CREATE VIRTUAL TABLE IF NOT EXISTS definitions_fts USING fts5(
  docId UNINDEXED, sourceProvision UNINDEXED, term, definition
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// EnableCrossRefs creates the external cross-reference table. Deployments
// that never call this stay on the base tier; lookups degrade to empty
// results.
func (d *DB) EnableCrossRefs() error {
	_, err := d.conn.Exec(`
CREATE TABLE IF NOT EXISTS crossrefs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  docId TEXT NOT NULL,
  externalId TEXT NOT NULL,
  isPrimary INTEGER NOT NULL DEFAULT 0,
  UNIQUE(docId, externalId),
  FOREIGN KEY(docId) REFERENCES documents(id)
);
CREATE INDEX IF NOT EXISTS idx_crossrefs_external ON crossrefs(externalId);
`)
	return err
}

// UpsertAct replaces the stored record for a document in one transaction:
// document header upserted, prior provisions/definitions and their
// full-text rows dropped, fresh rows inserted in document order.
func (d *DB) UpsertAct(act internal.Act) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
INSERT INTO documents (id, type, title, titleInSourceLanguage, shortName, status, issuedDate, inForceDate, sourceUrl, description)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  type=excluded.type,
  title=excluded.title,
  titleInSourceLanguage=excluded.titleInSourceLanguage,
  shortName=excluded.shortName,
  status=excluded.status,
  issuedDate=excluded.issuedDate,
  inForceDate=excluded.inForceDate,
  sourceUrl=excluded.sourceUrl,
  description=excluded.description,
  updatedAt=CURRENT_TIMESTAMP
`, act.ID, act.Type, act.Title, act.TitleInSourceLanguage, act.ShortName, string(act.Status), act.IssuedDate, act.InForceDate, act.SourceURL, act.Description); err != nil {
		return err
	}

	for _, stmt := range []string{
		`DELETE FROM provisions WHERE docId = ?`,
		`DELETE FROM definitions WHERE docId = ?`,
		`DELETE FROM provisions_fts WHERE docId = ?`,
		`DELETE FROM definitions_fts WHERE docId = ?`,
	} {
		if _, err := tx.Exec(stmt, act.ID); err != nil {
			return err
		}
	}

	for i, p := range act.Provisions {
		if _, err := tx.Exec(`
INSERT INTO provisions (docId, provisionRef, chapter, section, title, content, position)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, act.ID, p.Ref, p.Chapter, p.Section, p.Title, p.Content, i); err != nil {
			return err
		}
		if _, err := tx.Exec(`
INSERT INTO provisions_fts (docId, provisionRef, title, content) VALUES (?, ?, ?, ?)
`, act.ID, p.Ref, p.Title, p.Content); err != nil {
			return err
		}
	}

	for _, def := range act.Definitions {
		if _, err := tx.Exec(`
INSERT INTO definitions (docId, term, definition, sourceProvision) VALUES (?, ?, ?, ?)
`, act.ID, def.Term, def.Definition, def.SourceProvision); err != nil {
			return err
		}
		if _, err := tx.Exec(`
INSERT INTO definitions_fts (docId, sourceProvision, term, definition) VALUES (?, ?, ?, ?)
`, act.ID, def.SourceProvision, def.Term, def.Definition); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) InsertRun(runID string, counts map[string]int) error {
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (runId, countsJson) VALUES (?, ?)`, runID, string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
