package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	"actdex/internal"
)

// Read-only lookup layer. Every query is parameterized; caller input never
// reaches SQL by concatenation.

type SearchHit struct {
	DocID   string
	Ref     string
	Title   string
	Content string
}

type DefinitionHit struct {
	DocID           string
	SourceProvision string
	Term            string
	Definition      string
}

type StructureEntry struct {
	Ref     string
	Chapter string
	Section string
	Title   string
}

type CrossRef struct {
	DocID      string
	ExternalID string
	IsPrimary  bool
}

type RunRow struct {
	RunID     string
	Counts    map[string]int
	CreatedAt string
}

func (d *DB) GetProvision(docID, section string) (*internal.Provision, error) {
	var p internal.Provision
	err := d.conn.QueryRow(`
SELECT provisionRef, chapter, section, title, content
FROM provisions WHERE docId = ? AND section = ?
`, docID, section).Scan(&p.Ref, &p.Chapter, &p.Section, &p.Title, &p.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DB) ListProvisions(docID string) ([]internal.Provision, error) {
	rows, err := d.conn.Query(`
SELECT provisionRef, chapter, section, title, content
FROM provisions WHERE docId = ? ORDER BY position ASC
`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Provision
	for rows.Next() {
		var p internal.Provision
		if err := rows.Scan(&p.Ref, &p.Chapter, &p.Section, &p.Title, &p.Content); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DB) SearchProvisions(query string, limit int) ([]SearchHit, error) {
	rows, err := d.conn.Query(`
SELECT docId, provisionRef, title, content
FROM provisions_fts WHERE provisions_fts MATCH ? LIMIT ?
`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SearchHit
	for rows.Next() {
		var hit SearchHit
		if err := rows.Scan(&hit.DocID, &hit.Ref, &hit.Title, &hit.Content); err != nil {
			return nil, err
		}
		out = append(out, hit)
	}
	return out, rows.Err()
}

func (d *DB) SearchDefinitions(query string, limit int) ([]DefinitionHit, error) {
	rows, err := d.conn.Query(`
SELECT docId, sourceProvision, term, definition
FROM definitions_fts WHERE definitions_fts MATCH ? LIMIT ?
`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DefinitionHit
	for rows.Next() {
		var hit DefinitionHit
		if err := rows.Scan(&hit.DocID, &hit.SourceProvision, &hit.Term, &hit.Definition); err != nil {
			return nil, err
		}
		out = append(out, hit)
	}
	return out, rows.Err()
}

func (d *DB) ListDocuments() ([]internal.DocumentRow, error) {
	rows, err := d.conn.Query(`
SELECT id, type, title, shortName, status, issuedDate, inForceDate, sourceUrl, description
FROM documents ORDER BY id ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.DocumentRow
	for rows.Next() {
		var row internal.DocumentRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Title, &row.ShortName, &row.Status, &row.IssuedDate, &row.InForceDate, &row.SourceURL, &row.Description); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) GetStructure(docID string) ([]StructureEntry, error) {
	rows, err := d.conn.Query(`
SELECT provisionRef, chapter, section, title
FROM provisions WHERE docId = ? ORDER BY position ASC
`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StructureEntry
	for rows.Next() {
		var entry StructureEntry
		if err := rows.Scan(&entry.Ref, &entry.Chapter, &entry.Section, &entry.Title); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// ListRuns returns the most recent ingestion runs, newest first.
func (d *DB) ListRuns(limit int) ([]RunRow, error) {
	rows, err := d.conn.Query(`
SELECT runId, countsJson, createdAt FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var run RunRow
		var countsJSON string
		if err := rows.Scan(&run.RunID, &countsJSON, &run.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(countsJSON), &run.Counts); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// AddCrossRef records a link to an external source identifier. Requires the
// crossrefs tier (EnableCrossRefs).
func (d *DB) AddCrossRef(docID, externalID string, primary bool) error {
	ok, err := d.hasCrossRefs()
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("crossrefs table not enabled")
	}
	flag := 0
	if primary {
		flag = 1
	}
	_, err = d.conn.Exec(`
INSERT INTO crossrefs (docId, externalId, isPrimary) VALUES (?, ?, ?)
ON CONFLICT(docId, externalId) DO UPDATE SET isPrimary = excluded.isPrimary
`, docID, externalID, flag)
	return err
}

// CrossRefsFor returns the external links for a document. On deployments
// without the crossrefs table it returns no rows rather than an error.
func (d *DB) CrossRefsFor(docID string) ([]CrossRef, error) {
	ok, err := d.hasCrossRefs()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	rows, err := d.conn.Query(`
SELECT docId, externalId, isPrimary FROM crossrefs WHERE docId = ? ORDER BY externalId ASC
`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CrossRef
	for rows.Next() {
		var ref CrossRef
		var flag int
		if err := rows.Scan(&ref.DocID, &ref.ExternalID, &flag); err != nil {
			return nil, err
		}
		ref.IsPrimary = flag != 0
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (d *DB) hasCrossRefs() (bool, error) {
	var name string
	err := d.conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'crossrefs'`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
