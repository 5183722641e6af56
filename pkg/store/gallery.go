package store

import (
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// Gallery is a local SQLite catalog of saved records, keyed by name.
type Gallery struct {
	db   *sql.DB
	path string
}

// OpenGallery opens (or creates) the gallery database at path.
func OpenGallery(path string) (*Gallery, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open gallery: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS records (
			name      TEXT PRIMARY KEY,
			type      TEXT NOT NULL,
			modified  TIMESTAMP NOT NULL,
			values_json TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema: %w", err)
	}

	return &Gallery{db: db, path: path}, nil
}

// Close closes the underlying database.
func (g *Gallery) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}

// Put stores or replaces the record under name.
func (g *Gallery) Put(name string, r Record) error {
	values, err := json.Marshal(r.Values)
	if err != nil {
		return fmt.Errorf("cannot encode values: %w", err)
	}
	_, err = g.db.Exec(
		`INSERT INTO records (name, type, modified, values_json) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET type=excluded.type, modified=excluded.modified, values_json=excluded.values_json`,
		name, r.Type, r.Modified, string(values),
	)
	if err != nil {
		return fmt.Errorf("cannot store record %q: %w", name, err)
	}
	return nil
}

// Get retrieves the record stored under name.
func (g *Gallery) Get(name string) (Record, error) {
	var r Record
	var valuesJSON string
	var modified sql.NullTime
	err := g.db.QueryRow(
		`SELECT type, modified, values_json FROM records WHERE name = ?`, name,
	).Scan(&r.Type, &modified, &valuesJSON)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("record not found: %s", name)
	}
	if err != nil {
		return Record{}, fmt.Errorf("cannot load record %q: %w", name, err)
	}
	if modified.Valid {
		r.Modified = modified.Time
	}
	if err := json.Unmarshal([]byte(valuesJSON), &r.Values); err != nil {
		return Record{}, fmt.Errorf("cannot decode values for %q: %w", name, err)
	}
	return r, nil
}

// Entry is one gallery listing row.
type Entry struct {
	Name     string
	Type     string
	Modified time.Time
	Count    int
}

// List enumerates stored records, most recently modified first.
func (g *Gallery) List() ([]Entry, error) {
	rows, err := g.db.Query(
		`SELECT name, type, modified, values_json FROM records ORDER BY modified DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot list records: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var valuesJSON string
		var modified sql.NullTime
		if err := rows.Scan(&e.Name, &e.Type, &modified, &valuesJSON); err != nil {
			continue
		}
		if modified.Valid {
			e.Modified = modified.Time
		}
		var values []int
		if err := json.Unmarshal([]byte(valuesJSON), &values); err == nil {
			e.Count = len(values)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return entries, nil
}

// Delete removes the record stored under name. Deleting a missing name is
// not an error.
func (g *Gallery) Delete(name string) error {
	if _, err := g.db.Exec(`DELETE FROM records WHERE name = ?`, name); err != nil {
		return fmt.Errorf("cannot delete record %q: %w", name, err)
	}
	return nil
}
