package template

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:embed schema.sql
var Schema string

// Repository stores named templates in sqlite so labels can be
// reprinted without keeping the original file around.
type Repository struct {
	Db *sql.DB
}

// Record is one stored template.
type Record struct {
	Id        int64
	Uuid      uuid.UUID
	Name      string
	CreatedAt time.Time
	Source    string
}

func (r *Repository) Close() error {
	return r.Db.Close()
}

// Transact runs f inside a transaction, rolling back on error.
func (r *Repository) Transact(f func(tx *sql.Tx) error) error {
	tx, err := r.Db.Begin()
	if err != nil {
		return fmt.Errorf("Couldn't begin transaction:\n%w", err)
	}
	if err := f(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Create stores a new template. The source must already have passed
// Parse; the repository doesn't validate it again.
func (r *Repository) Create(tx *sql.Tx, name string, source string) (*Record, error) {
	rec := &Record{
		Uuid:      uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Source:    source,
	}

	result, err := tx.Exec(`
    INSERT INTO template (uuid, name, created_at, source)
    VALUES (?, ?, ?, ?)`,
		rec.Uuid.String(), rec.Name, rec.CreatedAt.Format(time.RFC3339), rec.Source)
	if err != nil {
		return nil, fmt.Errorf("Failed to create template:\n%w", err)
	}
	if rec.Id, err = result.LastInsertId(); err != nil {
		return nil, fmt.Errorf("Failed to read new template id:\n%w", err)
	}
	return rec, nil
}

// GetByName reads one template, or nil when no template has that name.
func (r *Repository) GetByName(name string) (*Record, error) {
	row := r.Db.QueryRow(`
    SELECT id, uuid, name, created_at, source
    FROM template
    WHERE name = ?`, name)

	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// List returns every stored template, newest first.
func (r *Repository) List() ([]Record, error) {
	rows, err := r.Db.Query(`
    SELECT id, uuid, name, created_at, source
    FROM template
    ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("Query execution failed:\n%w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Error iterating rows:\n%w", err)
	}
	return records, nil
}

// Delete removes a template by name, reporting whether it existed.
func (r *Repository) Delete(tx *sql.Tx, name string) (bool, error) {
	result, err := tx.Exec(`DELETE FROM template WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("Failed to delete template:\n%w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanRecord(scan func(dest ...any) error) (*Record, error) {
	rec := Record{}
	var uuidString, createdAt string
	if err := scan(&rec.Id, &uuidString, &rec.Name, &createdAt, &rec.Source); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("Row scanning failed:\n%w", err)
	}

	var err error
	if rec.Uuid, err = uuid.Parse(uuidString); err != nil {
		return nil, fmt.Errorf("Stored template has bad uuid:\n%w", err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("Stored template has bad timestamp:\n%w", err)
	}
	return &rec, nil
}
