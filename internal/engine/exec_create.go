package engine

import (
	"rowdb/internal/storage"
)

// CreateTable appends a new empty table. Names are unique ignoring
// case; a collision leaves the database untouched.
func (e *Engine) CreateTable(name string, cols []storage.Column) error {
	if e.db.HasTableFold(name) {
		return &TableExistsError{Table: name}
	}

	// Copy the column slice so later caller mutations cannot reach the
	// stored schema.
	columns := make([]storage.Column, len(cols))
	copy(columns, cols)

	e.db.AddTable(&storage.Table{Name: name, Columns: columns})
	return nil
}
