package engine

import (
	"strconv"
	"strings"

	"rowdb/internal/storage"
)

// validateRow checks a fully materialized candidate row against the
// table's schema: arity, NOT NULL, value types and lengths, and
// primary-key uniqueness. It never mutates anything.
//
// excludeRow names one stored row to skip during the uniqueness scan
// (the row an UPDATE is about to rewrite, so a key written back to
// itself is not a collision). Inserts pass -1.
func validateRow(t *storage.Table, row storage.Row, excludeRow int) error {
	if len(row) != len(t.Columns) {
		return &ColumnCountMismatchError{Want: len(t.Columns), Got: len(row)}
	}

	for i, col := range t.Columns {
		cell := row[i]

		if storage.IsNull(cell) {
			if col.NotNull || col.Primary {
				return &MissingValueError{Column: col.Name}
			}
			continue
		}

		switch col.Type.Kind {
		case storage.KindInt:
			if _, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 32); err != nil {
				return &TypeMismatchError{Value: cell, Column: col.Name}
			}
		case storage.KindVarchar:
			if len(cell) > col.Type.Size {
				return &ValueTooLongError{Column: col.Name, Max: col.Type.Size}
			}
		}
	}

	if pk := t.PrimaryIndex(); pk >= 0 && !storage.IsNull(row[pk]) {
		for i, existing := range t.Data {
			if i == excludeRow {
				continue
			}
			if existing[pk] == row[pk] {
				return &DuplicateKeyError{Value: row[pk]}
			}
		}
	}

	return nil
}
