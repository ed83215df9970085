package engine

import (
	"fmt"

	"rowdb/internal/storage"
)

// Insert validates and appends rows, returning how many were appended.
//
// With a column list, supplied values map onto their named positions
// and every unlisted column defaults to NULL. Each row is validated in
// full before it is stored; a failure on row k aborts row k and the
// rest of the call, but rows already appended stay (callers needing
// all-or-nothing semantics snapshot around the call).
func (e *Engine) Insert(table string, columns []string, rows [][]string) (int, error) {
	t, err := e.table(table)
	if err != nil {
		return 0, err
	}

	// Resolve the optional column list once for the whole call.
	var positions []int
	if len(columns) > 0 {
		positions = make([]int, len(columns))
		seen := make([]bool, len(t.Columns))
		for i, name := range columns {
			idx, ok := t.ColumnIndex(name)
			if !ok {
				return 0, &ColumnNotFoundError{Column: name}
			}
			if seen[idx] {
				return 0, fmt.Errorf("duplicate column %q in column list", name)
			}
			seen[idx] = true
			positions[i] = idx
		}
	}

	inserted := 0
	for _, values := range rows {
		row, err := buildRow(t, positions, values)
		if err != nil {
			return inserted, err
		}
		if err := validateRow(t, row, -1); err != nil {
			return inserted, err
		}
		t.Data = append(t.Data, row)
		inserted++
	}
	return inserted, nil
}

// buildRow materializes one positional row from caller-supplied values,
// normalizing quoting and the NULL literal on the way in. positions is
// nil when no column list was given.
func buildRow(t *storage.Table, positions []int, values []string) (storage.Row, error) {
	if positions == nil {
		if len(values) != len(t.Columns) {
			return nil, &ColumnCountMismatchError{Want: len(t.Columns), Got: len(values)}
		}
		row := make(storage.Row, len(values))
		for i, v := range values {
			row[i] = storage.Normalize(v)
		}
		return row, nil
	}

	if len(values) != len(positions) {
		return nil, &ColumnCountMismatchError{Want: len(positions), Got: len(values)}
	}
	// Unlisted positions keep the zero value, which is the NULL sentinel.
	row := make(storage.Row, len(t.Columns))
	for i, pos := range positions {
		row[pos] = storage.Normalize(values[i])
	}
	return row, nil
}
