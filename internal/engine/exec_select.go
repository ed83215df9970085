package engine

import (
	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

// Select filters, sorts, and projects rows. The returned header names
// the projected columns in output order.
//
// Filtering and sorting both run on the original full-width rows;
// projection happens last, so a sort key does not have to appear in the
// requested columns. An empty condition matches every row, and an empty
// or "*" column list expands to the schema in declared order.
func (e *Engine) Select(table string, columns []string, condition string, orderBy []sql.OrderKey) ([]string, []storage.Row, error) {
	t, err := e.table(table)
	if err != nil {
		return nil, nil, err
	}

	indices, header, err := resolveProjection(t, columns)
	if err != nil {
		return nil, nil, err
	}

	pred, err := Compile(condition, t)
	if err != nil {
		return nil, nil, err
	}

	keys, err := resolveSortKeys(t, orderBy)
	if err != nil {
		return nil, nil, err
	}

	var matched []storage.Row
	for _, row := range t.Data {
		if pred.Match(row) {
			matched = append(matched, row.Clone())
		}
	}

	sortRows(matched, keys)

	out := make([]storage.Row, len(matched))
	for i, row := range matched {
		proj := make(storage.Row, len(indices))
		for j, idx := range indices {
			proj[j] = row[idx]
		}
		out[i] = proj
	}
	return header, out, nil
}

// resolveProjection maps the requested column names to schema positions.
// nil, an empty list, and ["*"] all mean every column in declared order.
func resolveProjection(t *storage.Table, columns []string) ([]int, []string, error) {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		indices := make([]int, len(t.Columns))
		for i := range t.Columns {
			indices[i] = i
		}
		return indices, t.ColumnNames(), nil
	}

	indices := make([]int, len(columns))
	header := make([]string, len(columns))
	for i, name := range columns {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			return nil, nil, &ColumnNotFoundError{Column: name}
		}
		indices[i] = idx
		header[i] = t.Columns[idx].Name
	}
	return indices, header, nil
}
