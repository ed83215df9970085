package sql

import (
	"fmt"

	"github.com/xwb1989/sqlparser"
)

// parseInsert converts a parsed INSERT ... VALUES, including multi-row
// inserts and an optional column list.
func parseInsert(ins *sqlparser.Insert) (Statement, error) {
	values, ok := ins.Rows.(sqlparser.Values)
	if !ok {
		return nil, fmt.Errorf("INSERT: only the VALUES form is supported")
	}

	var columns []string
	for _, c := range ins.Columns {
		columns = append(columns, c.String())
	}

	rows := make([][]string, 0, len(values))
	for _, tuple := range values {
		row := make([]string, 0, len(tuple))
		for _, expr := range tuple {
			cell, err := literalText(expr)
			if err != nil {
				return nil, fmt.Errorf("INSERT: %w", err)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	return &InsertStmt{
		Table:   ins.Table.Name.String(),
		Columns: columns,
		Rows:    rows,
	}, nil
}
