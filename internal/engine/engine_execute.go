package engine

import (
	"fmt"
	"strconv"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

// Result is the outcome of one executed statement. Columns and Rows are
// set for statements that produce a rowset (SELECT and calculations);
// Affected counts inserted, updated, or deleted rows, or dropped tables.
type Result struct {
	Columns  []string
	Rows     []storage.Row
	Affected int
}

// HasRows reports whether the result carries a rowset to display.
func (r *Result) HasRows() bool {
	return len(r.Columns) > 0
}

// Execute dispatches a parsed statement to the matching operation.
func (e *Engine) Execute(stmt sql.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *sql.CreateTableStmt:
		if err := e.CreateTable(s.Table, s.Columns); err != nil {
			return nil, err
		}
		return &Result{}, nil

	case *sql.InsertStmt:
		n, err := e.Insert(s.Table, s.Columns, s.Rows)
		if err != nil {
			return nil, err
		}
		return &Result{Affected: n}, nil

	case *sql.SelectStmt:
		cols, rows, err := e.Select(s.Table, s.Columns, s.Where, s.OrderBy)
		if err != nil {
			return nil, err
		}
		return &Result{Columns: cols, Rows: rows}, nil

	case *sql.UpdateStmt:
		n, err := e.Update(s.Table, s.Set, s.Where)
		if err != nil {
			return nil, err
		}
		return &Result{Affected: n}, nil

	case *sql.DeleteStmt:
		n, err := e.Delete(s.Table, s.Where)
		if err != nil {
			return nil, err
		}
		return &Result{Affected: n}, nil

	case *sql.DropStmt:
		n, err := e.Drop(s.Tables, s.IfExists)
		if err != nil {
			return nil, err
		}
		return &Result{Affected: n}, nil

	case *sql.CalcStmt:
		// Scalar calculations render as a one-cell rowset headed by the
		// original expression.
		value := strconv.FormatFloat(s.Result, 'f', -1, 64)
		return &Result{
			Columns: []string{s.Expression},
			Rows:    []storage.Row{{value}},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}
}
