package sql

import "rowdb/internal/storage"

// Statement is the common interface for all parsed statements. Each
// descriptor carries already-extracted table/column/value fields; WHERE
// clauses travel as raw condition text for the engine's predicate
// compiler.
type Statement interface {
	stmtNode()
}

// SelectStmt represents a parsed SELECT statement.
type SelectStmt struct {
	Table   string
	Columns []string // "*" marks the wildcard
	Where   string   // empty when absent
	OrderBy []OrderKey
}

// OrderKey is one ORDER BY entry.
type OrderKey struct {
	Column string
	Desc   bool
}

// CreateTableStmt represents a parsed CREATE TABLE statement.
type CreateTableStmt struct {
	Table   string
	Columns []storage.Column
}

// InsertStmt represents a parsed INSERT statement. Columns is empty
// when no column list was given, in which case each row must match the
// table's full width.
type InsertStmt struct {
	Table   string
	Columns []string
	Rows    [][]string
}

// Assignment is one column = value pair in a SET list.
type Assignment struct {
	Column string
	Value  string
}

// UpdateStmt represents a parsed UPDATE statement.
type UpdateStmt struct {
	Table string
	Set   []Assignment
	Where string
}

// DeleteStmt represents a parsed DELETE statement.
type DeleteStmt struct {
	Table string
	Where string
}

// DropStmt represents a parsed DROP TABLE statement.
type DropStmt struct {
	Tables   []string
	IfExists bool
}

// CalcStmt is a scalar arithmetic query, evaluated at parse time.
type CalcStmt struct {
	Expression string
	Result     float64
}

func (*SelectStmt) stmtNode()      {}
func (*CreateTableStmt) stmtNode() {}
func (*InsertStmt) stmtNode()      {}
func (*UpdateStmt) stmtNode()      {}
func (*DeleteStmt) stmtNode()      {}
func (*DropStmt) stmtNode()        {}
func (*CalcStmt) stmtNode()        {}
