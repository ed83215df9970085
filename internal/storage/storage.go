package storage

import "strings"

// Kind identifies the logical type of a column.
type Kind string

const (
	KindInt     Kind = "INT"
	KindVarchar Kind = "VARCHAR"
)

// DataType is a column type together with its size attribute.
// For INT the size is a display width only; values are always validated
// as 32-bit signed integers. For VARCHAR the size is the maximum length.
type DataType struct {
	Kind Kind `json:"kind"`
	Size int  `json:"size"`
}

// Int returns an INT type with the given display width.
func Int(width int) DataType {
	return DataType{Kind: KindInt, Size: width}
}

// Varchar returns a VARCHAR type with the given maximum length.
func Varchar(max int) DataType {
	return DataType{Kind: KindVarchar, Size: max}
}

// Column describes one column of a table. A primary column acts as the
// table's uniqueness key and is treated as NOT NULL even when NotNull
// is false.
type Column struct {
	Name    string   `json:"name"`
	Type    DataType `json:"data_type"`
	Primary bool     `json:"is_primary"`
	NotNull bool     `json:"not_null"`
}

// Row is one record: a slice of string cells, positionally aligned with
// the table's columns. The empty string is the NULL sentinel.
type Row []string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Table holds a schema and its rows.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Data    []Row    `json:"data"`
}

// ColumnIndex returns the position of the named column, or false if the
// table has no such column. Matching is case-sensitive.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// ColumnNames returns the column names in declared order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// PrimaryIndex returns the position of the table's primary column, or -1
// if the table has none. When several columns are declared primary, the
// first one is the key; the rest are ordinary NOT NULL columns.
func (t *Table) PrimaryIndex() int {
	for i, c := range t.Columns {
		if c.Primary {
			return i
		}
	}
	return -1
}

// Database is a set of tables. Table names are stored case-sensitively
// but checked case-insensitively on create.
type Database struct {
	Tables []*Table `json:"tables"`
}

// New returns an empty database.
func New() *Database {
	return &Database{}
}

// Table returns the table with the given name (exact match).
func (db *Database) Table(name string) (*Table, bool) {
	for _, t := range db.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// HasTableFold reports whether a table with the given name exists,
// ignoring case. Used for the uniqueness check on create.
func (db *Database) HasTableFold(name string) bool {
	for _, t := range db.Tables {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

// AddTable appends a table. The caller is responsible for the
// existence check.
func (db *Database) AddTable(t *Table) {
	db.Tables = append(db.Tables, t)
}

// RemoveTable removes the named table (exact match) and reports whether
// it was present.
func (db *Database) RemoveTable(name string) bool {
	for i, t := range db.Tables {
		if t.Name == name {
			db.Tables = append(db.Tables[:i], db.Tables[i+1:]...)
			return true
		}
	}
	return false
}

// IsNull reports whether a cell holds no value: empty after trimming,
// or the literal NULL in any case.
func IsNull(cell string) bool {
	s := strings.TrimSpace(cell)
	return s == "" || strings.EqualFold(s, "null")
}

// Normalize prepares a caller-supplied value for storage: surrounding
// whitespace and one matching pair of quotes are removed, and the NULL
// literal collapses to the empty sentinel.
func Normalize(value string) string {
	s := strings.TrimSpace(value)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			s = s[1 : len(s)-1]
		}
	}
	if strings.EqualFold(strings.TrimSpace(s), "null") {
		return ""
	}
	return s
}
