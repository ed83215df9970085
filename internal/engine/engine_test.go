package engine

import (
	"errors"
	"reflect"
	"testing"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

// newUsersEngine builds an engine with the users table used across
// these tests: id INT PRIMARY KEY, name VARCHAR(100), age INT.
func newUsersEngine(t *testing.T) *Engine {
	t.Helper()
	eng := New(storage.New())
	err := eng.CreateTable("users", []storage.Column{
		{Name: "id", Type: storage.Int(10), Primary: true, NotNull: true},
		{Name: "name", Type: storage.Varchar(100)},
		{Name: "age", Type: storage.Int(10)},
	})
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	return eng
}

func mustInsert(t *testing.T, eng *Engine, table string, rows ...[]string) {
	t.Helper()
	n, err := eng.Insert(table, nil, rows)
	if err != nil {
		t.Fatalf("Insert failed after %d rows: %v", n, err)
	}
}

func TestCreateTableDuplicateName(t *testing.T) {
	eng := newUsersEngine(t)

	// Same name in a different case still collides.
	err := eng.CreateTable("USERS", []storage.Column{{Name: "x", Type: storage.Int(10)}})
	var exists *TableExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected TableExistsError, got %v", err)
	}
	if len(eng.Database().Tables) != 1 {
		t.Fatalf("failed create left %d tables", len(eng.Database().Tables))
	}
}

func TestInsertAndSelectAll(t *testing.T) {
	eng := newUsersEngine(t)
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30"},
		[]string{"2", "Bob", "25"},
	)

	cols, rows, err := eng.Select("users", []string{"*"}, "", nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if want := []string{"id", "name", "age"}; !reflect.DeepEqual(cols, want) {
		t.Fatalf("columns = %v, want %v", cols, want)
	}
	want := []storage.Row{{"1", "Alice", "30"}, {"2", "Bob", "25"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestInsertPartialColumnList(t *testing.T) {
	eng := newUsersEngine(t)

	n, err := eng.Insert("users", []string{"id", "name"}, [][]string{{"1", "Alice"}})
	if err != nil || n != 1 {
		t.Fatalf("Insert = (%d, %v), want (1, nil)", n, err)
	}

	// The unlisted age column defaulted to NULL.
	_, rows, err := eng.Select("users", nil, "age IS NULL", nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "Alice" {
		t.Fatalf("rows = %v, want Alice with NULL age", rows)
	}
}

func TestInsertConstraintScenario(t *testing.T) {
	// users(id INT PRIMARY KEY NOT NULL, name VARCHAR(5))
	eng := New(storage.New())
	if err := eng.CreateTable("users", []storage.Column{
		{Name: "id", Type: storage.Int(10), Primary: true, NotNull: true},
		{Name: "name", Type: storage.Varchar(5)},
	}); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	if n, err := eng.Insert("users", nil, [][]string{{"1", "Alice"}}); err != nil || n != 1 {
		t.Fatalf("first insert = (%d, %v), want (1, nil)", n, err)
	}

	// Duplicate primary key.
	_, err := eng.Insert("users", nil, [][]string{{"1", "Bob"}})
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) || dup.Value != "1" {
		t.Fatalf("expected DuplicateKeyError for \"1\", got %v", err)
	}

	// VARCHAR(5) overflow.
	_, err = eng.Insert("users", nil, [][]string{{"2", "TooLong"}})
	var long *ValueTooLongError
	if !errors.As(err, &long) || long.Column != "name" || long.Max != 5 {
		t.Fatalf("expected ValueTooLongError on name, got %v", err)
	}

	// NULL primary key.
	_, err = eng.Insert("users", nil, [][]string{{"", "Carl"}})
	var missing *MissingValueError
	if !errors.As(err, &missing) || missing.Column != "id" {
		t.Fatalf("expected MissingValueError on id, got %v", err)
	}

	// Non-numeric INT.
	_, err = eng.Insert("users", nil, [][]string{{"abc", "Dan"}})
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) || mismatch.Column != "id" {
		t.Fatalf("expected TypeMismatchError on id, got %v", err)
	}

	// Failed inserts left the table untouched.
	tbl, _ := eng.Database().Table("users")
	if len(tbl.Data) != 1 {
		t.Fatalf("table has %d rows after failed inserts, want 1", len(tbl.Data))
	}
}

func TestInsertStopsAtFirstBadRow(t *testing.T) {
	eng := newUsersEngine(t)

	n, err := eng.Insert("users", nil, [][]string{
		{"1", "Alice", "30"},
		{"1", "Bob", "25"},   // duplicate key: aborts here
		{"3", "Carol", "40"}, // never reached
	})
	if err == nil {
		t.Fatalf("expected an error on the duplicate row")
	}
	if n != 1 {
		t.Fatalf("inserted %d rows before the failure, want 1", n)
	}
	tbl, _ := eng.Database().Table("users")
	if len(tbl.Data) != 1 {
		t.Fatalf("table has %d rows, want 1 (earlier rows stay, later rows aborted)", len(tbl.Data))
	}
}

func TestSelectProjectionAndCondition(t *testing.T) {
	eng := newUsersEngine(t)
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30"},
		[]string{"2", "Bob", "25"},
		[]string{"3", "Charlie", "35"},
	)

	cols, rows, err := eng.Select("users", []string{"name"}, "age > 28", nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if !reflect.DeepEqual(cols, []string{"name"}) {
		t.Fatalf("columns = %v, want [name]", cols)
	}
	want := []storage.Row{{"Alice"}, {"Charlie"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}

	// Unknown projected column is a statement error.
	_, _, err = eng.Select("users", []string{"salary"}, "", nil)
	var notFound *ColumnNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
}

func TestSelectOrderBy(t *testing.T) {
	eng := newUsersEngine(t)
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30"},
		[]string{"2", "Bob", "25"},
		[]string{"3", "Charlie", "35"},
	)

	// Ascending on age: Bob, Alice, Charlie.
	_, rows, err := eng.Select("users", []string{"name"}, "", []sql.OrderKey{{Column: "age"}})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	want := []storage.Row{{"Bob"}, {"Alice"}, {"Charlie"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("ascending rows = %v, want %v", rows, want)
	}

	// Descending reverses.
	_, rows, err = eng.Select("users", []string{"name"}, "", []sql.OrderKey{{Column: "age", Desc: true}})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	want = []storage.Row{{"Charlie"}, {"Alice"}, {"Bob"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("descending rows = %v, want %v", rows, want)
	}

	// The sort key does not have to be projected: ordering above was on
	// age while only name was returned. An unknown key is an error.
	_, _, err = eng.Select("users", []string{"name"}, "", []sql.OrderKey{{Column: "height"}})
	var notFound *ColumnNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ColumnNotFoundError for sort key, got %v", err)
	}
}

func TestSelectMultiKeySort(t *testing.T) {
	eng := New(storage.New())
	if err := eng.CreateTable("users", []storage.Column{
		{Name: "id", Type: storage.Int(10), Primary: true, NotNull: true},
		{Name: "name", Type: storage.Varchar(100)},
		{Name: "age", Type: storage.Int(10)},
		{Name: "score", Type: storage.Int(10)},
	}); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30", "85"},
		[]string{"2", "Bob", "25", "90"},
		[]string{"3", "Alice", "35", "80"},
	)

	// name ascending, then age descending within equal names.
	_, rows, err := eng.Select("users", []string{"name", "age"}, "",
		[]sql.OrderKey{{Column: "name"}, {Column: "age", Desc: true}})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	want := []storage.Row{{"Alice", "35"}, {"Alice", "30"}, {"Bob", "25"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestSortIsStable(t *testing.T) {
	eng := newUsersEngine(t)
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30"},
		[]string{"2", "Bob", "30"},
		[]string{"3", "Carol", "30"},
	)

	// All ages equal: storage order is preserved.
	_, rows, err := eng.Select("users", []string{"name"}, "", []sql.OrderKey{{Column: "age"}})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	want := []storage.Row{{"Alice"}, {"Bob"}, {"Carol"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v (stable order)", rows, want)
	}
}

func TestUpdateWithCondition(t *testing.T) {
	eng := newUsersEngine(t)
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30"},
		[]string{"2", "Bob", "25"},
	)

	n, err := eng.Update("users", []sql.Assignment{{Column: "age", Value: "26"}}, "name = 'Bob'")
	if err != nil || n != 1 {
		t.Fatalf("Update = (%d, %v), want (1, nil)", n, err)
	}

	_, rows, err := eng.Select("users", []string{"age"}, "name = 'Bob'", nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "26" {
		t.Fatalf("Bob's age = %v, want 26", rows)
	}
}

func TestUpdatePrimaryKeyRules(t *testing.T) {
	eng := newUsersEngine(t)
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30"},
		[]string{"2", "Bob", "25"},
	)

	// Writing a key back to itself is a no-op rename and is allowed.
	n, err := eng.Update("users", []sql.Assignment{{Column: "id", Value: "1"}}, "name = 'Alice'")
	if err != nil || n != 1 {
		t.Fatalf("self-rename = (%d, %v), want (1, nil)", n, err)
	}

	// Colliding with a different row's key is rejected.
	_, err = eng.Update("users", []sql.Assignment{{Column: "id", Value: "2"}}, "name = 'Alice'")
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) || dup.Value != "2" {
		t.Fatalf("expected DuplicateKeyError for \"2\", got %v", err)
	}

	// Constraint failures keep the row untouched.
	_, rows, _ := eng.Select("users", []string{"id"}, "name = 'Alice'", nil)
	if len(rows) != 1 || rows[0][0] != "1" {
		t.Fatalf("Alice's id = %v, want 1", rows)
	}
}

func TestUpdateWithoutConditionTouchesAllRows(t *testing.T) {
	eng := newUsersEngine(t)
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30"},
		[]string{"2", "Bob", "25"},
	)

	n, err := eng.Update("users", []sql.Assignment{{Column: "age", Value: "NULL"}}, "")
	if err != nil || n != 2 {
		t.Fatalf("Update = (%d, %v), want (2, nil)", n, err)
	}

	_, rows, _ := eng.Select("users", nil, "age IS NOT NULL", nil)
	if len(rows) != 0 {
		t.Fatalf("found %d rows with non-NULL age, want 0", len(rows))
	}
}

func TestDelete(t *testing.T) {
	eng := newUsersEngine(t)
	mustInsert(t, eng, "users",
		[]string{"1", "Alice", "30"},
		[]string{"2", "Bob", "25"},
		[]string{"3", "Charlie", "35"},
	)

	n, err := eng.Delete("users", "age > 28")
	if err != nil || n != 2 {
		t.Fatalf("Delete = (%d, %v), want (2, nil)", n, err)
	}

	// No condition removes the rest.
	n, err = eng.Delete("users", "")
	if err != nil || n != 1 {
		t.Fatalf("Delete all = (%d, %v), want (1, nil)", n, err)
	}

	tbl, _ := eng.Database().Table("users")
	if len(tbl.Data) != 0 {
		t.Fatalf("table has %d rows, want 0", len(tbl.Data))
	}
}

func TestDropSemantics(t *testing.T) {
	eng := newUsersEngine(t)

	// Missing table without IF EXISTS: hard error, nothing dropped.
	_, err := eng.Drop([]string{"users", "ghost"}, false)
	var notFound *TableNotFoundError
	if !errors.As(err, &notFound) || notFound.Table != "ghost" {
		t.Fatalf("expected TableNotFoundError for ghost, got %v", err)
	}
	if _, ok := eng.Database().Table("users"); !ok {
		t.Fatalf("users was dropped despite the failed call")
	}

	// With IF EXISTS the missing name is skipped.
	n, err := eng.Drop([]string{"users", "ghost"}, true)
	if err != nil || n != 1 {
		t.Fatalf("Drop = (%d, %v), want (1, nil)", n, err)
	}
	if _, ok := eng.Database().Table("users"); ok {
		t.Fatalf("users still present after drop")
	}
}

func TestOperationsOnMissingTable(t *testing.T) {
	eng := New(storage.New())

	var notFound *TableNotFoundError
	if _, _, err := eng.Select("nope", nil, "", nil); !errors.As(err, &notFound) {
		t.Fatalf("Select: expected TableNotFoundError, got %v", err)
	}
	if _, err := eng.Insert("nope", nil, [][]string{{"1"}}); !errors.As(err, &notFound) {
		t.Fatalf("Insert: expected TableNotFoundError, got %v", err)
	}
	if _, err := eng.Update("nope", []sql.Assignment{{Column: "a", Value: "1"}}, ""); !errors.As(err, &notFound) {
		t.Fatalf("Update: expected TableNotFoundError, got %v", err)
	}
	if _, err := eng.Delete("nope", ""); !errors.As(err, &notFound) {
		t.Fatalf("Delete: expected TableNotFoundError, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	eng := newUsersEngine(t)

	res, err := eng.Execute(&sql.InsertStmt{
		Table: "users",
		Rows:  [][]string{{"1", "Alice", "30"}, {"2", "Bob", "25"}},
	})
	if err != nil || res.Affected != 2 {
		t.Fatalf("insert dispatch = (%+v, %v), want Affected 2", res, err)
	}

	res, err = eng.Execute(&sql.SelectStmt{
		Table:   "users",
		Columns: []string{"*"},
		Where:   "id = 1",
	})
	if err != nil {
		t.Fatalf("select dispatch failed: %v", err)
	}
	if !res.HasRows() || len(res.Rows) != 1 || res.Rows[0][1] != "Alice" {
		t.Fatalf("select dispatch rows = %v, want Alice", res.Rows)
	}

	res, err = eng.Execute(&sql.CalcStmt{Expression: "1 + 2", Result: 3})
	if err != nil {
		t.Fatalf("calc dispatch failed: %v", err)
	}
	if res.Columns[0] != "1 + 2" || res.Rows[0][0] != "3" {
		t.Fatalf("calc dispatch = %+v, want 1 + 2 => 3", res)
	}
}
