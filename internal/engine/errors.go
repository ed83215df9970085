package engine

import "fmt"

// The statement-level failure kinds. Callers distinguish them with
// errors.As; every operation returns exactly one of these (or a plain
// wrapped error for internal misuse).

// TableNotFoundError reports a lookup of a table that does not exist.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Table)
}

// TableExistsError reports a create of a table whose name is already
// taken (compared case-insensitively).
type TableExistsError struct {
	Table string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Table)
}

// ColumnNotFoundError reports an unknown column in a projection, sort
// key, column list, or SET list.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// ColumnCountMismatchError reports a row whose arity does not match the
// table or the supplied column list.
type ColumnCountMismatchError struct {
	Want, Got int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count mismatch: expected %d values, got %d", e.Want, e.Got)
}

// MissingValueError reports a NULL cell in a NOT NULL or primary column.
type MissingValueError struct {
	Column string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("field %q doesn't have a default value", e.Column)
}

// TypeMismatchError reports a non-numeric value in an INT column.
type TypeMismatchError struct {
	Value, Column string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value %q is not INT for column %q", e.Value, e.Column)
}

// ValueTooLongError reports a VARCHAR cell over its maximum length.
type ValueTooLongError struct {
	Column string
	Max    int
}

func (e *ValueTooLongError) Error() string {
	return fmt.Sprintf("value too long for column %q (max %d)", e.Column, e.Max)
}

// DuplicateKeyError reports a primary-key collision with an existing row.
type DuplicateKeyError struct {
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate entry %q for key 'PRIMARY'", e.Value)
}

// ConditionParseError reports a WHERE clause the predicate compiler
// could not make sense of.
type ConditionParseError struct {
	Detail string
}

func (e *ConditionParseError) Error() string {
	return fmt.Sprintf("invalid WHERE clause: %s", e.Detail)
}
