package engine

import (
	"fmt"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

// Update rewrites every row matching the condition with the SET list
// and returns how many rows it changed. An empty condition updates all
// rows.
//
// For each matching row the full proposed row is validated before the
// table is touched, including the primary-key scan; the scan skips the
// row being rewritten, so writing a key back to itself is allowed while
// a collision with a different row fails with DuplicateKey. A failure
// aborts the rest of the call; rows updated earlier in the same call
// stay updated (the same non-atomic policy as Insert).
func (e *Engine) Update(table string, set []sql.Assignment, condition string) (int, error) {
	t, err := e.table(table)
	if err != nil {
		return 0, err
	}
	if len(set) == 0 {
		return 0, fmt.Errorf("update %q: empty SET list", table)
	}

	assignIdx := make([]int, len(set))
	for i, a := range set {
		idx, ok := t.ColumnIndex(a.Column)
		if !ok {
			return 0, &ColumnNotFoundError{Column: a.Column}
		}
		assignIdx[i] = idx
	}

	pred, err := Compile(condition, t)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i, row := range t.Data {
		if !pred.Match(row) {
			continue
		}

		next := row.Clone()
		for j, a := range set {
			next[assignIdx[j]] = storage.Normalize(a.Value)
		}

		if err := validateRow(t, next, i); err != nil {
			return updated, err
		}
		t.Data[i] = next
		updated++
	}
	return updated, nil
}
