package engine

import (
	"sort"
	"strings"

	"rowdb/internal/sql"
	"rowdb/internal/storage"
)

// sortKey is an ORDER BY key resolved against a table: the column's
// position, its type (INT compares numerically, VARCHAR byte-wise),
// and the direction.
type sortKey struct {
	index int
	kind  storage.Kind
	desc  bool
}

// resolveSortKeys maps ORDER BY entries onto the table's columns. Keys
// resolve against the full schema, not the projection, so sorting by an
// unprojected column works.
func resolveSortKeys(t *storage.Table, orderBy []sql.OrderKey) ([]sortKey, error) {
	if len(orderBy) == 0 {
		return nil, nil
	}
	keys := make([]sortKey, len(orderBy))
	for i, o := range orderBy {
		idx, ok := t.ColumnIndex(o.Column)
		if !ok {
			return nil, &ColumnNotFoundError{Column: o.Column}
		}
		keys[i] = sortKey{index: idx, kind: t.Columns[idx].Type.Kind, desc: o.Desc}
	}
	return keys, nil
}

// sortRows orders rows by successive keys: the first key that differs
// decides a pair, a descending key flips only its own comparison, and
// rows equal on every key keep their original relative order.
func sortRows(rows []storage.Row, keys []sortKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			var c int
			if k.kind == storage.KindInt {
				a, b := asInt32(rows[i][k.index]), asInt32(rows[j][k.index])
				switch {
				case a < b:
					c = -1
				case a > b:
					c = 1
				}
			} else {
				c = strings.Compare(rows[i][k.index], rows[j][k.index])
			}
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}
