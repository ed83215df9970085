package engine

// Drop removes the named tables and returns how many were dropped.
//
// Without ifExists, every requested name must exist; the first missing
// one fails the whole call before any table is removed. With ifExists,
// missing names are silently skipped.
func (e *Engine) Drop(tables []string, ifExists bool) (int, error) {
	if !ifExists {
		for _, name := range tables {
			if _, ok := e.db.Table(name); !ok {
				return 0, &TableNotFoundError{Table: name}
			}
		}
	}

	dropped := 0
	for _, name := range tables {
		if e.db.RemoveTable(name) {
			dropped++
		}
	}
	return dropped, nil
}
