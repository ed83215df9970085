package engine

// Delete removes every row matching the condition in one pass and
// returns the count removed. An empty condition empties the table.
func (e *Engine) Delete(table string, condition string) (int, error) {
	t, err := e.table(table)
	if err != nil {
		return 0, err
	}

	pred, err := Compile(condition, t)
	if err != nil {
		return 0, err
	}

	kept := t.Data[:0]
	deleted := 0
	for _, row := range t.Data {
		if pred.Match(row) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	t.Data = kept
	return deleted, nil
}
