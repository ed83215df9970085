package engine

import (
	"rowdb/internal/storage"
)

// Engine executes parsed statements against one database. All
// operations are synchronous and run to completion; the engine takes no
// locks because the embedding contract is a single mutator per database
// (a concurrent host must serialize access itself).
type Engine struct {
	db *storage.Database
}

// New wraps a database in an engine.
func New(db *storage.Database) *Engine {
	return &Engine{db: db}
}

// Database exposes the engine's database, e.g. for snapshotting.
func (e *Engine) Database() *storage.Database {
	return e.db
}

func (e *Engine) table(name string) (*storage.Table, error) {
	t, ok := e.db.Table(name)
	if !ok {
		return nil, &TableNotFoundError{Table: name}
	}
	return t, nil
}
