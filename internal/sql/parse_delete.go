package sql

import (
	"fmt"

	"github.com/xwb1989/sqlparser"
)

// parseDelete converts a parsed DELETE FROM ... [WHERE ...].
func parseDelete(del *sqlparser.Delete) (Statement, error) {
	table, err := singleTable(del.TableExprs)
	if err != nil {
		return nil, fmt.Errorf("DELETE: %w", err)
	}

	return &DeleteStmt{
		Table: table,
		Where: whereText(del.Where),
	}, nil
}
