package sql

import (
	"fmt"

	"github.com/xwb1989/sqlparser"
)

// parseUpdate converts a parsed UPDATE ... SET ... [WHERE ...].
func parseUpdate(upd *sqlparser.Update) (Statement, error) {
	table, err := singleTable(upd.TableExprs)
	if err != nil {
		return nil, fmt.Errorf("UPDATE: %w", err)
	}

	set := make([]Assignment, 0, len(upd.Exprs))
	for _, ue := range upd.Exprs {
		value, err := literalText(ue.Expr)
		if err != nil {
			return nil, fmt.Errorf("UPDATE: %w", err)
		}
		set = append(set, Assignment{
			Column: ue.Name.Name.String(),
			Value:  value,
		})
	}

	return &UpdateStmt{
		Table: table,
		Set:   set,
		Where: whereText(upd.Where),
	}, nil
}
