package sql

import (
	"fmt"

	"github.com/xwb1989/sqlparser"
)

// parseSelect converts a parsed SELECT. A FROM-less SELECT (the library
// normalizes it to the dual pseudo-table) is a scalar calculation, not
// a table query.
func parseSelect(raw string, sel *sqlparser.Select) (Statement, error) {
	if isFromless(sel) {
		return parseCalculation(raw)
	}

	table, err := singleTable(sel.From)
	if err != nil {
		return nil, fmt.Errorf("SELECT: %w", err)
	}

	columns := make([]string, 0, len(sel.SelectExprs))
	for _, se := range sel.SelectExprs {
		switch item := se.(type) {
		case *sqlparser.StarExpr:
			columns = append(columns, "*")
		case *sqlparser.AliasedExpr:
			col, ok := item.Expr.(*sqlparser.ColName)
			if !ok {
				return nil, fmt.Errorf("SELECT: unsupported column expression %s", sqlparser.String(item.Expr))
			}
			columns = append(columns, col.Name.String())
		default:
			return nil, fmt.Errorf("SELECT: unsupported select expression")
		}
	}

	var orderBy []OrderKey
	for _, o := range sel.OrderBy {
		col, ok := o.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, fmt.Errorf("SELECT: only column names are supported in ORDER BY")
		}
		orderBy = append(orderBy, OrderKey{
			Column: col.Name.String(),
			Desc:   o.Direction == sqlparser.DescScr,
		})
	}

	return &SelectStmt{
		Table:   table,
		Columns: columns,
		Where:   whereText(sel.Where),
		OrderBy: orderBy,
	}, nil
}

func isFromless(sel *sqlparser.Select) bool {
	if len(sel.From) == 0 {
		return true
	}
	if len(sel.From) == 1 {
		if aliased, ok := sel.From[0].(*sqlparser.AliasedTableExpr); ok {
			if tn, ok := aliased.Expr.(sqlparser.TableName); ok && tn.Name.String() == "dual" {
				return true
			}
		}
	}
	return false
}
