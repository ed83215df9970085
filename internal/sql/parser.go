package sql

import (
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// Parse turns one SQL statement string into a Statement descriptor.
//
// The grammar work is delegated to the sqlparser library; this layer
// converts its AST into the small shapes the engine consumes. Input
// that does not parse as SQL is tried as an arithmetic expression, so a
// calculator query like "1 + 2 * 3" works with or without a SELECT
// prefix.
func Parse(query string) (Statement, error) {
	q := strings.TrimSpace(query)
	q = strings.TrimSuffix(q, ";")
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("empty statement")
	}

	// DROP TABLE takes a name list; the library's grammar binds a
	// single name, so it is tokenized by hand.
	if isDropTable(q) {
		return parseDrop(q)
	}

	stmt, err := sqlparser.Parse(q)
	if err != nil {
		return parseCalculation(q)
	}

	switch s := stmt.(type) {
	case *sqlparser.Select:
		return parseSelect(q, s)
	case *sqlparser.DDL:
		if s.Action == sqlparser.CreateStr {
			return parseCreateTable(s)
		}
		return nil, fmt.Errorf("unsupported statement %q", s.Action)
	case *sqlparser.Insert:
		return parseInsert(s)
	case *sqlparser.Update:
		return parseUpdate(s)
	case *sqlparser.Delete:
		return parseDelete(s)
	default:
		return parseCalculation(q)
	}
}

// singleTable extracts the one table name a statement targets.
func singleTable(exprs sqlparser.TableExprs) (string, error) {
	if len(exprs) != 1 {
		return "", fmt.Errorf("exactly one target table is supported")
	}
	aliased, ok := exprs[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return "", fmt.Errorf("unsupported table expression")
	}
	name, ok := aliased.Expr.(sqlparser.TableName)
	if !ok {
		return "", fmt.Errorf("unsupported table expression")
	}
	return name.Name.String(), nil
}

// literalText renders a value expression the way the engine expects a
// raw cell: string literals without quotes, numbers as digits, NULL as
// the empty sentinel.
func literalText(expr sqlparser.Expr) (string, error) {
	switch v := expr.(type) {
	case *sqlparser.SQLVal:
		return string(v.Val), nil
	case *sqlparser.NullVal:
		return "", nil
	case *sqlparser.UnaryExpr:
		if v.Operator == "-" {
			inner, err := literalText(v.Expr)
			if err != nil {
				return "", err
			}
			return "-" + inner, nil
		}
	}
	return "", fmt.Errorf("unsupported value %s", sqlparser.String(expr))
}

// whereText re-stringifies a WHERE expression into condition text for
// the predicate compiler.
func whereText(w *sqlparser.Where) string {
	if w == nil {
		return ""
	}
	return sqlparser.String(w.Expr)
}
