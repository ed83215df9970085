package sql

import (
	"fmt"
	"strings"
)

// isDropTable reports whether the statement starts with DROP TABLE.
func isDropTable(q string) bool {
	tokens := strings.Fields(strings.ToUpper(q))
	return len(tokens) >= 2 && tokens[0] == "DROP" && tokens[1] == "TABLE"
}

// parseDrop parses:
//
//	DROP TABLE [IF EXISTS] name [, name ...]
func parseDrop(q string) (Statement, error) {
	rest := strings.TrimSpace(q[len("DROP"):])
	rest = strings.TrimSpace(rest[len("TABLE"):])

	ifExists := false
	upper := strings.ToUpper(rest)
	if strings.HasPrefix(upper, "IF ") {
		after := strings.TrimSpace(rest[len("IF"):])
		if !strings.HasPrefix(strings.ToUpper(after), "EXISTS") {
			return nil, fmt.Errorf("DROP TABLE: expected EXISTS after IF")
		}
		rest = strings.TrimSpace(after[len("EXISTS"):])
		ifExists = true
	}

	if rest == "" {
		return nil, fmt.Errorf("DROP TABLE: missing table name")
	}

	var tables []string
	for _, part := range strings.Split(rest, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, fmt.Errorf("DROP TABLE: empty table name in list")
		}
		if len(strings.Fields(name)) != 1 {
			return nil, fmt.Errorf("DROP TABLE: invalid table name %q", name)
		}
		tables = append(tables, name)
	}

	return &DropStmt{Tables: tables, IfExists: ifExists}, nil
}
