package sql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"

	"rowdb/internal/storage"
)

// The library keeps its ColumnKeyOption constants unexported; 1 is the
// column-level PRIMARY KEY option.
const colKeyPrimary = 1

// parseCreateTable converts a parsed CREATE TABLE. A primary key may be
// declared on the column or as a table-level constraint (which the
// library surfaces as an index definition); either way the key columns
// are implicitly NOT NULL.
func parseCreateTable(ddl *sqlparser.DDL) (Statement, error) {
	name := ddl.NewName.Name.String()
	if name == "" {
		name = ddl.Table.Name.String()
	}

	spec := ddl.TableSpec
	if spec == nil || len(spec.Columns) == 0 {
		return nil, fmt.Errorf("CREATE TABLE: missing column definitions")
	}

	primary := make(map[string]bool)
	for _, idx := range spec.Indexes {
		if idx.Info != nil && idx.Info.Primary {
			for _, ic := range idx.Columns {
				primary[strings.ToLower(ic.Column.String())] = true
			}
		}
	}

	columns := make([]storage.Column, 0, len(spec.Columns))
	for _, def := range spec.Columns {
		colName := def.Name.String()

		isPrimary := int(def.Type.KeyOpt) == colKeyPrimary || primary[strings.ToLower(colName)]
		notNull := bool(def.Type.NotNull) || isPrimary

		var dt storage.DataType
		switch strings.ToLower(def.Type.Type) {
		case "int", "integer", "smallint", "mediumint", "bigint", "tinyint":
			dt = storage.Int(sizeOf(def.Type.Length, 10))
		case "varchar", "char", "text":
			dt = storage.Varchar(sizeOf(def.Type.Length, 255))
		default:
			return nil, fmt.Errorf("CREATE TABLE: unsupported data type %q for column %q", def.Type.Type, colName)
		}

		columns = append(columns, storage.Column{
			Name:    colName,
			Type:    dt,
			Primary: isPrimary,
			NotNull: notNull,
		})
	}

	return &CreateTableStmt{Table: name, Columns: columns}, nil
}

func sizeOf(length *sqlparser.SQLVal, fallback int) int {
	if length == nil {
		return fallback
	}
	n, err := strconv.Atoi(string(length.Val))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
