package repository

import (
	"fmt"
	"strings"
)

// ColumnType is the logical type of a column. It is rendered differently per dialect.
type ColumnType int

const (
	Serial ColumnType = iota
	Varchar
	Text
	Date
)

// Column describes one column of a table.
type Column struct {
	Name       string
	Type       ColumnType
	Length     int
	Nullable   bool
	PrimaryKey bool
	Unique     bool
	Indexed    bool
}

// Table describes a table together with its indexes.
type Table struct {
	Name    string
	Columns []Column
}

// ContactsTable is the layout of the contacts table.
var ContactsTable = Table{
	Name: "contacts",
	Columns: []Column{
		{Name: "id", Type: Serial, PrimaryKey: true},
		{Name: "first_name", Type: Varchar, Length: 50, Indexed: true},
		{Name: "last_name", Type: Varchar, Length: 50, Indexed: true},
		{Name: "email", Type: Varchar, Length: 150, Unique: true},
		{Name: "phone", Type: Varchar, Length: 17},
		{Name: "birthday", Type: Date},
		{Name: "other", Type: Text, Nullable: true},
	},
}

// ColumnNames returns the names of all columns in table order.
func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// CreateStatements returns the DDL statements that create the table and its indexes. All of them
// can be executed repeatedly.
func (t Table) CreateStatements(d Dialect) []string {
	definitions := make([]string, 0, len(t.Columns)+1)
	var primaryKey []string
	for _, c := range t.Columns {
		definitions = append(definitions, c.Name+" "+c.sqlType(d)+c.constraints(d))
		if c.PrimaryKey {
			primaryKey = append(primaryKey, c.Name)
		}
	}
	if len(primaryKey) > 0 {
		definitions = append(definitions, "PRIMARY KEY ("+strings.Join(primaryKey, ", ")+")")
	}
	statements := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(definitions, ",\n\t")),
	}
	for _, c := range t.Columns {
		if !c.Unique && !c.Indexed {
			continue
		}
		kind := "INDEX"
		if c.Unique {
			kind = "UNIQUE INDEX"
		}
		name := fmt.Sprintf("ix_%s_%s", t.Name, c.Name)
		if d == Postgres {
			statements = append(statements,
				fmt.Sprintf("CREATE %s IF NOT EXISTS %s ON %s (%s)", kind, name, t.Name, c.Name))
		} else {
			// MySQL has no IF NOT EXISTS for indexes, so they are declared with the table.
			statements[0] = strings.TrimSuffix(statements[0], "\n)") +
				fmt.Sprintf(",\n\t%s %s (%s)\n)", kind, name, c.Name)
		}
	}
	return statements
}

func (c Column) sqlType(d Dialect) string {
	switch c.Type {
	case Serial:
		if d == Postgres {
			return "BIGSERIAL"
		}
		return "BIGINT"
	case Varchar:
		return fmt.Sprintf("VARCHAR(%d)", c.Length)
	case Date:
		return "DATE"
	default:
		return "TEXT"
	}
}

func (c Column) constraints(d Dialect) string {
	var b strings.Builder
	if !c.Nullable {
		b.WriteString(" NOT NULL")
	}
	if c.Type == Serial && d == MySQL {
		b.WriteString(" AUTO_INCREMENT")
	}
	return b.String()
}
