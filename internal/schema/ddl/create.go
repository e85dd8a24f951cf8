package ddl

import (
	"fmt"
	"strings"
)

// BuildScriptPreamble returns the T-SQL header of the generated script:
// conditional database creation, unconditional drop-and-recreate of the
// target table, and the column list in original header order.
//
// The generated preamble has the form:
//
//	-- SQL Script to Create Database and Insert Data
//	IF NOT EXISTS (SELECT * FROM sys.databases WHERE name = '<db>')
//	BEGIN
//	    CREATE DATABASE [<db>];
//	END;
//	GO
//	USE [<db>];
//	IF OBJECT_ID('<table>', 'U') IS NOT NULL DROP TABLE [<table>];
//	CREATE TABLE [<table>] (
//	    [col1] NVARCHAR(MAX),[col2] NVARCHAR(MAX)
//	);
//	GO
//
// The function validates that database and table are non-empty and that at
// least one column is present.
func BuildScriptPreamble(database, table string, cols []Column) (string, error) {
	database = strings.TrimSpace(database)
	if database == "" {
		return "", fmt.Errorf("ddl: database name must not be empty")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}

	defs := make([]string, 0, len(cols))
	for _, c := range cols {
		if strings.TrimSpace(c.Name) == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", table)
		}
		defs = append(defs, quoteIdent(c.Name)+" NVARCHAR(MAX)")
	}

	var sb strings.Builder
	sb.WriteString("-- SQL Script to Create Database and Insert Data\n")
	fmt.Fprintf(&sb, "IF NOT EXISTS (SELECT * FROM sys.databases WHERE name = '%s')\n", database)
	sb.WriteString("BEGIN\n")
	fmt.Fprintf(&sb, "    CREATE DATABASE %s;\n", quoteIdent(database))
	sb.WriteString("END;\n")
	sb.WriteString("GO\n")
	fmt.Fprintf(&sb, "USE %s;\n", quoteIdent(database))
	fmt.Fprintf(&sb, "IF OBJECT_ID('%s', 'U') IS NOT NULL DROP TABLE %s;\n", table, quoteIdent(table))
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", quoteIdent(table))
	fmt.Fprintf(&sb, "    %s\n", strings.Join(defs, ","))
	sb.WriteString(");\n")
	sb.WriteString("GO\n")

	return sb.String(), nil
}

// QuoteIdent quotes a single identifier for SQL Server using bracket syntax,
// escaping any closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func QuoteIdent(id string) string {
	return quoteIdent(id)
}

func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}
