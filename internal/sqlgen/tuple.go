// Package sqlgen renders CSV data rows as batched T-SQL INSERT statements.
package sqlgen

import "strings"

// quoteStripper removes every single- and double-quote character from a
// field's content before it is rendered as a SQL literal.
var quoteStripper = strings.NewReplacer("'", "", `"`, "")

// RowToTuple renders one CSV data row as a parenthesized SQL value tuple.
//
// Per field, in original order:
//   - all single- and double-quote characters are stripped from the content;
//   - if the resulting value is empty, the unquoted literal NULL is emitted;
//   - otherwise the value is wrapped in single quotes.
//
// Quote-stripping happens before the emptiness test, so a field containing
// only quote characters becomes NULL. All values are rendered as text
// literals; no numeric or date typing is applied.
func RowToTuple(fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		v := quoteStripper.Replace(f)
		if v == "" {
			parts[i] = "NULL"
		} else {
			parts[i] = "'" + v + "'"
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
