package parser

import "strings"

var (
	lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")
	nameQuotes = strings.NewReplacer(`"`, "")
)

// ManualRow builds a data row from a name and a comma-separated marks
// string. The result has the same shape as a parsed row: the name first,
// then one field per mark. Double quotes and line breaks cannot survive a
// parse, so they are dropped from the name and the marks; the marks are
// split with SplitLine before quotes are lost.
func ManualRow(name, marks string) []string {
	row := []string{strings.TrimSpace(nameQuotes.Replace(lineBreaks.Replace(name)))}
	marks = lineBreaks.Replace(marks)
	if strings.TrimSpace(marks) == "" {
		return row
	}
	return append(row, SplitLine(marks)...)
}

// IsBlankRow reports whether every field of row is empty.
func IsBlankRow(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
