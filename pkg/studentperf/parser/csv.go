// Package parser turns loosely formatted delimited text into a RawTable.
package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Parse splits text into a header row and data rows.
// Lines are trimmed and blank lines dropped. With fewer than two lines left
// the result is an empty table, which callers treat as a rejection.
func Parse(text string) models.RawTable {
	lines := nonEmptyLines(text)
	if len(lines) < 2 {
		return models.EmptyTable()
	}

	table := models.RawTable{
		Headers: SplitLine(lines[0]),
		Rows:    make([][]string, 0, len(lines)-1),
	}
	for _, line := range lines[1:] {
		table.Rows = append(table.Rows, SplitLine(line))
	}
	return table
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range lineBreak.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// SplitLine splits one line into trimmed fields.
// A double quote toggles quoted mode and is dropped; a comma separates
// fields only outside quotes. An unterminated quote swallows the rest of
// the line.
func SplitLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}
