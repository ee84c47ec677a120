// ABOUTME: Delimited-file parsing for contact import
// ABOUTME: Naive comma splitting; quoted fields with embedded commas are not supported
package importer

import (
	"strings"
)

// Recognized header names, matched case-insensitively. Unrecognized columns
// are ignored.
var recognizedFields = map[string]bool{
	"name":    true,
	"email":   true,
	"phone":   true,
	"title":   true,
	"company": true,
}

// Row is one parsed data row: recognized fields keyed by normalized header
// name, plus the raw line and its 1-based position in the file.
type Row struct {
	Line   int
	Raw    string
	Fields map[string]string
}

// ParseCSV splits UTF-8 comma-separated text into rows keyed by the header.
// The first non-empty line is the header and must name at least one
// recognized column; a file that starts with a data row fails up front
// instead of producing a validation error per row. Splitting is a plain
// comma split: fields wrapped in quotes that contain embedded commas will
// come apart, a documented limitation of the import format.
func ParseCSV(text string) ([]Row, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var header []string
	var rows []Row

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if header == nil {
			header = splitHeader(line)
			if !hasRecognizedColumn(header) {
				return nil, ErrMissingHeader
			}
			continue
		}

		values := strings.Split(line, ",")
		fields := make(map[string]string, len(header))
		for col, name := range header {
			if name == "" || col >= len(values) {
				continue
			}
			fields[name] = strings.TrimSpace(values[col])
		}

		rows = append(rows, Row{
			Line:   i + 1, // 1-based file line number
			Raw:    line,
			Fields: fields,
		})
	}

	if header == nil {
		return nil, ErrMissingHeader
	}

	return rows, nil
}

// splitHeader normalizes header names, keeping only recognized columns and
// blanking the rest so their positions still count.
func splitHeader(line string) []string {
	parts := strings.Split(line, ",")
	header := make([]string, len(parts))
	for i, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if recognizedFields[name] {
			header[i] = name
		}
	}
	return header
}

// hasRecognizedColumn reports whether any header position survived
// normalization. All-blank means the first line was not a header at all.
func hasRecognizedColumn(header []string) bool {
	for _, name := range header {
		if name != "" {
			return true
		}
	}
	return false
}
