package importer

import (
	"testing"
)

func TestParseCSVHeaderRequired(t *testing.T) {
	if _, err := ParseCSV(""); err != ErrMissingHeader {
		t.Errorf("expected ErrMissingHeader for empty input, got %v", err)
	}
}

func TestParseCSVRejectsDataRowAsHeader(t *testing.T) {
	// First line has no recognized column names, so it is a data row, not a
	// header. The whole file must be rejected rather than treating it as a
	// header and failing every subsequent row.
	if _, err := ParseCSV("Alice,alice@acme.com\nBob,bob@acme.com\n"); err != ErrMissingHeader {
		t.Errorf("expected ErrMissingHeader for headerless file, got %v", err)
	}
}

func TestParseCSVKeysFieldsByHeader(t *testing.T) {
	text := "Name,Email,Phone,Title,Company\nAlice,alice@acme.com,555-1234,CTO,Acme\n"

	rows, err := ParseCSV(text)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.Line != 2 {
		t.Errorf("line = %d, want 2", row.Line)
	}
	want := map[string]string{
		"name":    "Alice",
		"email":   "alice@acme.com",
		"phone":   "555-1234",
		"title":   "CTO",
		"company": "Acme",
	}
	for k, v := range want {
		if row.Fields[k] != v {
			t.Errorf("field %q = %q, want %q", k, row.Fields[k], v)
		}
	}
}

func TestParseCSVHeaderCaseInsensitive(t *testing.T) {
	rows, err := ParseCSV("NAME,eMaIl\nBob,bob@x.com")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if rows[0].Fields["name"] != "Bob" || rows[0].Fields["email"] != "bob@x.com" {
		t.Errorf("expected case-insensitive header match, got %v", rows[0].Fields)
	}
}

func TestParseCSVIgnoresUnrecognizedColumns(t *testing.T) {
	rows, err := ParseCSV("name,twitter,email\nBob,@bob,bob@x.com")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if _, ok := rows[0].Fields["twitter"]; ok {
		t.Error("unrecognized column must be dropped")
	}
	if rows[0].Fields["email"] != "bob@x.com" {
		t.Errorf("columns after an ignored one must still align, got %v", rows[0].Fields)
	}
}

func TestParseCSVSkipsBlankLines(t *testing.T) {
	rows, err := ParseCSV("name,email\n\nAlice,a@x.com\n\n")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Line != 3 {
		t.Errorf("line = %d, want 3 (blank lines still count)", rows[0].Line)
	}
}

func TestParseCSVShortRow(t *testing.T) {
	rows, err := ParseCSV("name,email,phone\nAlice,a@x.com")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if rows[0].Fields["phone"] != "" {
		t.Errorf("missing trailing field should be empty, got %q", rows[0].Fields["phone"])
	}
}

func TestParseCSVHandlesCRLF(t *testing.T) {
	rows, err := ParseCSV("name,email\r\nAlice,a@x.com\r\n")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if rows[0].Fields["email"] != "a@x.com" {
		t.Errorf("expected CRLF input to parse, got %v", rows[0].Fields)
	}
}
