package google

import "testing"

func TestRowsFromValues(t *testing.T) {
	values := [][]any{
		{"Month", "Department", "Total", "Bonificacao 20", "Employee Count"},
		{"2024-09", "Apoio", 100.0, 10.0, 2.0},
		{"2024-09", "Comercial", "200", "", 3.0},
	}
	rows := rowsFromValues(values)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Department"] != "Apoio" || rows[0]["Total"] != 100.0 {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1]["Total"] != "200" {
		t.Fatalf("string cells must survive untouched: %v", rows[1])
	}
}

func TestRowsFromValuesRagged(t *testing.T) {
	values := [][]any{
		{"Month", "Department", "Total"},
		{"2024-09"},                              // short row
		{"2024-10", "Apoio", 10.0, "extra cell"}, // long row
	}
	rows := rowsFromValues(values)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if _, ok := rows[0]["Department"]; ok {
		t.Fatalf("short row should not invent cells: %v", rows[0])
	}
	if len(rows[1]) != 3 {
		t.Fatalf("extra cells beyond the header should be dropped: %v", rows[1])
	}
}

func TestRowsFromValuesEmpty(t *testing.T) {
	if got := rowsFromValues(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := rowsFromValues([][]any{{"Month"}}); got != nil {
		t.Fatalf("header-only sheet expected nil, got %v", got)
	}
}
