package revenue

import (
	"testing"

	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
)

func TestEmbeddedTable(t *testing.T) {
	rows, err := Rows()
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("expected 11 revenue rows, got %d", len(rows))
	}
	if rows[0].Month != "set.-24" || rows[0].Amount != "R$ 623.628,74" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	// Every embedded month must canonicalize; a bad entry is a build defect.
	for _, row := range rows {
		if _, err := core.CanonicalMonth(row.Month); err != nil {
			t.Fatalf("month %q: %v", row.Month, err)
		}
	}
}

func TestEmbeddedTableReconciles(t *testing.T) {
	rows, err := Rows()
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	ds, err := core.Reconcile(nil, rows)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(ds.Months) != 11 {
		t.Fatalf("expected 11 months, got %v", ds.Months)
	}
	if got := ds.ByMonth["2024-09"].Earnings; got != 623628.74 {
		t.Fatalf("2024-09 expected 623628.74, got %v", got)
	}
	if got := ds.ByMonth["2025-05"].Earnings; got != 133723.72 {
		t.Fatalf("2025-05 expected 133723.72, got %v", got)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := parse("Mês,Faturamento\nset.-24"); err == nil {
		t.Fatalf("expected error for short record")
	}
}
