package core

import "testing"

func TestCoerceExpenditureRow(t *testing.T) {
	month, dept, rec, ok := CoerceExpenditureRow(RawRow{
		"Month":          "2024-09",
		"Department":     "Administrativo Financeiro",
		"Total":          10000.0,
		"Bonificacao 20": 500.0,
		"Employee Count": 7.0,
	})
	if !ok {
		t.Fatalf("expected row to be kept")
	}
	if month != "2024-09" || dept != "Administrativo" {
		t.Fatalf("unexpected keys: %q %q", month, dept)
	}
	want := Record{TotalBeforeBonus: 10000, Bonus: 500, EmployeeCount: 7, TotalWithBonus: 10500}
	if rec != want {
		t.Fatalf("expected %+v, got %+v", want, rec)
	}
}

func TestCoerceExpenditureRowZeroDefaults(t *testing.T) {
	// Unparseable, null, and absent numeric fields all degrade to zero.
	_, _, rec, ok := CoerceExpenditureRow(RawRow{
		"Month":          "2024-09",
		"Department":     "Apoio",
		"Total":          "N/A",
		"Bonificacao 20": nil,
		// Employee Count absent
	})
	if !ok {
		t.Fatalf("expected row to be kept")
	}
	if rec != (Record{}) {
		t.Fatalf("expected all-zero record, got %+v", rec)
	}
}

func TestCoerceExpenditureRowGrandTotalField(t *testing.T) {
	cases := []struct {
		name string
		row  RawRow
		want float64
	}{
		{"explicit field wins", RawRow{"Total": 100.0, "Bonificacao 20": 20.0, "Total Geral": 150.0}, 150},
		{"computed when absent", RawRow{"Total": 100.0, "Bonificacao 20": 20.0}, 120},
		{"computed when unparseable", RawRow{"Total": 100.0, "Bonificacao 20": 20.0, "Total Geral": "n/a"}, 120},
		{"explicit zero kept", RawRow{"Total": 100.0, "Bonificacao 20": 20.0, "Total Geral": 0.0}, 0},
	}
	for _, tc := range cases {
		tc.row["Month"] = "2024-09"
		tc.row["Department"] = "Comercial"
		_, _, rec, ok := CoerceExpenditureRow(tc.row)
		if !ok {
			t.Fatalf("%s: expected row to be kept", tc.name)
		}
		if rec.TotalWithBonus != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, rec.TotalWithBonus)
		}
	}
}

func TestCoerceExpenditureRowSkipsGrandTotal(t *testing.T) {
	for _, label := range []string{"Total Geral", "total geral", "TOTAL GERAL"} {
		_, _, _, ok := CoerceExpenditureRow(RawRow{
			"Month":      "2024-09",
			"Department": label,
			"Total":      999.0,
		})
		if ok {
			t.Fatalf("expected %q row to be skipped", label)
		}
	}
}

func TestCoerceExpenditureRowNumericStrings(t *testing.T) {
	_, _, rec, _ := CoerceExpenditureRow(RawRow{
		"Month":          "2024-09",
		"Department":     "NEC",
		"Total":          " 1234.5 ",
		"Bonificacao 20": "R$ 1.000,50",
		"Employee Count": "12",
	})
	if rec.TotalBeforeBonus != 1234.5 || rec.Bonus != 1000.5 || rec.EmployeeCount != 12 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.TotalWithBonus != 2235.0 {
		t.Fatalf("expected computed total 2235, got %v", rec.TotalWithBonus)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in  any
		out float64
		ok  bool
	}{
		{623628.74, 623628.74, true},
		{"623628.74", 623628.74, true},
		{`"R$ 623.628,74"`, 623628.74, true},
		{"R$ 490.251,93", 490251.93, true},
		{"R$ 133.723,72", 133723.72, true},
		{"12", 12, true},
		{nil, 0, false},
		{"", 0, false},
		{"N/A", 0, false},
		{true, 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumber(tc.in)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("parseNumber(%v) expected (%v, %v), got (%v, %v)", tc.in, tc.out, tc.ok, got, ok)
		}
	}
}
