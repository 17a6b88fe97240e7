package core

import (
	"fmt"
	"testing"
)

// elevenMonths builds a dataset spanning 2024-09..2025-07 with one
// department and predictable values.
func elevenMonths(t *testing.T) *Dataset {
	t.Helper()
	var exp []RawRow
	var rev []RevenueRow
	abbrevs := []string{"set.-24", "out.-24", "nov.-24", "dez.-24", "jan.-25", "fev.-25",
		"mar.-25", "abr.-25", "mai.-25", "jun.-25", "jul.-25"}
	for i, abbrev := range abbrevs {
		m, err := CanonicalMonth(abbrev)
		if err != nil {
			t.Fatalf("canonical %q: %v", abbrev, err)
		}
		exp = append(exp, expRow(string(m), "Operação Geral", float64(100*(i+1)), 0, float64(i+1)))
		rev = append(rev, RevenueRow{Month: abbrev, Amount: fmt.Sprintf("%d", 1000*(i+1))})
	}
	ds, err := Reconcile(exp, rev)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(ds.Months) != 11 {
		t.Fatalf("expected 11 months, got %d", len(ds.Months))
	}
	return ds
}

func TestMonthsInRange(t *testing.T) {
	ds := elevenMonths(t)
	last3 := ds.MonthsInRange(3)
	want := []MonthKey{"2025-05", "2025-06", "2025-07"}
	if len(last3) != 3 {
		t.Fatalf("expected 3 months, got %v", last3)
	}
	for i := range want {
		if last3[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, last3)
		}
	}
	if got := ds.MonthsInRange(50); len(got) != 11 {
		t.Fatalf("oversized range expected all 11 months, got %d", len(got))
	}
	if got := ds.MonthsInRange(0); len(got) != 11 {
		t.Fatalf("range 0 expected all months, got %d", len(got))
	}
}

func TestSeries(t *testing.T) {
	ds := elevenMonths(t)
	months := []MonthKey{"2024-09", "2024-10"}

	if got := ds.Series(months, MetricTotalExpenditure); got[0] != 100 || got[1] != 200 {
		t.Fatalf("total series unexpected: %v", got)
	}
	if got := ds.Series(months, MetricTotalEmployees); got[0] != 1 || got[1] != 2 {
		t.Fatalf("employees series unexpected: %v", got)
	}
	if got := ds.Series(months, MetricEarnings); got[0] != 1000 || got[1] != 2000 {
		t.Fatalf("earnings series unexpected: %v", got)
	}
	if got := ds.Series(months, MetricNetProfit); got[0] != 900 || got[1] != 1800 {
		t.Fatalf("net profit series unexpected: %v", got)
	}
	if got := ds.Series(months, MetricProfitMargin); got[0] != 90 {
		t.Fatalf("profit margin expected 90, got %v", got[0])
	}
	if got := ds.Series(months, MetricAvgCostPerEmployee); got[1] != 100 {
		t.Fatalf("avg cost per employee expected 100, got %v", got[1])
	}
	// The department filter accepts long or short spellings.
	if got := ds.Series(months, MetricDepartmentTotal, "Operação Geral"); got[0] != 100 {
		t.Fatalf("department total expected 100, got %v", got[0])
	}
	if got := ds.Series(months, MetricDepartmentHeadcount, "Operação"); got[1] != 2 {
		t.Fatalf("department headcount expected 2, got %v", got[1])
	}
}

func TestSeriesMissingDataYieldsZero(t *testing.T) {
	ds := elevenMonths(t)
	months := []MonthKey{"1999-01", "2024-09"}
	got := ds.Series(months, MetricTotalExpenditure)
	if got[0] != 0 || got[1] != 100 {
		t.Fatalf("missing month should yield 0: %v", got)
	}
	got = ds.Series([]MonthKey{"2024-09"}, MetricDepartmentTotal, "Marketing")
	if got[0] != 0 {
		t.Fatalf("missing department should yield 0: %v", got)
	}
}

func TestSeriesWithDepartmentFilterOnTotals(t *testing.T) {
	ds, err := Reconcile([]RawRow{
		expRow("2024-09", "Apoio", 100, 0, 2),
		expRow("2024-09", "Comercial", 200, 0, 3),
	}, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	months := []MonthKey{"2024-09"}
	if got := ds.Series(months, MetricTotalExpenditure, "Apoio"); got[0] != 100 {
		t.Fatalf("filtered total expected 100, got %v", got[0])
	}
	if got := ds.Series(months, MetricTotalEmployees, "Apoio", "Comercial"); got[0] != 5 {
		t.Fatalf("multi-filter headcount expected 5, got %v", got[0])
	}
}

func TestMetricKinds(t *testing.T) {
	cases := []struct {
		metric Metric
		kind   MetricKind
	}{
		{MetricTotalExpenditure, KindCurrency},
		{MetricEarnings, KindCurrency},
		{MetricNetProfit, KindCurrency},
		{MetricAvgCostPerEmployee, KindCurrency},
		{MetricDepartmentTotal, KindCurrency},
		{MetricTotalEmployees, KindCount},
		{MetricDepartmentHeadcount, KindCount},
		{MetricProfitMargin, KindPercentage},
	}
	for _, tc := range cases {
		if got := tc.metric.Kind(); got != tc.kind {
			t.Fatalf("%s expected kind %s, got %s", tc.metric, tc.kind, got)
		}
	}
}

func TestParseMetric(t *testing.T) {
	if m, ok := ParseMetric("net_profit"); !ok || m != MetricNetProfit {
		t.Fatalf("expected net_profit to parse, got %v %v", m, ok)
	}
	if _, ok := ParseMetric("bogus"); ok {
		t.Fatalf("expected bogus metric to fail")
	}
}

func TestDepartmentShare(t *testing.T) {
	ds, err := Reconcile([]RawRow{
		expRow("2024-09", "Apoio", 250, 0, 2),
		expRow("2024-09", "Comercial", 750, 0, 3),
	}, []RevenueRow{{Month: "set.-24", Amount: "2000"}})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if got := DepartmentShare(ds, "2024-09", "Apoio", MetricTotalExpenditure); got != 0.25 {
		t.Fatalf("expected share 0.25, got %v", got)
	}
	if got := DepartmentShare(ds, "2024-09", "Comercial", MetricEarnings); got != 0.375 {
		t.Fatalf("expected share 0.375, got %v", got)
	}
}

func TestDepartmentShareSafeDivision(t *testing.T) {
	ds, err := Reconcile([]RawRow{expRow("2024-09", "Apoio", 0, 0, 0)}, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	got := DepartmentShare(ds, "2024-09", "Apoio", MetricEarnings)
	if got != 0 {
		t.Fatalf("zero over zero expected 0, got %v", got)
	}
	if got := DepartmentShare(ds, "1999-01", "Apoio", MetricEarnings); got != 0 {
		t.Fatalf("missing month expected 0, got %v", got)
	}
}

func TestEarningsPerEmployee(t *testing.T) {
	ds, err := Reconcile([]RawRow{
		expRow("2024-09", "Operação Geral", 100, 0, 4),
		expRow("2024-09", "Apoio", 100, 0, 6),
	}, []RevenueRow{{Month: "set.-24", Amount: "1000"}})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	months := []MonthKey{"2024-09"}
	if got := ds.EarningsPerEmployee(months, ""); got[0] != 100 {
		t.Fatalf("company-wide expected 1000/10=100, got %v", got[0])
	}
	if got := ds.EarningsPerEmployee(months, "Operação"); got[0] != 250 {
		t.Fatalf("operations expected 1000/4=250, got %v", got[0])
	}
	if got := ds.EarningsPerEmployee(months, "Marketing"); got[0] != 0 {
		t.Fatalf("absent department expected 0, got %v", got[0])
	}
}
