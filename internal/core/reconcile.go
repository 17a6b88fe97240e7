package core

import (
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// RevenueRow is one entry of the embedded monthly revenue table: a
// locale-abbreviated month ("set.-24") and a BRL-formatted amount.
type RevenueRow struct {
	Month  string
	Amount string
}

// MonthAggregate is one month's merged view. TotalExpenditure and
// TotalEmployees are derived sums over Departments; Reconcile recomputes
// them after the merge and nothing mutates them independently.
type MonthAggregate struct {
	Departments      map[DepartmentKey]Record
	TotalExpenditure float64
	TotalEmployees   int
	Earnings         float64
}

// Dataset is the reconciled snapshot. It is built in a single pass and
// treated as immutable afterwards: readers hold the pointer they were given
// and a refresh publishes a brand-new Dataset instead of mutating this one.
// Months is ascending and deduplicated; ByMonth has an entry for every month
// in Months, so lookups never fail. Departments excludes the grand-total
// sentinel and is sorted for stable display order.
type Dataset struct {
	Months      []MonthKey
	Departments []DepartmentKey
	ByMonth     map[MonthKey]*MonthAggregate
	BuiltAt     time.Time
}

// Reconcile merges the expenditure feed with the revenue table into a single
// snapshot keyed by month and department. Expenditure defects degrade to
// zero per row. Only a malformed revenue month is an error: the revenue
// table is trusted embedded content, so a bad entry is a defect that should
// fail loudly rather than vanish into a zero.
func Reconcile(expenditure []RawRow, revenue []RevenueRow) (*Dataset, error) {
	byMonth := make(map[MonthKey]*MonthAggregate)
	ensure := func(m MonthKey) *MonthAggregate {
		agg, ok := byMonth[m]
		if !ok {
			agg = &MonthAggregate{Departments: make(map[DepartmentKey]Record)}
			byMonth[m] = agg
		}
		return agg
	}

	// Pre-initialize the month union from both sources so a month covered by
	// only one of them still gets a zeroed aggregate.
	for _, row := range expenditure {
		ensure(coerceMonth(row[FieldMonth]))
	}
	revMonths := make([]MonthKey, len(revenue))
	for i, rev := range revenue {
		m, err := CanonicalMonth(rev.Month)
		if err != nil {
			return nil, fmt.Errorf("revenue table row %d: %w", i+1, err)
		}
		revMonths[i] = m
		ensure(m)
	}

	deptSet := make(map[DepartmentKey]struct{})
	for _, row := range expenditure {
		month, dept, rec, ok := CoerceExpenditureRow(row)
		if !ok {
			continue
		}
		agg := ensure(month)
		if _, dup := agg.Departments[dept]; dup {
			// Last write wins; the feed is not expected to emit duplicates.
			slog.Warn("duplicate expenditure row replaced",
				"month", string(month), "department", string(dept))
		}
		agg.Departments[dept] = rec
		deptSet[dept] = struct{}{}
	}

	// Totals are derived, never accumulated during the merge, so a replaced
	// duplicate cannot leave a stale contribution behind.
	for _, agg := range byMonth {
		var total float64
		var employees int
		for _, rec := range agg.Departments {
			total += rec.TotalWithBonus
			employees += rec.EmployeeCount
		}
		agg.TotalExpenditure = total
		agg.TotalEmployees = employees
	}

	for i, rev := range revenue {
		amount, ok := parseNumber(rev.Amount)
		if !ok {
			slog.Warn("unparseable revenue amount degraded to zero",
				"month", string(revMonths[i]), "amount", rev.Amount)
		}
		byMonth[revMonths[i]].Earnings = amount
	}

	months := make([]MonthKey, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	departments := make([]DepartmentKey, 0, len(deptSet))
	for d := range deptSet {
		departments = append(departments, d)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i] < departments[j] })

	return &Dataset{
		Months:      months,
		Departments: departments,
		ByMonth:     byMonth,
		BuiltAt:     time.Now(),
	}, nil
}
