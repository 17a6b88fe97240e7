package core

// MetricKind tags how a series should be formatted. Presentation code
// dispatches on this tag, never on label text.
type MetricKind string

const (
	KindCurrency   MetricKind = "currency"
	KindCount      MetricKind = "count"
	KindPercentage MetricKind = "percentage"
)

// Metric identifies one numeric series derivable from a Dataset.
type Metric string

const (
	MetricTotalExpenditure    Metric = "total"
	MetricTotalEmployees      Metric = "employees"
	MetricEarnings            Metric = "earnings"
	MetricNetProfit           Metric = "net_profit"
	MetricProfitMargin        Metric = "profit_margin"
	MetricAvgCostPerEmployee  Metric = "avg_cost_per_employee"
	MetricDepartmentTotal     Metric = "department_total"
	MetricDepartmentHeadcount Metric = "department_employees"
)

// ParseMetric resolves a query-string metric name.
func ParseMetric(s string) (Metric, bool) {
	switch m := Metric(s); m {
	case MetricTotalExpenditure, MetricTotalEmployees, MetricEarnings,
		MetricNetProfit, MetricProfitMargin, MetricAvgCostPerEmployee,
		MetricDepartmentTotal, MetricDepartmentHeadcount:
		return m, true
	}
	return "", false
}

// Kind returns the formatting tag for the metric.
func (m Metric) Kind() MetricKind {
	switch m {
	case MetricTotalEmployees, MetricDepartmentHeadcount:
		return KindCount
	case MetricProfitMargin:
		return KindPercentage
	default:
		return KindCurrency
	}
}

// MonthsInRange returns the most recent n months in ascending order.
// n <= 0 means every month; n beyond the dataset also returns every month,
// never an error.
func (d *Dataset) MonthsInRange(n int) []MonthKey {
	if n <= 0 || n >= len(d.Months) {
		return append([]MonthKey(nil), d.Months...)
	}
	return append([]MonthKey(nil), d.Months[len(d.Months)-n:]...)
}

// Series produces one value per requested month for the metric. Department
// filters restrict department-scoped metrics and the total/headcount sums;
// no filter means the whole company. A missing month or department yields 0.
func (d *Dataset) Series(months []MonthKey, metric Metric, depts ...DepartmentKey) []float64 {
	out := make([]float64, len(months))
	for i, m := range months {
		out[i] = d.value(m, metric, depts)
	}
	return out
}

func (d *Dataset) value(m MonthKey, metric Metric, depts []DepartmentKey) float64 {
	agg, ok := d.ByMonth[m]
	if !ok {
		return 0
	}
	switch metric {
	case MetricTotalExpenditure:
		if len(depts) == 0 {
			return agg.TotalExpenditure
		}
		return agg.sumTotals(depts)
	case MetricTotalEmployees:
		if len(depts) == 0 {
			return float64(agg.TotalEmployees)
		}
		return agg.sumHeadcount(depts)
	case MetricEarnings:
		return agg.Earnings
	case MetricNetProfit:
		return agg.Earnings - agg.TotalExpenditure
	case MetricProfitMargin:
		if agg.Earnings <= 0 {
			return 0
		}
		return (agg.Earnings - agg.TotalExpenditure) / agg.Earnings * 100
	case MetricAvgCostPerEmployee:
		if agg.TotalEmployees <= 0 {
			return 0
		}
		return agg.TotalExpenditure / float64(agg.TotalEmployees)
	case MetricDepartmentTotal:
		return agg.sumTotals(depts)
	case MetricDepartmentHeadcount:
		return agg.sumHeadcount(depts)
	}
	return 0
}

func (a *MonthAggregate) sumTotals(depts []DepartmentKey) float64 {
	var sum float64
	for _, d := range depts {
		sum += a.Departments[ResolveDepartment(string(d))].TotalWithBonus
	}
	return sum
}

func (a *MonthAggregate) sumHeadcount(depts []DepartmentKey) float64 {
	var sum int
	for _, d := range depts {
		sum += a.Departments[ResolveDepartment(string(d))].EmployeeCount
	}
	return float64(sum)
}

// DepartmentShare returns a department's TotalWithBonus as a fraction of the
// denominator metric for that month. A zero denominator counts as 1, so an
// absent contribution reads as 0% instead of dividing by zero.
func DepartmentShare(d *Dataset, month MonthKey, dept DepartmentKey, denominator Metric) float64 {
	agg, ok := d.ByMonth[month]
	if !ok {
		return 0
	}
	denom := d.value(month, denominator, nil)
	if denom == 0 {
		denom = 1
	}
	return agg.Departments[ResolveDepartment(string(dept))].TotalWithBonus / denom
}

// EarningsPerEmployee returns revenue divided by headcount for each month.
// An empty department divides by the whole company; otherwise only that
// department's headcount counts, which is how the dashboard reports revenue
// per operational employee. Zero headcount yields 0.
func (d *Dataset) EarningsPerEmployee(months []MonthKey, dept DepartmentKey) []float64 {
	out := make([]float64, len(months))
	for i, m := range months {
		agg, ok := d.ByMonth[m]
		if !ok {
			continue
		}
		n := agg.TotalEmployees
		if dept != "" {
			n = agg.Departments[ResolveDepartment(string(dept))].EmployeeCount
		}
		if n > 0 {
			out[i] = agg.Earnings / float64(n)
		}
	}
	return out
}
