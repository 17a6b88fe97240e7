package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/alan-facto/FictionBI-Dashboard/internal/cache"
	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
	"github.com/alan-facto/FictionBI-Dashboard/internal/log"
)

const defaultRange = 12

// cached wraps a read-only API handler with the snapshot gate and the
// response cache. Requests arriving before the first snapshot get 503;
// successful responses are memoized until the next refresh swaps the
// snapshot (the build time is part of the cache key).
func (s *Server) cached(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		ds := s.snapshots.Current()
		if ds == nil {
			writeError(w, http.StatusServiceUnavailable, "data not loaded yet")
			return
		}

		key := cache.Key(r.URL.Path, r.URL.RawQuery, ds.BuiltAt)
		if payload, ok := s.responseCache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(payload)
			return
		}

		rec := &recordingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rec, r)
		if rec.statusCode == http.StatusOK {
			s.responseCache.Set(key, rec.body.Bytes())
		}
	}
}

// recordingWriter tees the response body so cacheable payloads can be stored
// after the handler runs.
type recordingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(p []byte) (int, error) {
	rw.body.Write(p)
	return rw.ResponseWriter.Write(p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseRange reads the range query parameter, the number of trailing months
// to include. Missing or invalid values fall back to the default; zero or a
// negative value selects every month.
func parseRange(r *http.Request) int {
	v := strings.TrimSpace(r.URL.Query().Get("range"))
	if v == "" {
		return defaultRange
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultRange
	}
	return n
}

type monthPoint struct {
	Month string  `json:"month"`
	Label string  `json:"label"`
	Short string  `json:"short"`
	Value float64 `json:"value"`
}

func points(months []core.MonthKey, values []float64) []monthPoint {
	out := make([]monthPoint, len(months))
	for i, m := range months {
		out[i] = monthPoint{
			Month: string(m),
			Label: m.Label(),
			Short: m.Short(),
			Value: values[i],
		}
	}
	return out
}

// handleSummary reports the latest month's headline numbers plus snapshot
// metadata for the dashboard header.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds := s.snapshots.Current()
	months := ds.MonthsInRange(parseRange(r))
	if len(months) == 0 {
		writeError(w, http.StatusNotFound, "no months in dataset")
		return
	}
	latest := months[len(months)-1]

	one := []core.MonthKey{latest}
	total := ds.Series(one, core.MetricTotalExpenditure)[0]
	earnings := ds.Series(one, core.MetricEarnings)[0]
	netProfit := ds.Series(one, core.MetricNetProfit)[0]
	margin := ds.Series(one, core.MetricProfitMargin)[0]
	employees := ds.Series(one, core.MetricTotalEmployees)[0]
	avgCost := ds.Series(one, core.MetricAvgCostPerEmployee)[0]

	writeJSON(w, http.StatusOK, map[string]any{
		"month":         string(latest),
		"label":         latest.Label(),
		"months":        len(months),
		"built_at":      ds.BuiltAt,
		"expenditure":   total,
		"earnings":      earnings,
		"net_profit":    netProfit,
		"profit_margin": margin,
		"employees":     int(employees),
		"avg_cost":      avgCost,
		"expenditure_f": FormatBRL(total),
		"earnings_f":    FormatBRL(earnings),
		"net_profit_f":  FormatBRL(netProfit),
		"avg_cost_f":    FormatBRL(avgCost),
	})
}

// handleSeries returns one metric as a month-indexed series, optionally
// restricted to a comma-separated department filter.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	ds := s.snapshots.Current()

	metric, ok := core.ParseMetric(r.URL.Query().Get("metric"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown metric")
		return
	}

	var depts []core.DepartmentKey
	if raw := strings.TrimSpace(r.URL.Query().Get("departments")); raw != "" {
		for _, d := range strings.Split(raw, ",") {
			if d = strings.TrimSpace(d); d != "" {
				depts = append(depts, core.DepartmentKey(d))
			}
		}
	}

	months := ds.MonthsInRange(parseRange(r))
	values := ds.Series(months, metric, depts...)

	s.logger.DebugContext(r.Context(), "series computed",
		log.FieldMetric, string(metric),
		log.FieldMonthCount, len(months))

	writeJSON(w, http.StatusOK, map[string]any{
		"metric": string(metric),
		"kind":   string(metric.Kind()),
		"points": points(months, values),
	})
}

type breakdownRow struct {
	Department string  `json:"department"`
	Total      float64 `json:"total"`
	Bonus      float64 `json:"bonus"`
	TotalWith  float64 `json:"total_with_bonus"`
	Employees  int     `json:"employees"`
	Formatted  string  `json:"total_with_bonus_f"`
}

// handleBreakdown returns the per-department records for one month.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	ds := s.snapshots.Current()

	month, err := core.CanonicalMonth(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}
	agg, ok := ds.ByMonth[month]
	if !ok {
		writeError(w, http.StatusNotFound, "month not in dataset")
		return
	}

	rows := make([]breakdownRow, 0, len(agg.Departments))
	for _, dept := range ds.Departments {
		rec, ok := agg.Departments[dept]
		if !ok {
			continue
		}
		rows = append(rows, breakdownRow{
			Department: string(dept),
			Total:      rec.TotalBeforeBonus,
			Bonus:      rec.Bonus,
			TotalWith:  rec.TotalWithBonus,
			Employees:  rec.EmployeeCount,
			Formatted:  FormatBRL(rec.TotalWithBonus),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":       string(month),
		"label":       month.Label(),
		"departments": rows,
		"total":       agg.TotalExpenditure,
		"total_f":     FormatBRL(agg.TotalExpenditure),
		"employees":   agg.TotalEmployees,
		"earnings":    agg.Earnings,
		"earnings_f":  FormatBRL(agg.Earnings),
	})
}

// handleDepartments lists every department seen across the dataset.
func (s *Server) handleDepartments(w http.ResponseWriter, _ *http.Request) {
	ds := s.snapshots.Current()
	depts := make([]string, len(ds.Departments))
	for i, d := range ds.Departments {
		depts[i] = string(d)
	}
	writeJSON(w, http.StatusOK, map[string]any{"departments": depts})
}

// handleShare returns one department's fraction of a month's expenditure or
// headcount.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	ds := s.snapshots.Current()

	month, err := core.CanonicalMonth(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}
	dept := strings.TrimSpace(r.URL.Query().Get("department"))
	if dept == "" {
		writeError(w, http.StatusBadRequest, "department required")
		return
	}
	denominator := core.MetricTotalExpenditure
	if v := r.URL.Query().Get("denominator"); v != "" {
		m, ok := core.ParseMetric(v)
		if !ok || (m != core.MetricTotalExpenditure && m != core.MetricEarnings) {
			writeError(w, http.StatusBadRequest, "denominator must be total or earnings")
			return
		}
		denominator = m
	}

	share := core.DepartmentShare(ds, month, core.DepartmentKey(dept), denominator)
	writeJSON(w, http.StatusOK, map[string]any{
		"month":       string(month),
		"department":  string(core.ResolveDepartment(dept)),
		"denominator": string(denominator),
		"share":       share,
	})
}

// handleEarningsPerEmployee returns revenue divided by headcount per month.
// mode=company divides by the whole company's headcount; mode=operation by
// the operations department only.
func (s *Server) handleEarningsPerEmployee(w http.ResponseWriter, r *http.Request) {
	ds := s.snapshots.Current()

	mode := strings.TrimSpace(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = "company"
	}
	var dept core.DepartmentKey
	switch mode {
	case "company":
	case "operation":
		dept = s.opsDept
	default:
		writeError(w, http.StatusBadRequest, "mode must be company or operation")
		return
	}

	months := ds.MonthsInRange(parseRange(r))
	values := ds.EarningsPerEmployee(months, dept)

	writeJSON(w, http.StatusOK, map[string]any{
		"mode":   mode,
		"kind":   string(core.KindCurrency),
		"points": points(months, values),
	})
}
