// Package revenue holds the embedded monthly revenue table. The table is
// trusted content shipped with the binary, not fetched over the network, and
// runs through the same coercion discipline as the expenditure feed during
// reconciliation.
package revenue

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
)

//go:embed data/faturamento.csv
var faturamentoCSV string

// Rows parses the embedded revenue table into raw rows for Reconcile.
func Rows() ([]core.RevenueRow, error) {
	return parse(faturamentoCSV)
}

func parse(raw string) ([]core.RevenueRow, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse revenue table: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	rows := make([]core.RevenueRow, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header
		rows = append(rows, core.RevenueRow{
			Month:  strings.TrimSpace(rec[0]),
			Amount: strings.TrimSpace(rec[1]),
		})
	}
	return rows, nil
}
