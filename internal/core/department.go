package core

import "strings"

// DepartmentKey is the short display name of a department. Spellings the
// table does not recognize pass through trimmed and become their own key, so
// an unexpected department still renders instead of failing the row.
type DepartmentKey string

// grandTotalLabel marks the sheet's pre-aggregated total row. It never
// becomes a department and is excluded from every per-department sum.
const grandTotalLabel = "total geral"

// departmentTable maps the sheet's long-form department names to their short
// display names. The table is fixed at build time and matching works on
// either side, so both spellings of a department resolve to one key.
var departmentTable = map[string]DepartmentKey{
	"Administrativo Financeiro": "Administrativo",
	"Apoio":                     "Apoio",
	"Comercial":                 "Comercial",
	"Diretoria":                 "Diretoria",
	"Jurídico Externo":          "Jurídico",
	"Marketing":                 "Marketing",
	"NEC":                       "NEC",
	"Operação Geral":            "Operação",
	"RH / Departamento Pessoal": "RH",
}

// ResolveDepartment maps a raw department spelling to its canonical short
// key. Matching is whitespace-trimmed and case-insensitive against both the
// long and the short form; no match returns the trimmed input unchanged.
func ResolveDepartment(raw string) DepartmentKey {
	name := strings.TrimSpace(raw)
	for long, short := range departmentTable {
		if strings.EqualFold(name, long) || strings.EqualFold(name, string(short)) {
			return short
		}
	}
	return DepartmentKey(name)
}

// IsGrandTotal reports whether a department label is the reserved
// pre-aggregated total row, case-insensitively.
func IsGrandTotal(d DepartmentKey) bool {
	return strings.EqualFold(strings.TrimSpace(string(d)), grandTotalLabel)
}
