package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MonthKey is a canonical "YYYY-MM" month identifier. Lexicographic order
// equals chronological order, so keys sort with plain string comparison.
type MonthKey string

var ErrUnknownMonthAbbrev = errors.New("unknown month abbreviation")

// monthAbbrevs maps the Portuguese abbreviations used by the revenue sheet
// (trailing dot included) to zero-padded month numbers.
var monthAbbrevs = map[string]string{
	"jan.": "01", "fev.": "02", "mar.": "03", "abr.": "04",
	"mai.": "05", "jun.": "06", "jul.": "07", "ago.": "08",
	"set.": "09", "out.": "10", "nov.": "11", "dez.": "12",
}

var monthNamesPT = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// CanonicalMonth converts a month token to its canonical MonthKey.
// Already-canonical input ("2024-09") passes through unchanged, so the
// function is idempotent. Abbreviated input ("set.-24") is resolved
// case-insensitively with a fixed century pivot: two-digit years below 50
// mean 20YY, the rest 19YY. The pivot is deliberately not wall-clock
// relative so conversions stay deterministic.
func CanonicalMonth(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	if isCanonicalMonth(s) {
		return MonthKey(s), nil
	}
	abbr, year, ok := strings.Cut(s, "-")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMonthAbbrev, s)
	}
	num, ok := monthAbbrevs[strings.ToLower(strings.TrimSpace(abbr))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMonthAbbrev, s)
	}
	yy, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || yy < 0 || yy > 99 {
		return "", fmt.Errorf("%w: %q", ErrUnknownMonthAbbrev, s)
	}
	century := "19"
	if yy < 50 {
		century = "20"
	}
	return MonthKey(fmt.Sprintf("%s%02d-%s", century, yy, num)), nil
}

func isCanonicalMonth(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	m := int(s[5]-'0')*10 + int(s[6]-'0')
	return m >= 1 && m <= 12
}

// Label renders the key for table headings, e.g. "2024-09" -> "Setembro/2024".
// Malformed keys are returned unchanged.
func (m MonthKey) Label() string {
	year, num, ok := m.split()
	if !ok {
		return string(m)
	}
	return monthNamesPT[num-1] + "/" + year
}

// Short renders the key for chart axes, e.g. "2024-09" -> "09/24".
func (m MonthKey) Short() string {
	year, num, ok := m.split()
	if !ok {
		return string(m)
	}
	return fmt.Sprintf("%02d/%s", num, year[2:])
}

func (m MonthKey) split() (year string, month int, ok bool) {
	if !isCanonicalMonth(string(m)) {
		return "", 0, false
	}
	return string(m[:4]), int(m[5]-'0')*10 + int(m[6]-'0'), true
}
