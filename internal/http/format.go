package http

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatBRL renders an amount in Brazilian currency notation: dot as the
// thousands separator and comma as the decimal mark, e.g. "R$ 1.234,56".
// Values are rounded to whole centavos first.
func FormatBRL(amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))

	reais := cents / 100
	rem := cents % 100

	digits := strconv.FormatInt(reais, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	s := "R$ " + b.String() + "," + fmt.Sprintf("%02d", rem)
	if neg {
		return "-" + s
	}
	return s
}
