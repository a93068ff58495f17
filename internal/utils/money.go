package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders amount with thousand separators and two decimals,
// prefixed by the currency code when one is given.
func FormatAmount(currency string, amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	whole := formatThousand(cents / 100)
	out := fmt.Sprintf("%s%s.%02d", sign, whole, cents%100)
	if c := strings.ToUpper(strings.TrimSpace(currency)); c != "" {
		return c + " " + out
	}
	return out
}

// ParseAmount parses "1,000.50" or "1000" into a float.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	return strconv.ParseFloat(s, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
