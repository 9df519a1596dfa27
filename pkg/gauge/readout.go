package gauge

import "strconv"

// FormatReadout renders the value with exactly one decimal and passes the
// units through untouched.
func FormatReadout(value float64, units string) (valueText, unitsText string) {
	var buf [32]byte
	return string(strconv.AppendFloat(buf[:0], value, 'f', 1, 64)), units
}

// parseFixedPrec parses "%.0f", "%.1f" style formats and returns the
// precision, or -1 if the format is anything else.
func parseFixedPrec(format string) int {
	if len(format) >= 4 && format[0] == '%' && format[1] == '.' && format[len(format)-1] == 'f' {
		n := 0
		for i := 2; i < len(format)-1; i++ {
			ch := format[i]
			if ch < '0' || ch > '9' {
				return -1
			}
			n = n*10 + int(ch-'0')
			if n > maxLabelDecimals {
				return -1
			}
		}
		return n
	}
	return -1
}
