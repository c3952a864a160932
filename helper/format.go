package helper

import "strconv"

// FormatAmount renders an integer amount with thousands separators for CLI
// output, e.g. 1250000 -> "1.250.000 VND".
func FormatAmount(amount int64, currency string) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}

	res := string(out)
	if neg {
		res = "-" + res
	}
	if currency != "" {
		res += " " + currency
	}
	return res
}
