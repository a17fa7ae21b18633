package common

import "strconv"

// FormatINR renders an amount in whole rupees using Indian digit grouping,
// e.g. 1234567 -> "₹12,34,567". Used for share messages and rendered quotes.
func FormatINR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var out []byte
	if n := len(digits); n > 3 {
		// Last three digits form the first group, then groups of two.
		head, tail := digits[:n-3], digits[n-3:]
		for len(head) > 2 {
			cut := len(head) % 2
			if cut == 0 {
				cut = 2
			}
			out = append(out, head[:cut]...)
			out = append(out, ',')
			head = head[cut:]
		}
		out = append(out, head...)
		out = append(out, ',')
		out = append(out, tail...)
	} else {
		out = []byte(digits)
	}

	formatted := "₹" + string(out)
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}
