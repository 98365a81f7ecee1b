package problemgen

import "fmt"

// DigitInfo summarizes the digit lengths of rows for display, e.g.
// "3 digits" or "2-4 digits". Returns "-" for an empty slice.
func DigitInfo(rows []int64) string {
	if len(rows) == 0 {
		return "-"
	}

	lo, hi := DigitLen(rows[0]), DigitLen(rows[0])
	for _, r := range rows[1:] {
		d := DigitLen(r)
		lo = min(lo, d)
		hi = max(hi, d)
	}

	if lo == hi {
		if lo == 1 {
			return "1 digit"
		}
		return fmt.Sprintf("%d digits", lo)
	}
	return fmt.Sprintf("%d-%d digits", lo, hi)
}
