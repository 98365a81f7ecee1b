package problemgen

import (
	"errors"
	"fmt"
)

const (
	// MaxDigits bounds the digit length of a single row so that the sum of
	// MaxRows rows always fits in an int64.
	MaxDigits = 15

	// MaxRows bounds the number of rows in one problem.
	MaxRows = 100
)

// ErrInvalidOptions is returned when generation options are rejected
// before any digit lengths are scheduled.
var ErrInvalidOptions = errors.New("invalid problem options")

// Problem is one listening question: an ordered sequence of signed rows.
// A positive row is added to the running total, a negative row is
// subtracted. Row 0 is the starting amount and is never negative.
type Problem struct {
	// Rows holds the signed values in narration order.
	Rows []int64
}

// Answer returns the sum of all rows. It is recomputed on every call.
func (p Problem) Answer() int64 {
	var sum int64
	for _, r := range p.Rows {
		sum += r
	}
	return sum
}

// Len returns the number of rows.
func (p Problem) Len() int {
	return len(p.Rows)
}

// PrefixSums returns the running total after each row.
func (p Problem) PrefixSums() []int64 {
	out := make([]int64, len(p.Rows))
	var sum int64
	for i, r := range p.Rows {
		sum += r
		out[i] = sum
	}
	return out
}

// Digits returns the digit length of every row's magnitude.
func (p Problem) Digits() []int {
	out := make([]int, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = DigitLen(r)
	}
	return out
}

// Options describes the problem the learner asked for.
type Options struct {
	// Rows is the number of rows to generate (1..MaxRows).
	Rows int

	// MinDigit and MaxDigit bound the digit length of every row
	// (1..MaxDigits, MinDigit <= MaxDigit). Both extremes appear in
	// every generated problem with at least two rows.
	MinDigit int
	MaxDigit int

	// AllowSubtraction enables negative interior rows.
	AllowSubtraction bool
}

// Validate rejects option sets that must never reach the scheduler.
func (o Options) Validate() error {
	if o.Rows < 1 || o.Rows > MaxRows {
		return fmt.Errorf("%w: rows must be between 1 and %d, got %d", ErrInvalidOptions, MaxRows, o.Rows)
	}
	return validateRange(o.MinDigit, o.MaxDigit)
}

func validateRange(minDigit, maxDigit int) error {
	if minDigit < 1 || maxDigit > MaxDigits {
		return fmt.Errorf("%w: digits must be between 1 and %d, got %d-%d", ErrInvalidOptions, MaxDigits, minDigit, maxDigit)
	}
	if minDigit > maxDigit {
		return fmt.Errorf("%w: min digit %d exceeds max digit %d", ErrInvalidOptions, minDigit, maxDigit)
	}
	return nil
}

// DigitLen returns the number of decimal digits in |n|. Zero has one digit.
func DigitLen(n int64) int {
	if n < 0 {
		n = -n
	}
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// pow10 returns 10^n for 0 <= n <= 18.
func pow10(n int) int64 {
	v := int64(1)
	for range n {
		v *= 10
	}
	return v
}
