package problemgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotANumber is returned when the learner's input cannot be read as an
// integer after normalization.
var ErrNotANumber = errors.New("not a number")

// thousandsSeparators are stripped from learner input before parsing.
var thousandsSeparators = strings.NewReplacer(",", "", "，", "", "_", "")

// ParseAnswer reads a typed answer.
//
// Normalization rules:
// - Surrounding whitespace is trimmed
// - Thousands separators are removed (e.g., "1,220" reads as 1220)
// - Leading zeros and an explicit sign are accepted (e.g., "+007" is 7)
func ParseAnswer(input string) (int64, error) {
	clean := thousandsSeparators.Replace(strings.TrimSpace(input))
	if clean == "" {
		return 0, fmt.Errorf("%w: empty answer", ErrNotANumber)
	}
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}
	return n, nil
}

// CheckAnswer compares the learner's input against the problem's sum and
// returns the parsed value. A malformed input is reported as
// ErrNotANumber, never as a wrong answer.
func CheckAnswer(input string, p Problem) (given int64, correct bool, err error) {
	given, err = ParseAnswer(input)
	if err != nil {
		return 0, false, err
	}
	return given, given == p.Answer(), nil
}
