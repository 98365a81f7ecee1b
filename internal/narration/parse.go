package narration

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoNumber is returned when a phrase holds no number words.
var ErrNoNumber = errors.New("no number words")

var wordValues = func() map[string]uint64 {
	m := make(map[string]uint64, len(ones)+len(tens))
	for i, w := range ones {
		m[w] = uint64(i)
	}
	for i, w := range tens {
		if w != "" {
			m[w] = uint64(i * 10)
		}
	}
	return m
}()

var scaleValues = func() map[string]uint64 {
	m := make(map[string]uint64, len(scales))
	v := uint64(1)
	for _, s := range scales {
		if s != "" {
			m[s] = v
		}
		v *= 1000
	}
	return m
}()

// isNumberWord reports whether w can be part of a spelled-out number.
func isNumberWord(w string) bool {
	if w == "hundred" {
		return true
	}
	if _, ok := wordValues[w]; ok {
		return true
	}
	_, ok := scaleValues[w]
	return ok
}

// ParseWords reads a number spelled the way Words spells it. It is the
// inverse of Words for non-negative values.
func ParseWords(s string) (int64, error) {
	tokens := strings.Fields(strings.ReplaceAll(strings.ToLower(s), "-", " "))
	if len(tokens) == 0 {
		return 0, ErrNoNumber
	}

	var total, current uint64
	for _, tok := range tokens {
		switch {
		case tok == "hundred":
			if current == 0 {
				return 0, fmt.Errorf("%q without a multiplier in %q", tok, s)
			}
			current *= 100
		case scaleValues[tok] > 0:
			if current == 0 {
				return 0, fmt.Errorf("%q without a multiplier in %q", tok, s)
			}
			total += current * scaleValues[tok]
			current = 0
		default:
			v, ok := wordValues[tok]
			if !ok {
				return 0, fmt.Errorf("unknown number word %q in %q", tok, s)
			}
			current += v
		}
	}
	return int64(total + current), nil
}

// Magnitudes extracts the spoken magnitudes from a narration script, in
// order. Cue words, units and punctuation are ignored; every comma or
// period closes a phrase.
func Magnitudes(script string) ([]int64, error) {
	phrases := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == '.'
	})

	var out []int64
	for _, phrase := range phrases {
		var number []string
		for _, w := range strings.Fields(strings.ToLower(phrase)) {
			for _, part := range strings.Split(w, "-") {
				if isNumberWord(part) {
					number = append(number, part)
				}
			}
		}
		if len(number) == 0 {
			continue
		}
		n, err := ParseWords(strings.Join(number, " "))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
