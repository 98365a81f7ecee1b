package narration

import "strings"

var ones = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// scales are the short-scale group names, lowest first.
var scales = [...]string{
	"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion",
}

// Words spells the magnitude of n in English, e.g. 1205 is
// "one thousand two hundred five". The spoken form never contains "and"
// or commas. Tens and units are hyphenated ("twenty-one").
func Words(n int64) string {
	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
	}
	if u == 0 {
		return ones[0]
	}

	var groups []string
	for scale := 0; u > 0; scale++ {
		g := int(u % 1000)
		u /= 1000
		if g == 0 {
			continue
		}
		words := groupWords(g)
		if scales[scale] != "" {
			words += " " + scales[scale]
		}
		groups = append(groups, words)
	}

	// Groups were collected lowest first.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, " ")
}

// groupWords spells 1..999.
func groupWords(n int) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, ones[h]+" hundred")
	}
	if r := n % 100; r > 0 {
		parts = append(parts, underHundred(r))
	}
	return strings.Join(parts, " ")
}

func underHundred(n int) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + "-" + ones[n%10]
}
