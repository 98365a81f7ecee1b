package narration

import (
	"fmt"
	"strings"
)

// Grammar selects how a script frames each row. One grammar applies to a
// whole script.
type Grammar string

const (
	// GrammarPunctuated announces every subtraction with "Minus", marks the
	// last row with "and", and ends every third row with a period so the
	// listener hears a longer pause for grouping.
	GrammarPunctuated Grammar = "punctuated"

	// GrammarOperatorChange says "Add" or "Subtract" only when the
	// operation differs from the previous row.
	GrammarOperatorChange Grammar = "operator-change"
)

// ParseGrammar resolves a grammar name. Matching is case-insensitive.
func ParseGrammar(s string) (Grammar, error) {
	switch Grammar(strings.ToLower(strings.TrimSpace(s))) {
	case GrammarPunctuated:
		return GrammarPunctuated, nil
	case GrammarOperatorChange:
		return GrammarOperatorChange, nil
	default:
		return "", fmt.Errorf("unknown narration grammar %q: must be %q or %q", s, GrammarPunctuated, GrammarOperatorChange)
	}
}

// Config controls script composition.
type Config struct {
	// Grammar is the narration style.
	Grammar Grammar

	// Unit is appended to every spoken magnitude, e.g. "dollars".
	// Empty means bare numbers.
	Unit string

	// GroupEvery is the row interval that gets the grouping pause
	// (punctuated grammar only).
	GroupEvery int
}

// DefaultConfig returns the punctuated grammar without a unit.
func DefaultConfig() Config {
	return Config{
		Grammar:    GrammarPunctuated,
		GroupEvery: 3,
	}
}

// Validate checks the grammar name and grouping interval.
func (c Config) Validate() error {
	if _, err := ParseGrammar(string(c.Grammar)); err != nil {
		return err
	}
	if c.GroupEvery < 1 {
		return fmt.Errorf("group interval must be positive, got %d", c.GroupEvery)
	}
	return nil
}
