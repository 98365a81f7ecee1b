package problemgen

import "fmt"

// Validator checks a problem against one invariant.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "non-negative", "negative-run".
	Name() string

	// Validate returns nil if the problem passes.
	Validate(p Problem) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Row       int    // Index of the offending row, -1 when not row-specific
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("validator %q: row %d: %s", e.Validator, e.Row+1, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the validators matching what the Generator
// guarantees for cfg.
func DefaultValidators(cfg Config) []Validator {
	return []Validator{
		&NonEmptyValidator{},
		&NonNegativeValidator{},
		&NegativeRunValidator{MaxRun: cfg.MaxNegativeRun},
	}
}

// Validate runs validators in order and returns the first failure.
func Validate(p Problem, validators []Validator) *ValidationError {
	for _, v := range validators {
		if err := v.Validate(p); err != nil {
			return err
		}
	}
	return nil
}

// NonEmptyValidator requires at least one row and a non-negative first row.
type NonEmptyValidator struct{}

func (v *NonEmptyValidator) Name() string { return "non-empty" }

func (v *NonEmptyValidator) Validate(p Problem) *ValidationError {
	if len(p.Rows) == 0 {
		return &ValidationError{Validator: v.Name(), Row: -1, Message: "problem has no rows"}
	}
	if p.Rows[0] < 0 {
		return &ValidationError{Validator: v.Name(), Row: 0, Message: "starting amount is negative"}
	}
	return nil
}

// NonNegativeValidator requires every running total to stay at or above zero.
type NonNegativeValidator struct{}

func (v *NonNegativeValidator) Name() string { return "non-negative" }

func (v *NonNegativeValidator) Validate(p Problem) *ValidationError {
	for i, sum := range p.PrefixSums() {
		if sum < 0 {
			return &ValidationError{
				Validator: v.Name(),
				Row:       i,
				Message:   fmt.Sprintf("running total drops to %d", sum),
			}
		}
	}
	return nil
}

// NegativeRunValidator caps the number of consecutive negative rows.
type NegativeRunValidator struct {
	MaxRun int
}

func (v *NegativeRunValidator) Name() string { return "negative-run" }

func (v *NegativeRunValidator) Validate(p Problem) *ValidationError {
	run := 0
	for i, r := range p.Rows {
		if r >= 0 {
			run = 0
			continue
		}
		run++
		if run > v.MaxRun {
			return &ValidationError{
				Validator: v.Name(),
				Row:       i,
				Message:   fmt.Sprintf("%d consecutive subtractions (max %d)", run, v.MaxRun),
			}
		}
	}
	return nil
}
