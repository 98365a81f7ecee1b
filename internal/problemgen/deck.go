package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// DigitScheduler deals digit lengths from a shuffled deck so that the same
// length does not repeat in long streaks. The deck persists across calls,
// which spreads lengths evenly over a whole practice run.
//
// A DigitScheduler is not safe for concurrent use. Each session owns its own.
type DigitScheduler struct {
	rng  *rand.Rand
	deck []int
}

// NewDigitScheduler creates a scheduler drawing from rng.
func NewDigitScheduler(rng *rand.Rand) *DigitScheduler {
	return &DigitScheduler{rng: rng}
}

// Next returns count digit lengths in [minDigit, maxDigit]. When count is
// at least 2, both minDigit and maxDigit appear in the result.
func (s *DigitScheduler) Next(count, minDigit, maxDigit int) ([]int, error) {
	if err := validateRange(minDigit, maxDigit); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidOptions, count)
	}

	// Leftover cards still inside the new range keep being dealt.
	if slices.ContainsFunc(s.deck, func(d int) bool { return d < minDigit || d > maxDigit }) {
		s.deck = nil
	}

	out := make([]int, 0, count)
	for len(out) < count {
		if len(s.deck) == 0 {
			s.deck = s.shuffled(minDigit, maxDigit)
		}
		out = append(out, s.deck[0])
		s.deck = s.deck[1:]
	}

	s.ensure(out, minDigit, maxDigit)
	s.ensure(out, maxDigit, minDigit)
	return out, nil
}

// Remaining returns a copy of the undealt part of the deck.
func (s *DigitScheduler) Remaining() []int {
	return slices.Clone(s.deck)
}

func (s *DigitScheduler) shuffled(lo, hi int) []int {
	deck := make([]int, 0, hi-lo+1)
	for d := lo; d <= hi; d++ {
		deck = append(deck, d)
	}
	s.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// ensure overwrites one slot with want when want is missing. It prefers a
// slot that does not hold keep, so patching one extreme never removes the
// other.
func (s *DigitScheduler) ensure(out []int, want, keep int) {
	if slices.Contains(out, want) {
		return
	}
	candidates := make([]int, 0, len(out))
	for i, v := range out {
		if v != keep {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		out[s.rng.IntN(len(out))] = want
		return
	}
	out[candidates[s.rng.IntN(len(candidates))]] = want
}
