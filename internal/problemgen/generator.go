package problemgen

import (
	"fmt"
	"math/rand/v2"
)

// Generator produces random listening problems. It owns a DigitScheduler,
// so one Generator should live for a whole practice run and must not be
// shared between sessions or goroutines.
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	digits *DigitScheduler
}

// New creates a Generator drawing all randomness from rng.
func New(rng *rand.Rand, cfg Config) *Generator {
	return &Generator{
		cfg:    cfg,
		rng:    rng,
		digits: NewDigitScheduler(rng),
	}
}

// NewUnseeded creates a Generator with a randomly seeded source.
func NewUnseeded(cfg Config) *Generator {
	return New(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), cfg)
}

// Generate builds one problem. Every prefix sum of the result is
// non-negative. Negative rows that cannot be subtracted safely are
// drawn as additions instead.
func (g *Generator) Generate(opts Options) (Problem, error) {
	if err := opts.Validate(); err != nil {
		return Problem{}, err
	}

	digits, err := g.digits.Next(opts.Rows, opts.MinDigit, opts.MaxDigit)
	if err != nil {
		return Problem{}, fmt.Errorf("schedule digits: %w", err)
	}

	plan := g.planSigns(opts.Rows, opts.AllowSubtraction)

	rows := make([]int64, opts.Rows)
	var running int64
	for i, d := range digits {
		lo, hi := pow10(d-1), pow10(d)-1

		if plan.negative[i] {
			capped := min(hi, running)
			if lo <= capped {
				v := g.between(lo, capped)
				rows[i] = -v
				running -= v
				continue
			}
		}

		v := g.between(lo, hi)
		rows[i] = v
		running += v
	}

	return Problem{Rows: rows}, nil
}

// between draws uniformly from [lo, hi].
func (g *Generator) between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}

// GenerateProblem builds a single problem with an unseeded source and
// default settings, returning just the rows. The answer is their sum.
func GenerateProblem(rowCount, minDigit, maxDigit int, allowSubtraction bool) ([]int64, error) {
	p, err := NewUnseeded(DefaultConfig()).Generate(Options{
		Rows:             rowCount,
		MinDigit:         minDigit,
		MaxDigit:         maxDigit,
		AllowSubtraction: allowSubtraction,
	})
	if err != nil {
		return nil, err
	}
	return p.Rows, nil
}
