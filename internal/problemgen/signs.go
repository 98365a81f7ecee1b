package problemgen

// signPlan marks which rows should be subtracted.
type signPlan struct {
	// negative[i] is true when row i is planned as a subtraction.
	negative []bool

	// count is the number of planned negative rows.
	count int

	// target is the minimum count the search aimed for.
	target int

	// attempts is how many candidates were drawn before the search stopped.
	attempts int
}

// satisfied reports whether the plan reached its target.
func (p signPlan) satisfied() bool {
	return p.count >= p.target
}

// planSigns picks negative interior rows. Only rows 1..rows-2 are eligible.
// The search draws up to MaxSignAttempts candidates, returning the first
// that reaches ceil(interior/2) negatives, otherwise the best one seen.
func (g *Generator) planSigns(rows int, allowSubtraction bool) signPlan {
	plan := signPlan{negative: make([]bool, rows)}
	if !allowSubtraction || rows <= 2 {
		return plan
	}

	interior := rows - 2
	plan.target = (interior + 1) / 2

	best, bestCount := plan.negative, 0
	for attempt := 1; attempt <= g.cfg.MaxSignAttempts; attempt++ {
		candidate, count := g.drawSigns(rows)
		if count > bestCount {
			best, bestCount = candidate, count
		}
		plan.attempts = attempt
		if count >= plan.target {
			break
		}
	}

	plan.negative = best
	plan.count = bestCount
	return plan
}

// drawSigns produces one candidate, never exceeding MaxNegativeRun
// consecutive negatives.
func (g *Generator) drawSigns(rows int) ([]bool, int) {
	negative := make([]bool, rows)
	count, run := 0, 0
	for i := 1; i < rows-1; i++ {
		if run >= g.cfg.MaxNegativeRun {
			run = 0
			continue
		}
		if g.rng.Float64() < g.cfg.NegativeChance {
			negative[i] = true
			count++
			run++
		} else {
			run = 0
		}
	}
	return negative, count
}
