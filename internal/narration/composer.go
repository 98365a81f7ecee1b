package narration

import "strings"

const (
	pauseMark    = ","
	groupingMark = "."
)

// Composer turns a sequence of signed rows into a spoken script.
// Output depends only on the rows and the Config.
type Composer struct {
	cfg Config
}

// New creates a Composer. A zero GroupEvery falls back to the default.
func New(cfg Config) *Composer {
	if cfg.GroupEvery < 1 {
		cfg.GroupEvery = DefaultConfig().GroupEvery
	}
	if cfg.Grammar == "" {
		cfg.Grammar = GrammarPunctuated
	}
	return &Composer{cfg: cfg}
}

// Compose returns the full script, phrases joined by single spaces.
func (c *Composer) Compose(rows []int64) string {
	return strings.Join(c.Phrases(rows), " ")
}

// Phrases returns the script one phrase per row, followed by the closing
// phrase.
func (c *Composer) Phrases(rows []int64) []string {
	if c.cfg.Grammar == GrammarOperatorChange {
		return c.operatorChangePhrases(rows)
	}
	return c.punctuatedPhrases(rows)
}

func (c *Composer) punctuatedPhrases(rows []int64) []string {
	out := make([]string, 0, len(rows)+1)
	for i, r := range rows {
		amount := c.amount(r)
		if i == 0 {
			out = append(out, "Starting with, "+amount+pauseMark)
			continue
		}

		delim := pauseMark
		if (i+1)%c.cfg.GroupEvery == 0 {
			delim = groupingMark
		}
		if r < 0 {
			amount = "Minus " + amount
		}
		if i == len(rows)-1 {
			amount = "and, " + amount
		}
		out = append(out, amount+delim)
	}
	return append(out, "That's all.")
}

func (c *Composer) operatorChangePhrases(rows []int64) []string {
	out := make([]string, 0, len(rows)+1)
	last := "Add"
	for i, r := range rows {
		amount := c.amount(r)
		if i == 0 {
			out = append(out, "starting with, "+amount+pauseMark)
			continue
		}

		op := "Add"
		if r < 0 {
			op = "Subtract"
		}
		if op != last {
			out = append(out, op+", "+amount+pauseMark)
			last = op
			continue
		}
		out = append(out, amount+pauseMark)
	}
	return append(out, "thats all")
}

// amount spells |r| with the configured unit.
func (c *Composer) amount(r int64) string {
	w := Words(r)
	if c.cfg.Unit != "" {
		w += " " + c.cfg.Unit
	}
	return w
}

// ComposeNarration composes rows with the default configuration.
func ComposeNarration(rows []int64) string {
	return New(DefaultConfig()).Compose(rows)
}
