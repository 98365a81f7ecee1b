package speech

// CharCost is the price of a character-billed speech model.
type CharCost struct {
	PerMChar float64 // USD per 1M input characters
}

// Cost returns the USD cost of synthesizing chars characters.
func (c CharCost) Cost(chars int) float64 {
	return float64(chars) * c.PerMChar / 1_000_000
}

// LookupCost returns the pricing for a resolved model ID, or nil when the
// model is unknown or not billed per character.
func LookupCost(modelID string) *CharCost {
	if c, ok := charCosts[modelID]; ok {
		return &c
	}
	return nil
}

// Last updated: 2026-02-15.
var charCosts = map[string]CharCost{
	"tts-1":    {15},
	"tts-1-hd": {30},
	"mock":     {0},
}
