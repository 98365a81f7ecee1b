package speech

const (
	MinLevel = 1
	MaxLevel = 10
)

// PlaybackRate maps a speed level to a player rate multiplier:
// level 1 plays at 0.6x, level 5 at 1.0x, level 10 at 1.5x.
// Levels outside 1..10 are clamped. The rate is for the player only;
// synthesis always runs at natural speed.
func PlaybackRate(level int) float64 {
	level = min(max(level, MinLevel), MaxLevel)
	return 0.5 + float64(level)*0.1
}
