package drill

// clipTag identifies the screen and problem a background result belongs
// to. Results whose tag no longer matches are dropped.
type clipTag struct {
	screen  *DrillScreen
	problem int
}

// spokenMsg is sent when a clip has been synthesized, written and played.
type spokenMsg struct {
	Tag  clipTag
	Path string
	Err  error
}

// replayedMsg is sent when a replay of the last clip finishes.
type replayedMsg struct {
	Tag clipTag
	Err error
}
