package show

import "github.com/coreman2200/wordclock/internal/segment"

// State enumerates the special patterns.
type State string

const (
	None      State = "none"
	Demo      State = "demo"
	LightShow State = "light-show"
	Birthday  State = "birthday"
)

// Stage is one whole-strip pattern of the light show.
type Stage struct {
	Kind     segment.Kind
	Interval uint32
	Loops    uint8
}

// Stages is the light-show chain. A demo runs one of them picked at random.
var Stages = []Stage{
	{segment.HueCycle, 4, 10},
	{segment.RainbowCycle, 8, 5},
	{segment.TheaterChase, 100, 1},
	{segment.ColorWipe, 8, 5},
	{segment.Scanner, 30, 4},
	{segment.BoxZoom, 500, 3},
	{segment.Snake, 21, 4},
}

// Hooks are injected callbacks into the clock core.
type Hooks struct {
	// Redraw shows the current time again after a pattern exits.
	Redraw func()
	// Changed is called on every state transition.
	Changed func(from, to State)
	// StageStarted reports each whole-strip pattern start.
	StageStarted func(st Stage)
}
