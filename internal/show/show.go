// Package show runs the special patterns that temporarily take over the
// face: a single random demo, the chained light show and the scripted
// birthday sequence.
package show

import (
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/wordclock/internal/face"
	"github.com/coreman2200/wordclock/internal/segment"
	"github.com/coreman2200/wordclock/internal/strip"
	"github.com/coreman2200/wordclock/internal/tick"
)

// DefaultNameColor lights the name during the birthday sequence.
var DefaultNameColor = strip.RGB(248, 24, 148)

// Orchestrator owns the special pattern state. It drives the whole-strip
// segment of a board and reacts to its completion events after each
// update, never from inside one.
type Orchestrator struct {
	board     *face.Board
	now       tick.Millis
	rnd       segment.Rand
	hooks     Hooks
	nameColor strip.Color

	state State
	stage int
	step  int
	last  uint32
}

func New(board *face.Board, now tick.Millis, rnd segment.Rand, h Hooks) *Orchestrator {
	return &Orchestrator{
		board:     board,
		now:       now,
		rnd:       rnd,
		hooks:     h,
		nameColor: DefaultNameColor,
		state:     None,
		stage:     -1,
	}
}

// SetNameColor changes the birthday name color.
func (o *Orchestrator) SetNameColor(c strip.Color) { o.nameColor = c }

func (o *Orchestrator) State() State { return o.state }

// Step is the birthday cue index.
func (o *Orchestrator) Step() int { return o.step }

// Stage is the running light-show or demo stage, -1 when none.
func (o *Orchestrator) Stage() int { return o.stage }

// Active reports whether a special pattern owns the face.
func (o *Orchestrator) Active() bool { return o.state != None }

// Start clears the face and enters s. Starting None is the same as
// Clear(false).
func (o *Orchestrator) Start(s State) {
	if s == None {
		o.Clear(false)
		return
	}
	o.board.ClearWords()
	o.board.Whole().Clear()

	from := o.state
	o.state = s
	o.last = o.now()
	o.step = 0
	o.stage = -1
	log.Info().Str("pattern", string(s)).Msg("special pattern started")
	o.changed(from, s)

	switch s {
	case Demo:
		o.startDemo()
	case LightShow:
		o.startStage(0)
	}
}

// Clear leaves the special pattern, turning the whole strip off. With
// redraw set the current time is shown again.
func (o *Orchestrator) Clear(redraw bool) {
	if o.state == None {
		return
	}
	from := o.state
	o.state = None
	o.step = 0
	o.stage = -1
	o.board.Whole().Clear()
	log.Info().Str("pattern", string(from)).Bool("redraw", redraw).Msg("special pattern cleared")
	o.changed(from, None)

	if redraw && o.hooks.Redraw != nil {
		o.hooks.Redraw()
	}
}

// Toggle starts the light show from idle and stops any running pattern.
func (o *Orchestrator) Toggle() {
	if o.state == None {
		o.Start(LightShow)
		return
	}
	o.Clear(true)
}

// Update advances the special pattern by tick milliseconds.
func (o *Orchestrator) Update(tick uint32) {
	switch o.state {
	case Demo, LightShow:
		ev, done := o.board.Whole().Update(tick)
		if done {
			o.completed(ev)
		}
	case Birthday:
		o.birthday()
	}
}

func (o *Orchestrator) completed(ev segment.Event) {
	if o.state != LightShow {
		o.Clear(true)
		return
	}
	next := len(Stages)
	for i, st := range Stages {
		if st.Kind == ev.Completed {
			next = i + 1
			break
		}
	}
	o.startStage(next)
}

func (o *Orchestrator) startDemo() {
	i := o.rnd.Intn(len(Stages))
	if !o.play(i) {
		o.Clear(true)
	}
}

// startStage runs the first stage from i on that can start, ending the
// show when none is left.
func (o *Orchestrator) startStage(i int) {
	for ; i < len(Stages); i++ {
		if o.play(i) {
			return
		}
		log.Warn().Str("stage", Stages[i].Kind.String()).Msg("light show stage skipped")
	}
	o.Clear(true)
}

func (o *Orchestrator) play(i int) bool {
	st := Stages[i]
	if !o.board.Whole().Start(st.Kind, segment.Options{Interval: st.Interval, Loops: st.Loops}) {
		return false
	}
	o.stage = i
	log.Debug().Str("stage", st.Kind.String()).Uint32("interval", st.Interval).Uint8("loops", st.Loops).Msg("stage started")
	if o.hooks.StageStarted != nil {
		o.hooks.StageStarted(st)
	}
	return true
}

func (o *Orchestrator) changed(from, to State) {
	if o.hooks.Changed != nil {
		o.hooks.Changed(from, to)
	}
}
