package show

import (
	"github.com/coreman2200/wordclock/internal/face"
	"github.com/coreman2200/wordclock/internal/segment"
)

// cue is one birthday step: wait since the previous step, then act.
type cue struct {
	wait uint32
	act  func(o *Orchestrator)
}

func happy(o *Orchestrator) { o.board.Word(face.Happy).Start(segment.RainbowCycle, 0) }

func birthDay(o *Orchestrator) {
	o.board.Word(face.Birth).Start(segment.RainbowCycle, 0)
	o.board.Word(face.Day).Start(segment.RainbowCycle, 0)
}

func name(o *Orchestrator) { o.board.Word(face.Alice).SetSingleColor(o.nameColor) }

func allOn(o *Orchestrator) {
	happy(o)
	birthDay(o)
	name(o)
}

func allOff(o *Orchestrator) { o.board.ClearWords() }

// The script spells the greeting word by word, flashes it five times and
// holds dark before the second round.
var cues = [...]cue{
	{2000, happy},
	{2000, birthDay},
	{2000, name},
	{2000, allOff},
	{200, allOn},
	{200, allOff},
	{200, allOn},
	{200, allOff},
	{200, allOn},
	{200, allOff},
	{200, allOn},
	{200, allOff},
	{200, allOn},
	{4000, allOff},
}

// BirthdayRounds is how many times the script runs.
const BirthdayRounds = 2

// BirthdaySteps is the total step count of the sequence.
const BirthdaySteps = BirthdayRounds * len(cues)

func (o *Orchestrator) birthday() {
	now := o.now()
	c := cues[o.step%len(cues)]
	if now-o.last < c.wait {
		return
	}
	c.act(o)
	o.step++
	o.last = now
	if o.step >= BirthdaySteps {
		o.Clear(true)
	}
}
