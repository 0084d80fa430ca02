package show

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/wordclock/internal/face"
	"github.com/coreman2200/wordclock/internal/segment"
	"github.com/coreman2200/wordclock/internal/strip"
)

type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

type rig struct {
	t       *testing.T
	strip   *strip.Strip
	board   *face.Board
	o       *Orchestrator
	now     uint32
	redraws int
	stages  []segment.Kind
	changes []State
}

func newRig(t *testing.T, rnd segment.Rand) *rig {
	r := &rig{t: t, strip: strip.New(120, nil, strip.DefaultPost())}
	b, err := face.NewBoard(r.strip, rnd)
	require.NoError(t, err)
	r.board = b
	r.o = New(b, func() uint32 { return r.now }, rnd, Hooks{
		Redraw:       func() { r.redraws++ },
		Changed:      func(_, to State) { r.changes = append(r.changes, to) },
		StageStarted: func(st Stage) { r.stages = append(r.stages, st.Kind) },
	})
	return r
}

// run feeds large ticks until the orchestrator returns to none.
func (r *rig) run(max int) int {
	for i := 1; i <= max; i++ {
		r.now += 1000
		r.o.Update(1000)
		if !r.o.Active() {
			return i
		}
	}
	r.t.Fatalf("still %s after %d passes", r.o.State(), max)
	return 0
}

func TestLightShowVisitsEveryStageInOrder(t *testing.T) {
	r := newRig(t, fixedRand(3))
	r.o.Start(LightShow)
	assert.Equal(t, LightShow, r.o.State())

	passes := r.run(100000)

	want := []segment.Kind{
		segment.HueCycle, segment.RainbowCycle, segment.TheaterChase, segment.ColorWipe,
		segment.Scanner, segment.BoxZoom, segment.Snake,
	}
	assert.Equal(t, want, r.stages)
	assert.Equal(t, 256*10+255*5+120+240*5+120*4+10*3+240*4, passes)
	assert.Equal(t, []State{LightShow, None}, r.changes)
	assert.Equal(t, 1, r.redraws)
	assert.Equal(t, segment.None, r.board.Whole().Kind())
	assert.Equal(t, -1, r.o.Stage())
}

func TestLightShowUsesStageSettings(t *testing.T) {
	r := newRig(t, fixedRand(0))
	r.o.Start(LightShow)
	w := r.board.Whole()
	assert.Equal(t, segment.HueCycle, w.Kind())
	assert.Equal(t, uint32(4), w.Interval())

	// three ticks below the interval do not step
	r.o.Update(1)
	r.o.Update(1)
	r.o.Update(1)
	assert.Equal(t, 0, w.Index())
	r.o.Update(1)
	assert.Equal(t, 1, w.Index())
}

func TestDemoRunsOneStage(t *testing.T) {
	r := newRig(t, fixedRand(2))
	r.o.Start(Demo)
	require.Equal(t, []segment.Kind{segment.TheaterChase}, r.stages)
	assert.Equal(t, 2, r.o.Stage())

	passes := r.run(1000)
	assert.Equal(t, 120, passes)
	assert.Equal(t, 1, r.redraws)
	assert.Len(t, r.stages, 1)
}

func TestStartClearsTheFace(t *testing.T) {
	r := newRig(t, fixedRand(0))
	r.board.Apply(face.Decode(10, 10))
	r.board.UpdateWords(1000)
	require.NotEmpty(t, r.board.Lit())

	r.o.Start(Birthday)
	assert.Empty(t, r.board.Lit())
	for i := 0; i < 120; i++ {
		assert.Equal(t, strip.Off, r.strip.Pixel(i))
	}
}

func TestToggle(t *testing.T) {
	r := newRig(t, fixedRand(0))
	r.o.Toggle()
	assert.Equal(t, LightShow, r.o.State())
	r.o.Update(4)

	r.o.Toggle()
	assert.Equal(t, None, r.o.State())
	assert.Equal(t, 1, r.redraws)
	assert.Equal(t, segment.None, r.board.Whole().Kind())
	assert.Equal(t, strip.Off, r.strip.Pixel(0))

	r.o.Toggle()
	assert.Equal(t, LightShow, r.o.State())
	r.o.Start(Demo)
	assert.Equal(t, Demo, r.o.State())
	r.o.Toggle()
	assert.Equal(t, None, r.o.State())
}

func TestClearWhenIdleDoesNothing(t *testing.T) {
	r := newRig(t, fixedRand(0))
	r.o.Clear(true)
	r.o.Start(None)
	assert.Equal(t, 0, r.redraws)
	assert.Empty(t, r.changes)
}

func TestBirthdayScript(t *testing.T) {
	r := newRig(t, fixedRand(0))
	r.o.Start(Birthday)

	r.now += 1999
	r.o.Update(0)
	assert.Equal(t, 0, r.o.Step())

	r.now++
	r.o.Update(0)
	assert.Equal(t, 1, r.o.Step())
	assert.Equal(t, []face.ID{face.Happy}, r.board.Lit())

	r.now += 2000
	r.o.Update(0)
	assert.Equal(t, []face.ID{face.Happy, face.Birth, face.Day}, r.board.Lit())

	r.now += 2000
	r.o.Update(0)
	assert.Equal(t, DefaultNameColor, r.strip.Pixel(67))
	assert.Equal(t, segment.SingleColor, r.board.Word(face.Alice).Kind())

	r.now += 2000
	r.o.Update(0)
	assert.Empty(t, r.board.Lit())

	// the flashes come every 200ms
	r.now += 200
	r.o.Update(0)
	assert.Len(t, r.board.Lit(), 4)
	r.now += 200
	r.o.Update(0)
	assert.Empty(t, r.board.Lit())
	assert.Equal(t, 6, r.o.Step())
}

func TestBirthdayTakesTwentyEightSteps(t *testing.T) {
	r := newRig(t, fixedRand(0))
	r.o.Start(Birthday)

	steps := 0
	for i := 0; i < 1000 && r.o.Active(); i++ {
		before := r.o.Step()
		r.now += 100
		r.o.Update(100)
		if r.o.Step() != before || !r.o.Active() {
			steps++
		}
	}
	assert.Equal(t, BirthdaySteps, steps)
	assert.Equal(t, 28, BirthdaySteps)
	assert.False(t, r.o.Active())
	assert.Equal(t, 1, r.redraws)

	// 4 lead-in waits, 9 flashes and the hold, twice
	want := 2 * (4*2000 + 9*200 + 4000)
	assert.Equal(t, uint32(want), r.now)
}
