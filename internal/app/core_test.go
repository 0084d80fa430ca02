package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/wordclock/internal/diagnostics"
	"github.com/coreman2200/wordclock/internal/rtc"
	"github.com/coreman2200/wordclock/internal/show"
	"github.com/coreman2200/wordclock/internal/strip"
)

type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

type rig struct {
	core  *Core
	src   *rtc.Fixed
	now   uint32
	codes []string
}

func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2024, month, day, hour, minute, 0, 0, time.UTC)
}

func newRig(t *testing.T, start time.Time) *rig {
	r := &rig{src: &rtc.Fixed{T: start}}
	s := strip.New(120, nil, strip.DefaultPost())
	c, err := New(s, r.src, func() uint32 { return r.now }, fixedRand(0), DefaultSettings(),
		func(d diag.Diagnostic) { r.codes = append(r.codes, d.Code) })
	require.NoError(t, err)
	r.core = c
	return r
}

func (r *rig) pass(ms uint32) {
	r.now += ms
	r.core.Pass()
}

func (r *rig) count(code string) int {
	n := 0
	for _, c := range r.codes {
		if c == code {
			n++
		}
	}
	return n
}

func TestFirstPassDrawsTime(t *testing.T) {
	r := newRig(t, at(time.January, 1, 7, 47))
	r.pass(1)

	st := r.core.Status()
	assert.Equal(t, "it is quarter to eight oclock", st.Phrase)
	assert.Equal(t, []string{"is", "it", "quarter", "to", "eight", "oclock"}, st.Lit)
	assert.Equal(t, 7, st.Hour)
	assert.Equal(t, 47, st.Minute)
	assert.Equal(t, show.None, st.Special)
}

func TestTimeCheckedEveryInterval(t *testing.T) {
	r := newRig(t, at(time.January, 1, 7, 47))
	r.pass(1)
	require.Equal(t, 1, r.count(diag.CodeTimeDrawn))

	r.src.Set(at(time.January, 1, 7, 52))
	r.pass(5000)
	assert.Equal(t, 1, r.count(diag.CodeTimeDrawn))
	r.pass(5000)
	assert.Equal(t, 2, r.count(diag.CodeTimeDrawn))
	assert.Equal(t, "it is ten minutes to eight oclock", r.core.Status().Phrase)

	// same bucket, nothing to redraw
	r.src.Set(at(time.January, 1, 7, 54))
	r.pass(10000)
	assert.Equal(t, 2, r.count(diag.CodeTimeDrawn))
}

func TestLightShowAtNine(t *testing.T) {
	r := newRig(t, at(time.January, 1, 20, 58))
	r.pass(1)

	r.src.Set(at(time.January, 1, 21, 0))
	r.pass(10000)
	assert.Equal(t, show.LightShow, r.core.Status().Special)
	assert.Empty(t, r.core.Status().Lit)
	assert.Equal(t, 1, r.count(diag.CodeSpecialStart))

	// no time checks while the show runs
	r.pass(10000)
	r.pass(10000)
	assert.Equal(t, 1, r.count(diag.CodeTimeDrawn))

	r.core.OnShortPress()
	assert.Equal(t, show.None, r.core.Status().Special)
	assert.Equal(t, 2, r.count(diag.CodeTimeDrawn))
	assert.Equal(t, "it is nine oclock", r.core.Status().Phrase)
}

func TestNoLightShowOnFirstDraw(t *testing.T) {
	r := newRig(t, at(time.January, 1, 21, 5))
	r.pass(1)
	assert.Equal(t, show.None, r.core.Status().Special)
	assert.Equal(t, "it is five minutes past nine oclock", r.core.Status().Phrase)
}

func TestBirthday(t *testing.T) {
	r := newRig(t, at(time.May, 3, 10, 0))
	r.pass(1)
	assert.Equal(t, show.Birthday, r.core.Status().Special)
	assert.Equal(t, 0, r.count(diag.CodeTimeDrawn))

	for i := 0; i < 1000 && r.core.Show().Active(); i++ {
		r.pass(100)
	}
	require.False(t, r.core.Show().Active())
	assert.Equal(t, 1, r.count(diag.CodeTimeDrawn))

	// the day has not changed but the drawn time has, so no rerun
	r.pass(10000)
	assert.Equal(t, show.None, r.core.Status().Special)
}

func TestClockFailureHoldsDisplay(t *testing.T) {
	r := newRig(t, at(time.January, 1, 3, 30))
	r.pass(1)
	phrase := r.core.Status().Phrase

	r.src.Err = errors.New("bus nack")
	r.src.Set(at(time.January, 1, 4, 0))
	r.pass(10000)
	assert.Equal(t, phrase, r.core.Status().Phrase)
	assert.Equal(t, 1, r.count(diag.CodeTimeFailed))

	r.core.ForceRedraw()
	assert.Equal(t, phrase, r.core.Status().Phrase)
}

func TestHourOffset(t *testing.T) {
	r := newRig(t, at(time.January, 1, 3, 0))
	r.pass(1)

	r.core.AdvanceHourOffset()
	r.pass(1)
	assert.Equal(t, 1, r.core.HourOffset())
	assert.Equal(t, "it is four oclock", r.core.Status().Phrase)
	assert.Equal(t, 1, r.count(diag.CodeHourOffset))

	for i := 0; i < 11; i++ {
		r.core.AdvanceHourOffset()
	}
	assert.Equal(t, 0, r.core.HourOffset())

	r.core.SetHourOffset(-1)
	assert.Equal(t, 11, r.core.HourOffset())
}

func TestWordsAnimateBetweenChecks(t *testing.T) {
	r := newRig(t, at(time.January, 1, 0, 0))
	r.pass(1)
	r.pass(40)
	assert.NotEqual(t, strip.Off, r.core.Strip().Pixel(10))
	assert.Equal(t, strip.Off, r.core.Strip().Pixel(29))
}

func TestHandleInputs(t *testing.T) {
	r := newRig(t, at(time.January, 1, 3, 0))
	r.pass(1)

	r.core.Handle(Demo)
	assert.Equal(t, show.Demo, r.core.Show().State())
	r.core.Handle(ShortPress)
	assert.Equal(t, show.None, r.core.Show().State())
	r.core.Handle(Birthday)
	assert.Equal(t, show.Birthday, r.core.Show().State())
	r.core.Handle(ShortPress)
	r.core.Handle(HourOffset)
	assert.Equal(t, "it is four oclock", r.core.Status().Phrase)
}

func TestRunStopsOnCancel(t *testing.T) {
	r := newRig(t, at(time.January, 1, 3, 0))
	inputs := make(chan Input, 1)
	inputs <- Demo

	ctx, cancel := context.WithCancel(context.Background())
	passes := 0
	done := make(chan error)
	go func() {
		done <- r.core.Run(ctx, time.Millisecond, inputs, func(c *Core) {
			passes++
			if passes == 5 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
	assert.GreaterOrEqual(t, passes, 5)
	assert.Equal(t, show.Demo, r.core.Status().Special)
}
