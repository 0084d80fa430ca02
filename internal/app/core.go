// Package app ties the face together: one scheduler pass reads the time,
// advances the special pattern and every word segment, then publishes the
// result.
package app

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/wordclock/internal/diagnostics"
	"github.com/coreman2200/wordclock/internal/face"
	"github.com/coreman2200/wordclock/internal/rtc"
	"github.com/coreman2200/wordclock/internal/segment"
	"github.com/coreman2200/wordclock/internal/show"
	"github.com/coreman2200/wordclock/internal/strip"
	"github.com/coreman2200/wordclock/internal/tick"
)

// Settings are the clock behaviors taken from config.
type Settings struct {
	TimeCheckMs   uint32
	LightShowHour int
	BirthdayMonth int
	BirthdayDay   int
	NameColor     strip.Color
}

func DefaultSettings() Settings {
	return Settings{
		TimeCheckMs:   10000,
		LightShowHour: 21,
		BirthdayMonth: 5,
		BirthdayDay:   3,
		NameColor:     show.DefaultNameColor,
	}
}

// Status is a snapshot of the core for other goroutines.
type Status struct {
	Special    show.State `json:"special"`
	Stage      string     `json:"stage,omitempty"`
	Step       int        `json:"step"`
	Hour       int        `json:"hour"`
	Minute     int        `json:"minute"`
	HourOffset int        `json:"hour_offset"`
	Phrase     string     `json:"phrase,omitempty"`
	Lit        []string   `json:"lit,omitempty"`
	Passes     uint64     `json:"passes"`
}

// Core is the clock state. All methods except Status must be called from
// the goroutine running the passes.
type Core struct {
	strip *strip.Strip
	board *face.Board
	show  *show.Orchestrator
	clock *tick.Clock
	now   tick.Millis
	src   rtc.Source
	set   Settings
	diag  diag.Sink

	lastHour   int
	lastMinute int
	lastCheck  uint32
	checked    bool
	hourOffset int
	phrase     string
	passes     uint64

	mu     sync.RWMutex
	status Status
}

func New(s *strip.Strip, src rtc.Source, now tick.Millis, rnd segment.Rand, set Settings, sink diag.Sink) (*Core, error) {
	board, err := face.NewBoard(s, rnd)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	c := &Core{
		strip:      s,
		board:      board,
		clock:      tick.New(now),
		now:        now,
		src:        src,
		set:        set,
		diag:       sink,
		lastHour:   -1,
		lastMinute: -1,
	}
	c.show = show.New(board, now, rnd, show.Hooks{
		Redraw:       c.ForceRedraw,
		Changed:      c.specialChanged,
		StageStarted: c.stageStarted,
	})
	c.show.SetNameColor(set.NameColor)
	c.snapshot()
	return c, nil
}

func (c *Core) Board() *face.Board       { return c.board }
func (c *Core) Show() *show.Orchestrator { return c.show }
func (c *Core) Strip() *strip.Strip      { return c.strip }

// Pass runs one scheduler pass.
func (c *Core) Pass() {
	t := c.clock.Advance()
	c.checkTime()
	c.show.Update(t)
	c.board.UpdateWords(t)
	c.passes++
	c.snapshot()
}

// checkTime polls the clock every TimeCheckMs while no special pattern
// runs, and redraws when the hour or five-minute bucket moved.
func (c *Core) checkTime() {
	if c.show.Active() {
		return
	}
	now := c.now()
	if c.checked && now-c.lastCheck < c.set.TimeCheckMs {
		return
	}
	c.checked = true
	c.lastCheck = now

	r, err := rtc.Read(c.src, c.hourOffset)
	if err != nil {
		log.Warn().Err(err).Msg("checking the time failed")
		c.diag.Push(diag.ClockUnreadable(err))
		return
	}
	log.Debug().Int("hour", r.Hour).Int("minute", r.Minute).Msg("checking the time")

	if r.Hour == c.lastHour && face.Bucket(r.Minute) == face.Bucket(c.lastMinute) {
		return
	}
	if r.Hour == c.set.LightShowHour && r.Hour != c.lastHour && c.lastHour >= 0 {
		c.show.Start(show.LightShow)
		return
	}
	if r.Month == c.set.BirthdayMonth && r.Day == c.set.BirthdayDay {
		c.show.Start(show.Birthday)
		return
	}
	c.draw(r.Hour, r.Minute)
}

// ForceRedraw shows the current time right away. A failed read keeps the
// face as it is.
func (c *Core) ForceRedraw() {
	r, err := rtc.Read(c.src, c.hourOffset)
	if err != nil {
		log.Warn().Err(err).Msg("redraw skipped")
		c.diag.Push(diag.ClockUnreadable(err))
		return
	}
	c.draw(r.Hour, r.Minute)
}

func (c *Core) draw(hour, minute int) {
	log.Info().Int("hour", hour).Int("minute", minute).Msg("updating the time")
	c.lastHour = hour
	c.lastMinute = minute

	c.show.Clear(false)
	c.board.ClearWords()
	acts := face.Decode(hour, minute)
	c.board.Apply(acts)
	c.phrase = face.Phrase(acts)

	c.diag.Push(diag.New(diag.Info, diag.CodeTimeDrawn, c.phrase).
		With("hour", hour).With("minute", minute))
	c.snapshot()
}

// OnShortPress toggles the light show.
func (c *Core) OnShortPress() {
	c.show.Toggle()
	c.snapshot()
}

// AdvanceHourOffset moves the displayed hour forward by one, wrapping at
// twelve, and redraws.
func (c *Core) AdvanceHourOffset() {
	c.hourOffset = (c.hourOffset + 1) % 12
	log.Info().Int("offset", c.hourOffset).Msg("updating time hour offset")
	c.diag.Push(diag.New(diag.Info, diag.CodeHourOffset, "hour offset changed").With("offset", c.hourOffset))
	c.OnHourOffsetChanged()
}

// OnHourOffsetChanged redraws with the current offset.
func (c *Core) OnHourOffsetChanged() { c.ForceRedraw() }

func (c *Core) SetHourOffset(h int) {
	c.hourOffset = ((h % 12) + 12) % 12
}

func (c *Core) HourOffset() int { return c.hourOffset }

func (c *Core) OnDemo() {
	c.show.Start(show.Demo)
	c.snapshot()
}

func (c *Core) OnBirthday() {
	c.show.Start(show.Birthday)
	c.snapshot()
}

func (c *Core) specialChanged(from, to show.State) {
	code := diag.CodeSpecialStart
	if to == show.None {
		code = diag.CodeSpecialEnd
	}
	c.diag.Push(diag.New(diag.Info, code, string(to)).With("from", string(from)))
}

func (c *Core) stageStarted(st show.Stage) {
	c.diag.Push(diag.New(diag.Info, diag.CodeStage, st.Kind.String()).
		With("interval", st.Interval).With("loops", st.Loops))
}

func (c *Core) snapshot() {
	st := Status{
		Special:    c.show.State(),
		Step:       c.show.Step(),
		Hour:       c.lastHour,
		Minute:     c.lastMinute,
		HourOffset: c.hourOffset,
		Phrase:     c.phrase,
		Passes:     c.passes,
	}
	if i := c.show.Stage(); i >= 0 {
		st.Stage = show.Stages[i].Kind.String()
	}
	for _, id := range c.board.Lit() {
		st.Lit = append(st.Lit, id.String())
	}
	c.mu.Lock()
	c.status = st
	c.mu.Unlock()
}

// Status is safe to call from any goroutine.
func (c *Core) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st := c.status
	st.Lit = append([]string(nil), c.status.Lit...)
	return st
}
