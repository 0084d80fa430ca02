// Package segment animates contiguous ranges of the LED strip.
//
// A Segment advances its active pattern by one step each time the ticks fed
// to Update add up to the pattern interval. Patterns with a loop limit end
// on their own: Update clears the segment and reports the completed kind
// in its returned Event, so the caller decides what runs next after the
// pass instead of from inside it.
package segment

import (
	"fmt"

	"github.com/coreman2200/wordclock/internal/layout"
	"github.com/coreman2200/wordclock/internal/strip"
)

// Pair is the two colors used by the two-color patterns.
type Pair struct {
	First, Second strip.Color
}

// Options configure a pattern start.
type Options struct {
	// Interval between steps in milliseconds; zero selects the pattern default.
	Interval uint32
	// Direction of the step index. Scanner, BoxZoom and Snake always run forward.
	Direction Direction
	// Loops before the segment clears itself; zero loops forever.
	Loops uint8
	// Colors for the two-color patterns; nil picks a complementary random pair.
	Colors *Pair
}

// Event reports a pattern that reached its loop limit.
type Event struct {
	Completed Kind
}

// The box-zoom and snake tables are tied to the 12 x 10 face wiring.
var (
	face   = layout.WordClock()
	rings  = face.Rings()
	spiral = face.Spiral()
)

// Segment owns the pixels [start, end] of a surface.
type Segment struct {
	surface    strip.Surface
	start, end int
	rnd        Rand

	anim     animation
	dir      Direction
	interval uint32
	elapsed  uint32
	total    int
	index    int
	loops    uint8
	maxLoops uint8
}

func New(surface strip.Surface, start, end int, rnd Rand) (*Segment, error) {
	if start < 0 || start > end {
		return nil, fmt.Errorf("invalid segment range [%d, %d]", start, end)
	}
	if end >= surface.Len() {
		return nil, fmt.Errorf("segment end %d outside strip of %d", end, surface.Len())
	}
	return &Segment{surface: surface, start: start, end: end, rnd: rnd}, nil
}

// Bounds returns the first and last pixel of the segment.
func (s *Segment) Bounds() (first, last int) { return s.start, s.end }
func (s *Segment) Len() int                  { return s.end - s.start + 1 }

// Kind returns the active pattern.
func (s *Segment) Kind() Kind {
	if s.anim == nil {
		return None
	}
	return s.anim.kind()
}

func (s *Segment) Index() int           { return s.index }
func (s *Segment) Steps() int           { return s.total }
func (s *Segment) Loops() uint8         { return s.loops }
func (s *Segment) Interval() uint32     { return s.interval }
func (s *Segment) Direction() Direction { return s.dir }

// Start starts kind with o, overwriting whatever was running. It returns
// false, leaving the segment untouched, for kinds that cannot run here:
// None, SingleColor (use SetSingleColor) and BoxZoom/Snake on segments
// shorter than the face.
func (s *Segment) Start(kind Kind, o Options) bool {
	var a animation
	total := 0
	dir := o.Direction

	switch kind {
	case HueCycle:
		a, total = hueCycle{seed: uint8(s.rnd.Intn(256))}, 256
	case RainbowCycle:
		a, total = rainbowCycle{}, 255
	case TheaterChase:
		a, total = theaterChase{colors: s.pick(o.Colors)}, s.Len()
	case ColorWipe:
		a, total = colorWipe{colors: s.pick(o.Colors)}, 2*s.Len()
	case Scanner:
		a, total, dir = scanner{colors: s.pick(o.Colors)}, s.Len(), Forward
	case BoxZoom:
		if s.Len() < face.Count() {
			return false
		}
		a, total, dir = boxZoom{colors: s.pick(o.Colors)}, 2*len(rings), Forward
	case Snake:
		if s.Len() < face.Count() {
			return false
		}
		a, total, dir = snake{}, 2*len(spiral), Forward
	default:
		return false
	}

	s.anim = a
	s.interval = o.Interval
	if s.interval == 0 {
		s.interval = defaultInterval(kind)
	}
	s.total = total
	s.dir = dir
	s.index = 0
	if dir == Reverse {
		s.index = total - 1
	}
	s.elapsed = 0
	s.loops = 0
	s.maxLoops = o.Loops
	return true
}

// SetSingleColor paints the whole segment once; no stepping follows.
func (s *Segment) SetSingleColor(c strip.Color) {
	s.reset()
	s.anim = single{color: c}
	s.fill(c)
	s.surface.Show()
}

// Clear stops the pattern and turns the segment off. Clearing an idle
// segment does nothing.
func (s *Segment) Clear() {
	if s.anim == nil {
		return
	}
	s.reset()
	s.fill(strip.Off)
	s.surface.Show()
}

func (s *Segment) reset() {
	s.anim = nil
	s.interval = 0
	s.total = 0
	s.index = 0
	s.dir = Forward
	s.elapsed = 0
	s.loops = 0
	s.maxLoops = 0
}

// Reverse flips the direction of the running pattern. Segments that do
// not step are left alone.
func (s *Segment) Reverse() {
	if s.anim == nil || s.total == 0 {
		return
	}
	if s.dir == Forward {
		s.dir = Reverse
		s.index = s.total - 1
		return
	}
	s.dir = Forward
	s.index = 0
}

// Update feeds tick milliseconds to the segment. Once the accumulated time
// reaches the interval it performs exactly one step and flushes.
func (s *Segment) Update(tick uint32) (Event, bool) {
	if s.anim == nil || s.anim.kind() == SingleColor {
		return Event{}, false
	}

	s.elapsed += tick
	if s.elapsed < s.interval {
		return Event{}, false
	}
	s.elapsed = 0

	s.anim.draw(s, s.index)
	s.surface.Show()
	return s.increment()
}

func (s *Segment) increment() (Event, bool) {
	if s.dir == Forward {
		s.index++
		if s.index < s.total {
			return Event{}, false
		}
		s.index = 0
	} else {
		if s.index > 0 {
			s.index--
			return Event{}, false
		}
		s.index = s.total - 1
	}
	return s.checkCompletion()
}

func (s *Segment) checkCompletion() (Event, bool) {
	if s.maxLoops == 0 {
		return Event{}, false
	}
	s.loops++
	if s.loops < s.maxLoops {
		return Event{}, false
	}
	completed := s.Kind()
	s.Clear()
	return Event{Completed: completed}, true
}

func (s *Segment) pick(c *Pair) Pair {
	if c != nil {
		return *c
	}
	a, b := strip.Complement(uint16(s.rnd.Intn(65536)))
	return Pair{First: a, Second: b}
}

// set writes only inside the segment.
func (s *Segment) set(i int, c strip.Color) {
	if i < s.start || i > s.end {
		return
	}
	s.surface.SetPixel(i, c)
}

func (s *Segment) fill(c strip.Color) {
	for i := s.start; i <= s.end; i++ {
		s.surface.SetPixel(i, c)
	}
}
