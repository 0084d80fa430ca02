package segment

import "github.com/coreman2200/wordclock/internal/strip"

// Word is the reduced segment used for the clock words. It runs only the
// hue and rainbow cycles, always forward, with a step index that wraps at
// 256 and never completes.
type Word struct {
	surface    strip.Surface
	start, end int
	rnd        Rand

	active   Kind
	color    strip.Color
	interval uint32
	elapsed  uint32
	index    uint8
	seed     uint8
}

func NewWord(surface strip.Surface, start, end int, rnd Rand) (*Word, error) {
	if _, err := New(surface, start, end, rnd); err != nil {
		return nil, err
	}
	return &Word{surface: surface, start: start, end: end, rnd: rnd}, nil
}

func (w *Word) Bounds() (first, last int) { return w.start, w.end }
func (w *Word) Len() int                  { return w.end - w.start + 1 }
func (w *Word) Kind() Kind                { return w.active }
func (w *Word) Index() uint8              { return w.index }

// Start begins a hue or rainbow cycle; interval zero selects the default.
// Other kinds are refused.
func (w *Word) Start(kind Kind, interval uint32) bool {
	switch kind {
	case HueCycle:
		if interval == 0 {
			interval = DefaultWordHueInterval
		}
		w.seed = uint8(w.rnd.Intn(256))
	case RainbowCycle:
		if interval == 0 {
			interval = DefaultWordRainbowInterval
		}
		w.seed = 0
	default:
		return false
	}
	w.active = kind
	w.interval = interval
	w.index = 0
	w.elapsed = 0
	return true
}

func (w *Word) SetSingleColor(c strip.Color) {
	w.active = SingleColor
	w.color = c
	w.index = 0
	w.seed = 0
	w.fill(c)
	w.surface.Show()
}

func (w *Word) Clear() {
	if w.active == None {
		return
	}
	w.active = None
	w.interval = 0
	w.index = 0
	w.elapsed = 0
	w.fill(strip.Off)
	w.surface.Show()
}

func (w *Word) Update(tick uint32) {
	if w.active == None || w.active == SingleColor {
		return
	}
	w.elapsed += tick
	if w.elapsed < w.interval {
		return
	}
	w.elapsed = 0

	switch w.active {
	case HueCycle:
		w.fill(strip.Wheel(w.seed + w.index))
	case RainbowCycle:
		n := w.Len()
		for x := 0; x < n; x++ {
			w.surface.SetPixel(w.start+x, strip.Wheel(uint8((x*256/n+int(w.index))&255)))
		}
	}
	w.surface.Show()
	w.index++
}

func (w *Word) fill(c strip.Color) {
	for i := w.start; i <= w.end; i++ {
		w.surface.SetPixel(i, c)
	}
}
