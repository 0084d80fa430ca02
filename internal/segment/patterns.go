package segment

import "github.com/coreman2200/wordclock/internal/strip"

// animation is one pattern variant. draw paints step index into the
// segment buffer; the caller flushes.
type animation interface {
	kind() Kind
	draw(s *Segment, index int)
}

type single struct{ color strip.Color }

func (single) kind() Kind         { return SingleColor }
func (single) draw(*Segment, int) {}

type hueCycle struct{ seed uint8 }

func (hueCycle) kind() Kind { return HueCycle }

func (p hueCycle) draw(s *Segment, index int) {
	s.fill(strip.Wheel(p.seed + uint8(index)))
}

type rainbowCycle struct{}

func (rainbowCycle) kind() Kind { return RainbowCycle }

func (rainbowCycle) draw(s *Segment, index int) {
	rainbow(s, index)
}

// rainbow spreads one wheel turn over the segment, shifted by index.
func rainbow(s *Segment, index int) {
	n := s.Len()
	for x := 0; x < n; x++ {
		s.surface.SetPixel(s.start+x, strip.Wheel(uint8((x*256/n+index)&255)))
	}
}

type theaterChase struct{ colors Pair }

func (theaterChase) kind() Kind { return TheaterChase }

func (p theaterChase) draw(s *Segment, index int) {
	for i := s.start; i <= s.end; i++ {
		if (i+index)%3 == 0 {
			s.surface.SetPixel(i, p.colors.First)
		} else {
			s.surface.SetPixel(i, p.colors.Second)
		}
	}
}

// colorWipe fills forward with the first color, then back with the second.
type colorWipe struct{ colors Pair }

func (colorWipe) kind() Kind { return ColorWipe }

func (p colorWipe) draw(s *Segment, index int) {
	half := s.total / 2
	if index < half {
		s.set(s.start+index, p.colors.First)
		return
	}
	// index == half lands one past the end and is dropped.
	s.set(s.start+half-(index%half), p.colors.Second)
}

// scanner runs two dots toward each other and back with a fading tail.
type scanner struct{ colors Pair }

func (scanner) kind() Kind { return Scanner }

func (p scanner) draw(s *Segment, index int) {
	n := s.Len()
	halfway := s.total / 2

	var p1, p2 int
	switch {
	case halfway == 0:
		p1, p2 = 0, 0
	case index < halfway:
		p1, p2 = index, n-1-index
	default:
		p1 = halfway - (index % halfway) - 1
		p2 = halfway + (index % halfway)
	}

	for x := 0; x < n; x++ {
		i := s.start + x
		switch x {
		case p1:
			s.surface.SetPixel(i, p.colors.First)
		case p2:
			s.surface.SetPixel(i, p.colors.Second)
		default:
			s.surface.SetPixel(i, strip.Dim(s.surface.Pixel(i)))
		}
	}
}

// boxZoom lights the face rings from the border inward in alternating
// colors, then turns them off from the center outward.
type boxZoom struct{ colors Pair }

func (boxZoom) kind() Kind { return BoxZoom }

func (p boxZoom) draw(s *Segment, index int) {
	ring := index
	if index >= len(rings) {
		ring = 2*len(rings) - 1 - index
	}

	var c strip.Color
	switch {
	case index >= len(rings):
		c = strip.Off
	case index%2 == 0:
		c = p.colors.First
	default:
		c = p.colors.Second
	}

	for _, px := range rings[ring] {
		s.surface.SetPixel(s.start+px, c)
	}
}

// snake grows a hue gradient along the inward spiral, then retracts it
// from the head.
type snake struct{}

func (snake) kind() Kind { return Snake }

func (snake) draw(s *Segment, index int) {
	n := len(spiral)
	if index >= n {
		s.surface.SetPixel(s.start+spiral[n-1-index%n], strip.Off)
		return
	}
	s.surface.SetPixel(s.start+spiral[index], strip.Hue(uint16(index*65535/(n-1))))
}
