package strip

import "math"

// Post is the output stage applied to the stored colors on every flush.
// The buffer itself always keeps the unscaled colors.
type Post struct {
	// Brightness scales every channel like NeoPixel setBrightness; 255 is
	// full scale, 0 is dark.
	Brightness uint8
	// WhiteCap clamps r+g+b of a pixel to WhiteCap*3*255; 0 or >= 1 disables.
	WhiteCap float64
}

func DefaultPost() Post { return Post{Brightness: 255} }

// Apply renders src into dst as r,g,b triplets. dst must hold 3*len(src).
func (p Post) Apply(dst []byte, src []Color) {
	scale := uint32(p.Brightness) + 1
	for i, c := range src {
		r, g, b := uint32(c.R()), uint32(c.G()), uint32(c.B())
		if p.Brightness != 255 {
			r = (r * scale) >> 8
			g = (g * scale) >> 8
			b = (b * scale) >> 8
		}
		dst[i*3+0], dst[i*3+1], dst[i*3+2] = byte(r), byte(g), byte(b)
	}
	applyWhiteCap(dst, p.WhiteCap)
}

// applyWhiteCap clamps per-LED RGB so r+g+b <= whiteCap*3*255
func applyWhiteCap(rgb []byte, whiteCap float64) {
	if whiteCap <= 0 || whiteCap >= 1 {
		return
	}
	limit := whiteCap * 3.0 * 255.0
	for i := 0; i+2 < len(rgb); i += 3 {
		s := float64(rgb[i]) + float64(rgb[i+1]) + float64(rgb[i+2])
		if s > limit && s > 0 {
			scale := limit / s
			rgb[i] = byte(math.Round(float64(rgb[i]) * scale))
			rgb[i+1] = byte(math.Round(float64(rgb[i+1]) * scale))
			rgb[i+2] = byte(math.Round(float64(rgb[i+2]) * scale))
		}
	}
}
