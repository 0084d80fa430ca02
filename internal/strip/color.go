package strip

// Color is a packed 0x00RRGGBB pixel, the same layout the NeoPixel
// library uses for its 32-bit colors.
type Color uint32

const (
	RED_OFFSET   uint8 = 0x10
	GREEN_OFFSET uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

// Off is the unlit pixel.
const Off Color = 0

func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<RED_OFFSET | uint32(g)<<GREEN_OFFSET | uint32(b)<<BLUE_OFFSET)
}

func (c Color) R() uint8 { return getcolor(c, RED_OFFSET) }
func (c Color) G() uint8 { return getcolor(c, GREEN_OFFSET) }
func (c Color) B() uint8 { return getcolor(c, BLUE_OFFSET) }

func getcolor(c Color, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((uint32(c) & mask) >> off)
}

// HSV converts a 16-bit hue (one full turn across 0..65535) with the given
// saturation and value, following the strip library's integer algorithm
// so colors match the hardware reference bit for bit.
func HSV(hue uint16, sat, val uint8) Color {
	var r, g, b uint32

	h := (uint32(hue)*1530 + 32768) / 65536
	switch {
	case h < 510:
		b = 0
		if h < 255 {
			r, g = 255, h
		} else {
			r, g = 510-h, 255
		}
	case h < 1020:
		r = 0
		if h < 765 {
			g, b = 255, h-510
		} else {
			g, b = 1020-h, 255
		}
	case h < 1530:
		g = 0
		if h < 1275 {
			r, b = h-1020, 255
		} else {
			r, b = 255, 1530-h
		}
	default:
		r, g, b = 255, 0, 0
	}

	v1 := 1 + uint32(val)
	s1 := 1 + uint32(sat)
	s2 := 255 - uint32(sat)
	return Color(((((r*s1)>>8 + s2) * v1 & 0xff00) << 8) |
		(((g*s1)>>8 + s2) * v1 & 0xff00) |
		(((b*s1)>>8 + s2) * v1 >> 8))
}

// Hue is HSV at full saturation and value.
func Hue(hue uint16) Color { return HSV(hue, 255, 255) }

// Wheel maps 0..255 onto one full hue rotation.
func Wheel(pos uint8) Color {
	return Hue(uint16(uint32(pos) * 65535 / 255))
}

// Dim halves each channel.
func Dim(c Color) Color {
	return RGB(c.R()>>1, c.G()>>1, c.B()>>1)
}

// Complement returns the color half a hue turn away from hue.
func Complement(hue uint16) (Color, Color) {
	return Hue(hue), Hue(hue + 32768)
}
