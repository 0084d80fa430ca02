package strip_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/coreman2200/wordclock/internal/strip"
)

var TestRGBIsExpectedColor = []struct {
	R, G, B uint8
	Expect  Color
}{
	{0x11, 0x22, 0x33, 0x112233},
	{0x2A, 0x44, 0x34, 0x2A4434},
	{0xAB, 0x3B, 0x88, 0xAB3B88},
	{0x00, 0x00, 0x00, Off},
	{0xFF, 0xFF, 0xFF, 0xFFFFFF},
}

func TestColorsRGB(t *testing.T) {
	for k, v := range TestRGBIsExpectedColor {
		t.Run("Given RGB"+strconv.Itoa(k), func(t *testing.T) {
			c := RGB(v.R, v.G, v.B)
			assert.Equal(t, v.Expect, c, "should be same val")
			assert.Equal(t, v.R, c.R())
			assert.Equal(t, v.G, c.G())
			assert.Equal(t, v.B, c.B())
		})
	}
}

func TestHueMatchesStripLibrary(t *testing.T) {
	cases := []struct {
		hue    uint16
		expect Color
	}{
		{0, 0xFF0000},
		{21845, 0x00FF00},
		{43690, 0x0000FF},
		{65535, 0xFF0000},
		{10923, 0xFFFF00},
	}
	for _, c := range cases {
		assert.Equal(t, c.expect, Hue(c.hue), "hue %d", c.hue)
	}
}

func TestHSVValueScales(t *testing.T) {
	assert.Equal(t, Off, HSV(0, 255, 0))
	// zero saturation is white at the given value
	assert.Equal(t, RGB(255, 255, 255), HSV(1234, 0, 255))
}

func TestWheel(t *testing.T) {
	assert.Equal(t, Color(0xFF0000), Wheel(0))
	assert.Equal(t, Color(0x00FF00), Wheel(85))
	assert.Equal(t, Color(0x0000FF), Wheel(170))
	assert.Equal(t, Color(0xFF0000), Wheel(255))
}

func TestDim(t *testing.T) {
	assert.Equal(t, Color(0x7F4020), Dim(0xFF8040))
	assert.Equal(t, Off, Dim(RGB(1, 1, 1)))
}

func TestComplement(t *testing.T) {
	a, b := Complement(0)
	assert.Equal(t, Color(0xFF0000), a)
	assert.Equal(t, Hue(32768), b)
}

func TestPostBrightness(t *testing.T) {
	dst := make([]byte, 3)
	Post{Brightness: 86}.Apply(dst, []Color{0xFFFFFF})
	assert.Equal(t, []byte{86, 86, 86}, dst)

	DefaultPost().Apply(dst, []Color{0x102030})
	assert.Equal(t, []byte{0x10, 0x20, 0x30}, dst)
}

func TestPostWhiteCap(t *testing.T) {
	dst := make([]byte, 6)
	Post{Brightness: 255, WhiteCap: 0.5}.Apply(dst, []Color{0xFFFFFF, 0x400000})
	assert.Equal(t, byte(128), dst[0])
	assert.Equal(t, []byte{0x40, 0, 0}, dst[3:], "pixels under the cap are untouched")
}

type recordDriver struct {
	frames [][]byte
	err    error
}

func (d *recordDriver) Write(rgb []byte) error {
	d.frames = append(d.frames, rgb)
	return d.err
}
func (d *recordDriver) Close() error { return nil }

func TestStripShowWritesFrame(t *testing.T) {
	drv := &recordDriver{}
	s := New(2, drv, DefaultPost())
	s.SetPixel(1, 0x0000FF)
	s.SetPixel(5, 0xFFFFFF) // out of range, ignored
	s.Show()

	assert.Len(t, drv.frames, 1)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0xFF}, drv.frames[0])
	frame, id := s.Frame()
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, drv.frames[0], frame)
	assert.Equal(t, Off, s.Pixel(5))
}

func TestStripKeepsUnscaledColors(t *testing.T) {
	drv := &recordDriver{}
	s := New(1, drv, Post{Brightness: 0})
	s.SetPixel(0, 0xFFFFFF)
	s.Show()
	assert.Equal(t, Color(0xFFFFFF), s.Pixel(0))
	assert.Equal(t, []byte{0, 0, 0}, drv.frames[0])
}

func TestStripCountsDriverErrors(t *testing.T) {
	drv := &recordDriver{err: errors.New("bus gone")}
	s := New(1, drv, DefaultPost())
	s.Show()
	s.Show()
	assert.Equal(t, uint64(2), s.Errors())
}

func TestStripClear(t *testing.T) {
	s := New(3, nil, DefaultPost())
	for i := 0; i < 3; i++ {
		s.SetPixel(i, 0x123456)
	}
	s.Clear()
	for i := 0; i < 3; i++ {
		assert.Equal(t, Off, s.Pixel(i))
	}
}
