package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

// Console prints each frame as a row of colored cells on stdout, for when
// there is no SPI port to drive.
type Console struct {
	drawer display.Drawer
	img    *image.NRGBA
	count  int
}

func NewConsole(count int) *Console {
	return &Console{
		drawer: screen.New(count),
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
		count:  count,
	}
}

func (c *Console) Write(rgb []byte) error {
	if len(rgb) != c.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), c.count)
	}
	for i := 0; i < c.count; i++ {
		c.img.SetNRGBA(i, 0, color.NRGBA{R: rgb[3*i], G: rgb[3*i+1], B: rgb[3*i+2], A: 0xFF})
	}
	if err := c.drawer.Draw(c.drawer.Bounds(), c.img, image.Point{}); err != nil {
		return fmt.Errorf("console draw: %w", err)
	}
	return nil
}

func (c *Console) String() string { return c.drawer.String() }

func (c *Console) Close() error { return c.drawer.Halt() }
