package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// RefreshRate of the WS2812 data line.
const RefreshRate physic.Frequency = 800

// NRZ drives a WS2812 strip through an SPI port using periph's nrzled encoder.
type NRZ struct {
	dev   *nrzled.Dev
	port  spi.Port
	count int
}

// NewNRZ wraps an already opened SPI port.
func NewNRZ(port spi.Port, count int) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	opts := nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      ((RefreshRate * 3) + 100) * physic.KiloHertz,
	}
	d, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: d, port: port, count: count}, nil
}

// OpenNRZ initializes the host drivers and opens the named SPI port
// ("" picks the first one).
func OpenNRZ(portName string, count int) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	p, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", portName, err)
	}
	n, err := NewNRZ(p, count)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return n, nil
}

func (n *NRZ) Write(rgb []byte) error {
	if len(rgb) != n.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), n.count)
	}
	if _, err := n.dev.Write(rgb); err != nil {
		return fmt.Errorf("nrzled write: %w", err)
	}
	return nil
}

func (n *NRZ) String() string { return n.dev.String() }

// Close blanks the strip and releases the port when it owns one.
func (n *NRZ) Close() error {
	err := n.dev.Halt()
	if c, ok := n.port.(spi.PortCloser); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
