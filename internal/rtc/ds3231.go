package rtc

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultAddr is the fixed bus address of the DS3231.
const DefaultAddr uint16 = 0x68

const (
	regTime   = 0x00
	regStatus = 0x0F

	statusOSF = 0x80 // oscillator stopped
	hour12    = 0x40
	hourPM    = 0x20
)

// DS3231 is the battery backed clock on the face controller.
type DS3231 struct {
	dev *i2c.Dev
	bus i2c.BusCloser
}

func NewDS3231(bus i2c.Bus, addr uint16) *DS3231 {
	return &DS3231{dev: &i2c.Dev{Bus: bus, Addr: addr}}
}

// OpenDS3231 opens the named I2C bus ("" for the first one) and attaches
// the clock at addr.
func OpenDS3231(busName string, addr uint16) (*DS3231, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c %q: %w", busName, err)
	}
	d := NewDS3231(bus, addr)
	d.bus = bus
	return d, nil
}

func (d *DS3231) String() string { return fmt.Sprintf("ds3231{%s}", d.dev) }

func (d *DS3231) Close() error {
	if d.bus != nil {
		return d.bus.Close()
	}
	return nil
}

// Now reads the time registers. The DS3231 keeps no zone; times are
// returned in time.Local.
func (d *DS3231) Now() (time.Time, error) {
	r := make([]byte, 7)
	if err := d.dev.Tx([]byte{regTime}, r); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoTime, err)
	}

	sec := fromBCD(r[0] & 0x7F)
	minute := fromBCD(r[1] & 0x7F)
	var hour int
	if r[2]&hour12 != 0 {
		hour = fromBCD(r[2]&0x1F) % 12
		if r[2]&hourPM != 0 {
			hour += 12
		}
	} else {
		hour = fromBCD(r[2] & 0x3F)
	}
	day := fromBCD(r[4] & 0x3F)
	month := fromBCD(r[5] & 0x1F)
	year := 2000 + fromBCD(r[6])

	if sec > 59 || minute > 59 || hour > 23 || day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: registers % x", ErrNoTime, r)
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local), nil
}

// LostPower reports whether the oscillator stopped since the last Adjust.
func (d *DS3231) LostPower() (bool, error) {
	s, err := d.status()
	if err != nil {
		return false, err
	}
	return s&statusOSF != 0, nil
}

// Adjust sets the clock to t (24 hour mode) and clears the lost power flag.
func (d *DS3231) Adjust(t time.Time) error {
	dow := int(t.Weekday())
	if dow == 0 {
		dow = 7
	}
	w := []byte{
		regTime,
		toBCD(t.Second()),
		toBCD(t.Minute()),
		toBCD(t.Hour()),
		toBCD(dow),
		toBCD(t.Day()),
		toBCD(int(t.Month())),
		toBCD(t.Year() - 2000),
	}
	if err := d.dev.Tx(w, nil); err != nil {
		return fmt.Errorf("write time: %w", err)
	}
	s, err := d.status()
	if err != nil {
		return err
	}
	if err := d.dev.Tx([]byte{regStatus, s &^ statusOSF}, nil); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

func (d *DS3231) status() (byte, error) {
	r := make([]byte, 1)
	if err := d.dev.Tx([]byte{regStatus}, r); err != nil {
		return 0, fmt.Errorf("read status: %w", err)
	}
	return r[0], nil
}

func fromBCD(b byte) int { return int(b>>4)*10 + int(b&0x0F) }
func toBCD(v int) byte   { return byte(v/10)<<4 | byte(v%10) }
