package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Port string `yaml:"port"` // "" for the first port
}

type Power struct {
	Brightness uint8   `yaml:"brightness"` // 0..255, scaled at output
	WhiteCap   float64 `yaml:"white_cap"`  // 0 or 1 disables
}

type Button struct {
	Pin         int `yaml:"pin"`
	DebounceMs  int `yaml:"debounce_ms"`
	LongPressMs int `yaml:"long_press_ms"`
}

type RTC struct {
	Bus  string `yaml:"bus"`
	Addr uint16 `yaml:"addr"`
}

type Birthday struct {
	Month     int    `yaml:"month"`
	Day       int    `yaml:"day"`
	NameColor string `yaml:"name_color"` // hex RRGGBB
}

type HTTP struct {
	Addr     string `yaml:"addr"`
	FrameFPS int    `yaml:"frame_fps"`
}

type Config struct {
	Driver   string `yaml:"driver"` // "nrz" | "sim" | "console" | "preview"
	LEDCount int    `yaml:"led_count"`
	PassMs   int    `yaml:"pass_ms"`
	Clock    string `yaml:"clock"` // "rtc" | "system"

	TimeCheckMs   int `yaml:"time_check_ms"`
	LightShowHour int `yaml:"light_show_hour"`

	SPI      SPI      `yaml:"spi"`
	Power    Power    `yaml:"power"`
	Button   Button   `yaml:"button"`
	RTC      RTC      `yaml:"rtc"`
	Birthday Birthday `yaml:"birthday"`
	HTTP     HTTP     `yaml:"http"`
}

func Default() *Config {
	return &Config{
		Driver:        "sim",
		LEDCount:      120,
		PassMs:        2,
		Clock:         "system",
		TimeCheckMs:   10000,
		LightShowHour: 21,
		Power:         Power{Brightness: 86, WhiteCap: 0.85},
		Button:        Button{Pin: 8, DebounceMs: 50, LongPressMs: 2000},
		RTC:           RTC{Bus: "", Addr: 0x68},
		Birthday:      Birthday{Month: 5, Day: 3, NameColor: "F81894"},
		HTTP:          HTTP{Addr: ":8080", FrameFPS: 30},
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// returned bool reports whether the file existed.
func Load(path string) (*Config, bool, error) {
	return LoadOver(path, Default())
}

// LoadOver reads path over a copy of base, so values in the file win.
func LoadOver(path string, base *Config) (*Config, bool, error) {
	c := *base
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &c, false, c.Validate()
	}
	if err != nil {
		return nil, false, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, true, c.Validate()
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) Validate() error {
	switch c.Driver {
	case "nrz", "sim", "console", "preview":
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	switch c.Clock {
	case "rtc", "system":
	default:
		return fmt.Errorf("unknown clock %q", c.Clock)
	}
	if c.LEDCount < 120 {
		return fmt.Errorf("led_count %d is smaller than the face", c.LEDCount)
	}
	if c.LightShowHour < 0 || c.LightShowHour > 23 {
		return fmt.Errorf("light_show_hour %d out of range", c.LightShowHour)
	}
	if c.Birthday.Month < 1 || c.Birthday.Month > 12 || c.Birthday.Day < 1 || c.Birthday.Day > 31 {
		return fmt.Errorf("birthday %d/%d is not a date", c.Birthday.Month, c.Birthday.Day)
	}
	if _, err := ParseColor(c.Birthday.NameColor); err != nil {
		return err
	}
	return nil
}

// ParseColor reads a hex RRGGBB triple.
func ParseColor(s string) ([3]uint8, error) {
	var rgb [3]uint8
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return rgb, fmt.Errorf("color %q is not RRGGBB", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rgb[0], &rgb[1], &rgb[2]); err != nil {
		return rgb, fmt.Errorf("color %q: %w", s, err)
	}
	return rgb, nil
}
