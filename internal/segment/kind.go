package segment

import "math/rand"

// Kind enumerates the patterns a segment can run.
type Kind uint8

const (
	None Kind = iota
	SingleColor
	HueCycle
	RainbowCycle
	TheaterChase
	ColorWipe
	Scanner
	BoxZoom
	Snake
)

var kindNames = [...]string{
	None:         "none",
	SingleColor:  "single-color",
	HueCycle:     "hue-cycle",
	RainbowCycle: "rainbow-cycle",
	TheaterChase: "theater-chase",
	ColorWipe:    "color-wipe",
	Scanner:      "scanner",
	BoxZoom:      "box-zoom",
	Snake:        "snake",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Direction of the step index.
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Rand is the random source used for seeds and color picks.
type Rand interface {
	Intn(n int) int
}

// DefaultRand returns a time-seeded source.
func DefaultRand(seed int64) Rand { return rand.New(rand.NewSource(seed)) }

// Default step intervals in milliseconds.
const (
	DefaultHueInterval     uint32 = 40
	DefaultRainbowInterval uint32 = 10
	DefaultChaseInterval   uint32 = 10
	DefaultWipeInterval    uint32 = 10
	DefaultScannerInterval uint32 = 30
	DefaultBoxInterval     uint32 = 500
	DefaultSnakeInterval   uint32 = 21

	DefaultWordHueInterval     uint32 = 40
	DefaultWordRainbowInterval uint32 = 4
)

func defaultInterval(k Kind) uint32 {
	switch k {
	case HueCycle:
		return DefaultHueInterval
	case RainbowCycle:
		return DefaultRainbowInterval
	case TheaterChase:
		return DefaultChaseInterval
	case ColorWipe:
		return DefaultWipeInterval
	case Scanner:
		return DefaultScannerInterval
	case BoxZoom:
		return DefaultBoxInterval
	case Snake:
		return DefaultSnakeInterval
	}
	return 0
}
