// Package face describes the physical word clock: which strip pixels spell
// which word, the registry of segments driving them and the decoder that
// turns a clock reading into lit words.
package face

import (
	"strings"

	"github.com/coreman2200/wordclock/internal/layout"
)

// ID identifies one word segment.
type ID uint8

const (
	Twenty ID = iota
	Is
	It
	Quarter
	Half
	Happy
	Ten
	Five
	Minutes
	Birth
	Day
	HourOne
	To
	Past
	HourTwo
	HourFive
	Alice
	HourTwelve
	HourEleven
	HourThree
	HourFour
	HourSix
	HourTen
	HourNine
	HourSeven
	HourEight
	OClock

	WordCount
)

// Span is an inclusive pixel range.
type Span struct{ First, Last int }

type word struct {
	name string
	span Span
}

// TO and PAST share pixel 56; the decoder never lights both.
var words = [WordCount]word{
	Twenty:     {"twenty", Span{0, 5}},
	Is:         {"is", Span{7, 8}},
	It:         {"it", Span{10, 11}},
	Quarter:    {"quarter", Span{12, 18}},
	Half:       {"half", Span{20, 23}},
	Happy:      {"happy", Span{24, 28}},
	Ten:        {"ten", Span{29, 31}},
	Five:       {"five", Span{32, 35}},
	Minutes:    {"minutes", Span{36, 42}},
	Birth:      {"birth", Span{43, 47}},
	Day:        {"day", Span{48, 50}},
	HourOne:    {"one", Span{51, 53}},
	To:         {"to", Span{55, 56}},
	Past:       {"past", Span{56, 59}},
	HourTwo:    {"two", Span{60, 62}},
	HourFive:   {"five", Span{63, 66}},
	Alice:      {"alice", Span{67, 71}},
	HourTwelve: {"twelve", Span{72, 77}},
	HourEleven: {"eleven", Span{78, 83}},
	HourThree:  {"three", Span{84, 88}},
	HourFour:   {"four", Span{89, 92}},
	HourSix:    {"six", Span{93, 95}},
	HourTen:    {"ten", Span{96, 98}},
	HourNine:   {"nine", Span{99, 102}},
	HourSeven:  {"seven", Span{103, 107}},
	HourEight:  {"eight", Span{108, 112}},
	OClock:     {"oclock", Span{114, 119}},
}

func (id ID) String() string {
	if id >= WordCount {
		return "unknown"
	}
	return words[id].name
}

// Span returns the pixels of the word.
func (id ID) Span() Span { return words[id].span }

// Grid is the letter plate as seen from the front, top row first.
var Grid = [...]string{
	"ITLISATWENTY",
	"QUARTERXHALF",
	"FIVETENHAPPY",
	"MINUTESBIRTH",
	"PASTOMONEDAY",
	"TWOFIVEALICE",
	"ELEVENTWELVE",
	"THREEFOURSIX",
	"SEVENNINETEN",
	"EIGHTROCLOCK",
}

// The strip enters the plate from behind, so wiring column x is plate
// column 11-x.
var geometry = layout.WordClock()

// Cell returns the plate column and row of pixel i.
func Cell(i int) (col, row int) {
	x, y := geometry.Coord(i)
	return geometry.Dim.X - 1 - x, y
}

// Pixel is the inverse of Cell.
func Pixel(col, row int) int {
	return geometry.Index(geometry.Dim.X-1-col, row)
}

// Letter returns the plate letter over pixel i.
func Letter(i int) byte {
	col, row := Cell(i)
	return Grid[row][col]
}

// Spell reads the plate letters of a word left to right.
func Spell(id ID) string {
	s := id.Span()
	var b strings.Builder
	for i := s.First; i <= s.Last; i++ {
		b.WriteByte(Letter(i))
	}
	out := b.String()
	first, _ := Cell(s.First)
	last, _ := Cell(s.Last)
	if last < first {
		out = reverse(out)
	}
	return out
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
