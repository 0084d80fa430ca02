package face

import (
	"strings"

	"github.com/coreman2200/wordclock/internal/segment"
)

// Activation starts one word with a pattern.
type Activation struct {
	Word    ID
	Pattern segment.Kind
}

// minute words per five-minute bucket; buckets 7 and up read "to" the
// next hour.
var buckets = [12][]ID{
	{},
	{Five, Minutes, Past},
	{Ten, Minutes, Past},
	{Quarter, Past},
	{Twenty, Minutes, Past},
	{Twenty, Five, Minutes, Past},
	{Half, Past},
	{Twenty, Five, Minutes, To},
	{Twenty, Minutes, To},
	{Quarter, To},
	{Ten, Minutes, To},
	{Five, Minutes, To},
}

var hours = [12]ID{
	HourTwelve, HourOne, HourTwo, HourThree, HourFour, HourFive,
	HourSix, HourSeven, HourEight, HourNine, HourTen, HourEleven,
}

// Bucket returns the five-minute interval of minute.
func Bucket(minute int) int { return minute / 5 }

// Decode maps a 24 hour clock reading to the words to light. The result
// depends only on its inputs; callers clear the board first.
func Decode(hour, minute int) []Activation {
	hour = wrap(hour, 24)
	b := Bucket(wrap(minute, 60))
	if b >= 7 {
		hour++
	}

	acts := []Activation{
		{It, segment.HueCycle},
		{Is, segment.HueCycle},
	}
	for _, id := range buckets[b] {
		acts = append(acts, Activation{id, segment.HueCycle})
	}
	acts = append(acts,
		Activation{hours[hour%12], segment.HueCycle},
		Activation{OClock, segment.RainbowCycle},
	)
	return acts
}

func wrap(x, n int) int { return ((x % n) + n) % n }

// Phrase renders activations as the words read on the face.
func Phrase(acts []Activation) string {
	parts := make([]string, len(acts))
	for i, a := range acts {
		parts[i] = a.Word.String()
	}
	return strings.Join(parts, " ")
}
