package face

import (
	"fmt"

	"github.com/coreman2200/wordclock/internal/segment"
	"github.com/coreman2200/wordclock/internal/strip"
)

// Board owns every segment of the face: the whole-strip segment used by
// the special patterns and one word segment per ID.
type Board struct {
	surface strip.Surface
	whole   *segment.Segment
	words   [WordCount]*segment.Word
}

func NewBoard(surface strip.Surface, rnd segment.Rand) (*Board, error) {
	if surface.Len() < geometry.Count() {
		return nil, fmt.Errorf("face needs %d pixels, strip has %d", geometry.Count(), surface.Len())
	}
	whole, err := segment.New(surface, 0, surface.Len()-1, rnd)
	if err != nil {
		return nil, fmt.Errorf("whole strip segment: %w", err)
	}
	b := &Board{surface: surface, whole: whole}
	for id := ID(0); id < WordCount; id++ {
		s := id.Span()
		w, err := segment.NewWord(surface, s.First, s.Last, rnd)
		if err != nil {
			return nil, fmt.Errorf("word %s: %w", id, err)
		}
		b.words[id] = w
	}
	return b, nil
}

func (b *Board) Surface() strip.Surface   { return b.surface }
func (b *Board) Whole() *segment.Segment  { return b.whole }
func (b *Board) Word(id ID) *segment.Word { return b.words[id] }

// ClearWords turns off every word segment.
func (b *Board) ClearWords() {
	for _, w := range b.words {
		w.Clear()
	}
}

// UpdateWords advances every word segment by tick, in ID order.
func (b *Board) UpdateWords(tick uint32) {
	for _, w := range b.words {
		w.Update(tick)
	}
}

// Apply starts the decoded activations with default intervals.
func (b *Board) Apply(acts []Activation) {
	for _, a := range acts {
		b.words[a.Word].Start(a.Pattern, 0)
	}
}

// Lit returns the words currently running a pattern.
func (b *Board) Lit() []ID {
	var out []ID
	for id, w := range b.words {
		if w.Kind() != segment.None {
			out = append(out, ID(id))
		}
	}
	return out
}
