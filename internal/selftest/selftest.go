// Package selftest lights known pixel patterns so the wiring can be
// checked by eye.
package selftest

import (
	"context"
	"time"

	"github.com/coreman2200/wordclock/internal/face"
	"github.com/coreman2200/wordclock/internal/layout"
	"github.com/coreman2200/wordclock/internal/strip"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	Rows       Kind = "rows"
	Words      Kind = "words"
)

// All is every test in the order a full run plays them.
var All = []Kind{IndexSweep, RGBTest, Rows, Words}

type Plan struct{ Kind Kind }

type Runner struct {
	plan   Plan
	layout layout.Layout
	step   int
}

func NewRunner(plan Plan, l layout.Layout) *Runner { return &Runner{plan: plan, layout: l} }

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Step paints the next frame into s and flushes; false when complete.
func (r *Runner) Step(s strip.Surface) bool {
	n := min(s.Len(), r.layout.Count())
	for i := 0; i < s.Len(); i++ {
		s.SetPixel(i, strip.Off)
	}

	white := strip.RGB(255, 255, 255)
	switch r.plan.Kind {
	case IndexSweep:
		if r.step >= n {
			return false
		}
		s.SetPixel(r.step, white)
	case RGBTest:
		if r.step >= 3 {
			return false
		}
		c := [...]strip.Color{strip.RGB(255, 0, 0), strip.RGB(0, 255, 0), strip.RGB(0, 0, 255)}[r.step]
		for i := 0; i < n; i++ {
			s.SetPixel(i, c)
		}
	case Rows:
		if r.step >= r.layout.Dim.Y {
			return false
		}
		for x := 0; x < r.layout.Dim.X; x++ {
			s.SetPixel(r.layout.Index(x, r.step), strip.RGB(0, 255, 255))
		}
	case Words:
		if r.step >= int(face.WordCount) {
			return false
		}
		sp := face.ID(r.step).Span()
		for i := sp.First; i <= sp.Last; i++ {
			s.SetPixel(i, white)
		}
	default:
		return false
	}
	s.Show()
	r.step++
	return true
}

// Run plays each kind in turn, one step every interval, and turns the
// strip off at the end.
func Run(ctx context.Context, s strip.Surface, l layout.Layout, every time.Duration, kinds ...Kind) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	defer func() {
		for i := 0; i < s.Len(); i++ {
			s.SetPixel(i, strip.Off)
		}
		s.Show()
	}()

	for _, k := range kinds {
		r := NewRunner(Plan{Kind: k}, l)
		for r.Step(s) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}
	return nil
}
