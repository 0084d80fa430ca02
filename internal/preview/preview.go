// Package preview draws the face in a terminal. The Screen is an LED
// driver, so the clock runs against it exactly as against the strip.
package preview

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/wordclock/internal/app"
	"github.com/coreman2200/wordclock/internal/face"
)

var (
	unlit  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(48, 48, 48))
	border = tcell.StyleDefault.Foreground(tcell.ColorGray)
	help   = "l light show  h hour  d demo  b birthday  q quit"
)

// Screen renders frames as the letter plate.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
	count  int
	status string
	frames uint64
}

// Open initializes the controlling terminal.
func Open(count int) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return New(s, count)
}

// New takes ownership of s and initializes it.
func New(s tcell.Screen, count int) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	s.Clear()
	return &Screen{screen: s, count: count}, nil
}

// Origin of the plate on screen; each letter takes two columns.
const (
	originX = 2
	originY = 1
)

// LetterAt returns the screen position of plate cell col,row.
func LetterAt(col, row int) (x, y int) {
	return originX + col*2, originY + row
}

func (p *Screen) Write(rgb []byte) error {
	if len(rgb) < p.count*3 {
		return fmt.Errorf("frame has %d bytes, need %d", len(rgb), p.count*3)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	n := min(p.count, len(face.Grid)*len(face.Grid[0]))
	for i := 0; i < n; i++ {
		r, g, b := rgb[i*3], rgb[i*3+1], rgb[i*3+2]
		st := unlit
		if r|g|b != 0 {
			st = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b))).Bold(true)
		}
		col, row := face.Cell(i)
		x, y := LetterAt(col, row)
		p.screen.SetContent(x, y, rune(face.Letter(i)), nil, st)
	}
	p.frames++
	p.drawText(originX, originY+len(face.Grid)+1, p.status, border)
	p.drawText(originX, originY+len(face.Grid)+2, help, border)
	p.screen.Show()
	return nil
}

// SetStatus changes the line under the plate.
func (p *Screen) SetStatus(s string) {
	p.mu.Lock()
	p.status = s
	p.mu.Unlock()
}

func (p *Screen) drawText(x, y int, s string, st tcell.Style) {
	w, _ := p.screen.Size()
	i := 0
	for _, r := range s {
		p.screen.SetContent(x+i, y, r, nil, st)
		i++
	}
	for ; x+i < w; i++ {
		p.screen.SetContent(x+i, y, ' ', nil, st)
	}
}

func (p *Screen) String() string { return "preview" }

func (p *Screen) Close() error {
	p.screen.Fini()
	return nil
}

// RuneInput maps a key to a clock input.
func RuneInput(r rune) (app.Input, bool) {
	switch r {
	case 'l', 'L', ' ':
		return app.ShortPress, true
	case 'h', 'H':
		return app.HourOffset, true
	case 'd', 'D':
		return app.Demo, true
	case 'b', 'B':
		return app.Birthday, true
	}
	return 0, false
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Keys reads terminal events until quit is pressed or ctx ends. It owns
// the event loop of the screen.
func (p *Screen) Keys(ctx context.Context, out chan<- app.Input, quit func()) {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				p.screen.Sync()
			case *tcell.EventKey:
				if isQuit(ev) {
					quit()
					return
				}
				if ev.Key() != tcell.KeyRune {
					continue
				}
				if in, ok := RuneInput(ev.Rune()); ok {
					select {
					case out <- in:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}
}
