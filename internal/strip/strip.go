package strip

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/wordclock/internal/led"
)

// Surface is the pixel contract the animation core writes through.
type Surface interface {
	Len() int
	SetPixel(i int, c Color)
	Pixel(i int) Color
	// Show flushes the buffer to the output.
	Show()
}

// Strip is the in-memory color buffer of the physical strip. Writes outside
// the strip are ignored, as the hardware library does.
type Strip struct {
	mu      sync.RWMutex
	buf     []Color
	out     []byte
	post    Post
	drv     led.Driver
	frameID uint64
	errs    uint64
	lastErr error
}

func New(count int, drv led.Driver, post Post) *Strip {
	return &Strip{
		buf:  make([]Color, count),
		out:  make([]byte, count*3),
		post: post,
		drv:  drv,
	}
}

func (s *Strip) Len() int { return len(s.buf) }

func (s *Strip) SetPixel(i int, c Color) {
	if i < 0 || i >= len(s.buf) {
		return
	}
	s.mu.Lock()
	s.buf[i] = c
	s.mu.Unlock()
}

func (s *Strip) Pixel(i int) Color {
	if i < 0 || i >= len(s.buf) {
		return Off
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf[i]
}

// Show renders the post stage and writes the frame. A failing driver is
// logged and counted; the animation keeps running.
func (s *Strip) Show() {
	s.mu.Lock()
	s.post.Apply(s.out, s.buf)
	s.frameID++
	frame := append([]byte(nil), s.out...)
	drv := s.drv
	s.mu.Unlock()

	if drv == nil {
		return
	}
	if err := drv.Write(frame); err != nil {
		s.mu.Lock()
		s.errs++
		first := s.lastErr == nil
		s.lastErr = err
		s.mu.Unlock()
		if first {
			log.Warn().Err(err).Msg("strip write failed")
		}
		return
	}
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// SetBrightness changes the output scale; it takes effect on the next Show.
func (s *Strip) SetBrightness(b uint8) {
	s.mu.Lock()
	s.post.Brightness = b
	s.mu.Unlock()
}

// Frame returns the last rendered frame and its id.
func (s *Strip) Frame() ([]byte, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.out...), s.frameID
}

// Errors returns how many writes failed.
func (s *Strip) Errors() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs
}

// Clear turns every pixel off and flushes.
func (s *Strip) Clear() {
	s.mu.Lock()
	for i := range s.buf {
		s.buf[i] = Off
	}
	s.mu.Unlock()
	s.Show()
}
