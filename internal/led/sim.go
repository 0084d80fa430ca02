package led

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Sim is a headless sink that keeps the last frame and logs a compact
// summary every LogEvery frames.
type Sim struct {
	LogEvery int

	mu    sync.Mutex
	count int
	last  []byte
}

func NewSim() *Sim { return &Sim{LogEvery: 500} }

func (d *Sim) Write(rgb []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.count++
	d.last = append(d.last[:0], rgb...)

	if d.LogEvery <= 0 || d.count%d.LogEvery != 0 {
		return nil
	}
	lit := 0
	for i := 0; i+2 < len(rgb); i += 3 {
		if rgb[i] != 0 || rgb[i+1] != 0 || rgb[i+2] != 0 {
			lit++
		}
	}
	log.Debug().Int("frame", d.count).Int("lit", lit).Int("pixels", len(rgb)/3).Msg("sim frame")
	return nil
}

// Frames returns how many frames were written.
func (d *Sim) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Last returns a copy of the most recent frame.
func (d *Sim) Last() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.last...)
}

func (d *Sim) Close() error { return nil }
