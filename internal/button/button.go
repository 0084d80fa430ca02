// Package button reads the face push button: a short press toggles the
// light show, holding it advances the hour offset once a second.
package button

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stianeikeland/go-rpio/v4"

	"github.com/coreman2200/wordclock/internal/tick"
)

// Pin is the part of rpio.Pin the button reads.
type Pin interface {
	Read() rpio.State
}

type Event uint8

const (
	NoEvent Event = iota
	ShortPress
	HourAdvance
)

func (e Event) String() string {
	switch e {
	case ShortPress:
		return "short-press"
	case HourAdvance:
		return "hour-advance"
	}
	return "none"
}

const (
	DefaultDebounceMs  = 50
	DefaultLongPressMs = 2000
)

// Button is an active low switch with the pull-up enabled.
type Button struct {
	pin       Pin
	now       tick.Millis
	debounce  uint32
	longPress uint32

	pressed   bool
	pressedAt uint32
	held      uint32
	gpio      bool
}

func New(pin Pin, now tick.Millis, debounceMs, longPressMs uint32) *Button {
	if debounceMs == 0 {
		debounceMs = DefaultDebounceMs
	}
	if longPressMs == 0 {
		longPressMs = DefaultLongPressMs
	}
	return &Button{pin: pin, now: now, debounce: debounceMs, longPress: longPressMs}
}

// Open maps the GPIO registers and configures the BCM pin as a pulled-up
// input.
func Open(bcm int, now tick.Millis, debounceMs, longPressMs uint32) (*Button, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open rpio: %w", err)
	}
	p := rpio.Pin(bcm)
	p.Input()
	p.PullUp()
	b := New(p, now, debounceMs, longPressMs)
	b.gpio = true
	return b, nil
}

func (b *Button) Close() error {
	if b.gpio {
		return rpio.Close()
	}
	return nil
}

// Pressed reports whether a press is in progress.
func (b *Button) Pressed() bool { return b.pressed }

// Poll samples the pin once.
func (b *Button) Poll() Event {
	now := b.now()
	if b.pin.Read() != rpio.Low {
		if !b.pressed {
			return NoEvent
		}
		d := now - b.pressedAt
		// bounces shorter than the debounce keep the press open
		if d <= b.debounce {
			return NoEvent
		}
		log.Debug().Uint32("held_ms", d).Msg("button up")
		b.pressed = false
		if d < b.longPress {
			return ShortPress
		}
		return NoEvent
	}

	if !b.pressed {
		log.Debug().Msg("button down")
		b.pressed = true
		b.held = 0
		b.pressedAt = now
		return NoEvent
	}

	d := now - b.pressedAt
	if d < b.longPress {
		return NoEvent
	}
	t := d/1000 + 1
	if t == b.held {
		return NoEvent
	}
	b.held = t
	return HourAdvance
}

// Run polls every interval until ctx ends, sending events to out.
func (b *Button) Run(ctx context.Context, every time.Duration, out chan<- Event) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ev := b.Poll(); ev != NoEvent {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
