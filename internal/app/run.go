package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Input is an inbound control signal.
type Input uint8

const (
	ShortPress Input = iota
	HourOffset
	Demo
	Birthday
)

func (i Input) String() string {
	switch i {
	case ShortPress:
		return "short-press"
	case HourOffset:
		return "hour-offset"
	case Demo:
		return "demo"
	case Birthday:
		return "birthday"
	}
	return "unknown"
}

// Handle applies one input between passes.
func (c *Core) Handle(in Input) {
	log.Debug().Str("input", in.String()).Msg("input")
	switch in {
	case ShortPress:
		c.OnShortPress()
	case HourOffset:
		c.AdvanceHourOffset()
	case Demo:
		c.OnDemo()
	case Birthday:
		c.OnBirthday()
	}
}

// PassHook runs after every pass on the loop goroutine.
type PassHook func(c *Core)

// Run drives passes every interval until ctx ends. Inputs are applied on
// the same goroutine, between passes.
func (c *Core) Run(ctx context.Context, interval time.Duration, inputs <-chan Input, hooks ...PassHook) error {
	if interval <= 0 {
		interval = 2 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-inputs:
			if !ok {
				inputs = nil
				continue
			}
			c.Handle(in)
		case <-ticker.C:
			c.Pass()
			for _, h := range hooks {
				h(c)
			}
		}
	}
}
