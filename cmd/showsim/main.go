// Command showsim plays one special pattern on a headless face with a
// simulated clock and prints every transition.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/wordclock/internal/app"
	diag "github.com/coreman2200/wordclock/internal/diagnostics"
	"github.com/coreman2200/wordclock/internal/led"
	"github.com/coreman2200/wordclock/internal/rtc"
	"github.com/coreman2200/wordclock/internal/segment"
	"github.com/coreman2200/wordclock/internal/show"
	"github.com/coreman2200/wordclock/internal/strip"
)

func main() {
	var (
		pattern = flag.String("pattern", "light-show", "demo | light-show | birthday")
		at      = flag.String("at", "2026-10-14T07:47:00Z", "RFC3339 wall time shown before and after")
		stepMs  = flag.Uint("step", 2, "simulated milliseconds per pass")
		maxS    = flag.Uint("max", 900, "give up after this many simulated seconds")
		seed    = flag.Int64("seed", 1, "random seed")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	t, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		log.Fatal().Err(err).Str("at", *at).Msg("bad -at")
	}

	var in app.Input
	switch show.State(*pattern) {
	case show.Demo:
		in = app.Demo
	case show.LightShow:
		in = app.ShortPress
	case show.Birthday:
		in = app.Birthday
	default:
		log.Fatal().Str("pattern", *pattern).Msg("unknown pattern")
	}

	var ms uint32
	now := func() uint32 { return ms }
	s := strip.New(120, led.NewSim(), strip.DefaultPost())

	sink := func(d diag.Diagnostic) {
		fmt.Printf("[%8.3fs] %-14s %s %v\n", float64(ms)/1000, d.Code, d.Summary, d.Evidence)
	}
	core, err := app.New(s, &rtc.Fixed{T: t}, now, segment.DefaultRand(*seed), app.DefaultSettings(), sink)
	if err != nil {
		log.Fatal().Err(err).Msg("core init failed")
	}

	core.Pass()
	core.Handle(in)

	limit := uint32(*maxS) * 1000
	for ms < limit {
		ms += uint32(*stepMs)
		core.Pass()
		if st := core.Status(); st.Special == show.None {
			fmt.Printf("Done at t=%.3fs after %d passes, showing %q\n", float64(ms)/1000, st.Passes, st.Phrase)
			os.Exit(0)
		}
	}
	fmt.Printf("still %s after %ds\n", core.Status().Special, *maxS)
	os.Exit(1)
}
