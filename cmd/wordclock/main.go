package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/wordclock/internal/app"
	"github.com/coreman2200/wordclock/internal/button"
	"github.com/coreman2200/wordclock/internal/config"
	"github.com/coreman2200/wordclock/internal/layout"
	"github.com/coreman2200/wordclock/internal/led"
	"github.com/coreman2200/wordclock/internal/preview"
	"github.com/coreman2200/wordclock/internal/rtc"
	"github.com/coreman2200/wordclock/internal/segment"
	"github.com/coreman2200/wordclock/internal/selftest"
	"github.com/coreman2200/wordclock/internal/strip"
	"github.com/coreman2200/wordclock/internal/tick"
	"github.com/coreman2200/wordclock/internal/ws"
)

func main() {
	// ---- Flags (config.yaml wins where it sets a value) ----
	def := config.Default()
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		driver     = flag.String("driver", def.Driver, "driver: nrz | sim | console | preview")
		spiPort    = flag.String("spi", def.SPI.Port, "SPI port name for the strip")
		clock      = flag.String("clock", def.Clock, "clock: rtc | system")
		rtcBus     = flag.String("rtc-bus", def.RTC.Bus, "I2C bus of the DS3231")
		brightness = flag.Uint("brightness", uint(def.Power.Brightness), "output brightness 0..255")
		addr       = flag.String("addr", def.HTTP.Addr, "HTTP listen address; empty disables")
		useButton  = flag.Bool("button", false, "read the push button over GPIO")
		hourOffset = flag.Int("hour-offset", 0, "hours added to the clock reading")
		runTests   = flag.Bool("selftest", false, "run the strip self test before starting")
		logLevel   = flag.String("log-level", "info", "zerolog level")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", *logLevel).Msg("unknown log level; using info")
	}

	// ---- Config ----
	base := config.Default()
	base.Driver = *driver
	base.SPI.Port = *spiPort
	base.Clock = *clock
	base.RTC.Bus = *rtcBus
	base.Power.Brightness = uint8(min(*brightness, 255))
	base.HTTP.Addr = *addr
	cfg, found, err := config.LoadOver(*configPath, base)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
	}
	if !found {
		log.Warn().Str("path", *configPath).Msg("no config file; using flags and defaults")
	}
	log.Info().
		Str("driver", cfg.Driver).
		Str("clock", cfg.Clock).
		Int("count", cfg.LEDCount).
		Uint8("brightness", cfg.Power.Brightness).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- Driver ----
	var (
		drv  led.Driver
		term *preview.Screen
	)
	switch cfg.Driver {
	case "nrz":
		d, err := led.OpenNRZ(cfg.SPI.Port, cfg.LEDCount)
		if err != nil {
			log.Warn().Err(err).Str("driver", "nrz").Str("port", cfg.SPI.Port).Msg("SPI init failed; falling back to SIM")
			drv = led.NewSim()
		} else {
			drv = d
		}
	case "console":
		drv = led.NewConsole(cfg.LEDCount)
	case "preview":
		p, err := preview.Open(cfg.LEDCount)
		if err != nil {
			log.Warn().Err(err).Msg("terminal preview failed; falling back to SIM")
			drv = led.NewSim()
		} else {
			term = p
			drv = p
			// the preview owns the terminal
			zerolog.SetGlobalLevel(zerolog.Disabled)
		}
	default:
		drv = led.NewSim()
	}
	defer drv.Close()

	rgb, err := config.ParseColor(cfg.Birthday.NameColor)
	if err != nil {
		log.Fatal().Err(err).Str("name_color", cfg.Birthday.NameColor).Msg("bad birthday color")
	}
	s := strip.New(cfg.LEDCount, drv, strip.Post{Brightness: cfg.Power.Brightness, WhiteCap: cfg.Power.WhiteCap})

	// ---- Clock source ----
	src := clockSource(cfg)
	if c, ok := src.(interface{ Close() error }); ok {
		defer c.Close()
	}

	millis := tick.Since(time.Now())
	rnd := segment.DefaultRand(time.Now().UnixNano())
	l := layout.WordClock()

	// ---- Streams ----
	var core *app.Core
	state := ws.NewState(l, cfg.HTTP.FrameFPS, s.Frame, func() app.Status { return core.Status() })
	state.Driver = cfg.Driver

	core, err = app.New(s, src, millis, rnd, app.Settings{
		TimeCheckMs:   uint32(cfg.TimeCheckMs),
		LightShowHour: cfg.LightShowHour,
		BirthdayMonth: cfg.Birthday.Month,
		BirthdayDay:   cfg.Birthday.Day,
		NameColor:     strip.RGB(rgb[0], rgb[1], rgb[2]),
	}, state.PushDiag)
	if err != nil {
		log.Fatal().Err(err).Msg("core init failed")
	}
	core.SetHourOffset(*hourOffset)

	pass := time.Duration(cfg.PassMs) * time.Millisecond
	if *runTests {
		log.Info().Msg("running self test")
		if err := selftest.Run(ctx, s, l, 50*time.Millisecond, selftest.All...); err != nil {
			log.Warn().Err(err).Msg("self test interrupted")
		}
	}

	// ---- Inputs ----
	inputs := make(chan app.Input, 8)
	if *useButton {
		b, err := button.Open(cfg.Button.Pin, millis, uint32(cfg.Button.DebounceMs), uint32(cfg.Button.LongPressMs))
		if err != nil {
			log.Warn().Err(err).Int("pin", cfg.Button.Pin).Msg("button unavailable")
		} else {
			defer b.Close()
			events := make(chan button.Event)
			go b.Run(ctx, 5*time.Millisecond, events)
			go forwardButton(ctx, events, inputs)
		}
	}
	var hooks []app.PassHook
	if term != nil {
		go term.Keys(ctx, inputs, stop)
		hooks = append(hooks, func(c *app.Core) {
			st := c.Status()
			term.SetStatus(st.Phrase + "  [" + string(st.Special) + "]")
		})
	}

	// ---- HTTP ----
	var srv *http.Server
	if cfg.HTTP.Addr != "" {
		mux := http.NewServeMux()
		state.Routes(mux)
		srv = &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go state.RunBroadcast(ctx)
		go state.RunDiag(ctx)
		go func() {
			log.Info().Str("addr", cfg.HTTP.Addr).Str("driver", cfg.Driver).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("http server crashed")
				stop()
			}
		}()
	}

	// ---- Run until signalled ----
	if err := core.Run(ctx, pass, inputs, hooks...); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("run loop stopped")
	}
	log.Info().Msg("shutting down")

	if srv != nil {
		_ = srv.Close()
	}
	s.Clear()
}

func clockSource(cfg *config.Config) rtc.Source {
	if cfg.Clock != "rtc" {
		return rtc.NewSystem()
	}
	d, err := rtc.OpenDS3231(cfg.RTC.Bus, cfg.RTC.Addr)
	if err != nil {
		log.Warn().Err(err).Str("bus", cfg.RTC.Bus).Msg("RTC unavailable; using the system clock")
		return rtc.NewSystem()
	}
	lost, err := d.LostPower()
	if err != nil {
		log.Warn().Err(err).Msg("RTC status unreadable; using the system clock")
		_ = d.Close()
		return rtc.NewSystem()
	}
	if lost {
		log.Warn().Msg("RTC lost power, setting the time")
		if err := d.Adjust(time.Now()); err != nil {
			log.Warn().Err(err).Msg("RTC adjust failed")
		}
	}
	log.Info().Str("rtc", d.String()).Msg("using RTC")
	return d
}

func forwardButton(ctx context.Context, events <-chan button.Event, inputs chan<- app.Input) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			var in app.Input
			switch ev {
			case button.ShortPress:
				in = app.ShortPress
			case button.HourAdvance:
				in = app.HourOffset
			default:
				continue
			}
			select {
			case inputs <- in:
			case <-ctx.Done():
				return
			}
		}
	}
}
