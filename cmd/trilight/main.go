package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-trilight/internal/app"
	"github.com/coreman2200/funtimes-trilight/internal/config"
	"github.com/coreman2200/funtimes-trilight/internal/effect"
	"github.com/coreman2200/funtimes-trilight/internal/geometry"
	"github.com/coreman2200/funtimes-trilight/internal/led"
	"github.com/coreman2200/funtimes-trilight/internal/options"
	"github.com/coreman2200/funtimes-trilight/internal/palette"
	"github.com/coreman2200/funtimes-trilight/internal/ws"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		configPath  = flag.String("config", "config.yaml", "path to config.yaml")
		driver      = flag.String("driver", "sim", "driver: spi | tower | sim")
		layoutPath  = flag.String("layout", "", "layout YAML (empty: built-in triangle grid)")
		palettePath = flag.String("palette", "", "palette YAML with user colors")
		optionsPath = flag.String("options", "", "option values JSON")
		transTime   = flag.Int("trans-time", 0, "base phase interval in ms (0: from options)")
		simOnly     = flag.Bool("sim-only", false, "force simulation (no hardware output)")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params ----
	eLayout, ePalette, eOptions := *layoutPath, *palettePath, *optionsPath
	eTrans := *transTime
	eTolerance := 0.0
	if cfg != nil {
		if cfg.Layout != "" {
			eLayout = cfg.Layout
		}
		if cfg.Palette != "" {
			ePalette = cfg.Palette
		}
		if cfg.Options != "" {
			eOptions = cfg.Options
		}
		if cfg.TransTime > 0 {
			eTrans = cfg.TransTime
		}
		if cfg.SliceTolerance > 0 {
			eTolerance = cfg.SliceTolerance
		}
	}

	// ---- Layout ----
	var lay *geometry.Layout
	if eLayout != "" {
		l, err := geometry.Load(eLayout)
		if err != nil {
			log.Fatal().Err(err).Str("path", eLayout).Msg("layout load failed")
		}
		lay = l
	} else {
		lay = geometry.TriangleGrid(1, 2, 4, 2, 1)
		log.Info().Msg("no layout file; using built-in triangle grid")
	}

	// ---- Palette ----
	userColors, err := palette.Load(ePalette)
	if err != nil {
		log.Warn().Err(err).Str("path", ePalette).Msg("palette load failed; using defaults")
		userColors = nil
	}

	// ---- Options ----
	store, err := options.NewStore(options.DefaultSchema)
	if err != nil {
		log.Fatal().Err(err).Msg("options schema")
	}
	if eOptions != "" {
		if err := store.LoadValues(eOptions); err != nil {
			log.Warn().Err(err).Str("path", eOptions).Msg("options load failed; ignoring")
		}
	}
	if eTrans <= 0 {
		if v, ok := store.Int("transTime"); ok {
			eTrans = v
		}
	}

	// ---- Driver selection ----
	selected := *driver
	if cfg != nil && cfg.Driver != "" {
		selected = cfg.Driver
	}
	if *simOnly {
		selected = "sim"
	}

	var drv led.Driver
	switch selected {
	case "sim":
		drv = led.NewSim(len(lay.Panels))

	case "spi":
		spiDev := "/dev/spidev0.0"
		speedHz := led.DefaultSPISpeedHz
		if cfg != nil {
			if cfg.SPI.Dev != "" {
				spiDev = cfg.SPI.Dev
			}
			if cfg.SPI.SpeedHz != 0 {
				speedHz = cfg.SPI.SpeedHz
			}
		}
		d, err := led.NewSPI(spiDev, len(lay.Panels), speedHz)
		if err != nil {
			log.Warn().Err(err).Str("dev", spiDev).Msg("SPI init failed; falling back to SIM")
			drv = led.NewSim(len(lay.Panels))
		} else {
			drv = d
		}

	case "tower":
		port := "/dev/ttyUSB0"
		baud := led.DefaultTowerBaud
		if cfg != nil {
			if cfg.Serial.Port != "" {
				port = cfg.Serial.Port
			}
			if cfg.Serial.Baud != 0 {
				baud = cfg.Serial.Baud
			}
		}
		drv = led.NewTower(port, baud)

	default:
		log.Warn().Str("driver", selected).Msg("unknown driver; using SIM")
		selected = "sim"
		drv = led.NewSim(len(lay.Panels))
	}

	// ---- Orientation, preview state, runner ----
	lay.Rotate() // idempotent; NewRunner's own call becomes a no-op
	state := ws.NewState(lay)

	runner := app.NewRunner(app.Options{
		Layout:         lay,
		Palette:        userColors,
		TransitionMs:   eTrans,
		SliceTolerance: eTolerance,
		Driver:         drv,
		State:          state,
	})
	baseTrans := eTrans
	if baseTrans <= 0 {
		baseTrans = effect.DefaultTransition
	}
	log.Info().Int("panels", len(lay.Panels)).Int("trans_ms", baseTrans).
		Str("driver", selected).Msg("cycle initialized")

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", state.HandleFramesWS)
	mux.HandleFunc("/health", state.HandleHealth)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ---- Run cycle loop & server ----
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := runner.Run(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("cycle loop stopped")
		}
	}()
	go func() {
		log.Info().Str("addr", *addr).Str("driver", selected).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	_ = srv.Close()
	if err := runner.Close(); err != nil {
		log.Warn().Err(err).Msg("closing runner")
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
