// fxterm plays particle effects in the terminal.
//
// Keys: n/p or arrows cycle effects, +/- change speed, [/] halve or double
// the count, c picks a random color, space pauses, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/particlefx"
	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/term"
	"github.com/gekko3d/particlefx/settings"
)

type screenContainer struct {
	r *term.Renderer
}

func (c screenContainer) Size() (int, int) { return c.r.Size() }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	effect := flag.String("effect", "", "Effect type")
	count := flag.Int("count", 0, "Particle count")
	speed := flag.Float64("speed", 0, "Simulation speed")
	size := flag.Float64("size", 0, "Particle size")
	var col particlefx.RGB
	flag.Var(&col, "color", "Particle color (#rrggbb)")
	configPath := flag.String("config", "", "YAML effect config")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	fps := flag.Int("fps", 30, "Frames per second")
	logPath := flag.String("log", "", "Write logs to this file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := particlefx.NewNopLogger()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = particlefx.NewWriterLogger("fxterm", *debug, f)
	}

	store := settings.Open("particlefx", logger)
	cfg := store.Settings().Effect
	if *configPath != "" {
		loaded, err := particlefx.LoadConfigFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	var overrides particlefx.PartialConfig
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "effect":
			t := particlefx.EffectType(*effect)
			overrides.Type = &t
		case "count":
			overrides.Count = count
		case "speed":
			v := float32(*speed)
			overrides.Speed = &v
		case "size":
			v := float32(*size)
			overrides.Size = &v
		case "color":
			overrides.Color = &col
		}
	})
	cfg = particlefx.Merge(cfg, overrides)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	renderer := term.New(screen)

	host := particlefx.NewHostBuilder().
		WithLogger(logger).
		WithSeed(*seed).
		WithConfig(cfg).
		WithFrameRate(*fps).
		WithRenderer(func(int, int) (core.Renderer, error) { return renderer, nil }).
		WithErrorObserver(func(err error) { logger.Warnf("%v", err) }).
		Build()
	if err := host.Init(screenContainer{renderer}); err != nil {
		screen.Fini()
		return err
	}
	// Destroy closes the renderer, which finalizes the screen
	defer host.Destroy()

	v := &viewer{
		host:     host,
		screen:   screen,
		renderer: renderer,
		store:    store,
		rng:      rand.New(rand.NewSource(*seed)),
		paused:   store.Settings().Paused,
	}
	v.loop(*fps)

	store.SetEffect(host.Config())
	store.SetPaused(v.paused)
	if err := store.Save(); err != nil {
		logger.Errorf("%v", err)
	}
	return nil
}

type viewer struct {
	host     *particlefx.Host
	screen   tcell.Screen
	renderer *term.Renderer
	store    *settings.Manager
	rng      *rand.Rand
	paused   bool
}

func (v *viewer) loop(fps int) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	clock := particlefx.NewFrameClock(time.Now())

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !v.handle(ev) {
				return
			}
		case now := <-ticker.C:
			delta := clock.Tick(now)
			if v.paused {
				delta = 0
			}
			v.host.Tick(delta)
			v.status()
		}
	}
}

// handle applies one event and reports whether the viewer keeps running.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.host.OnResize(v.renderer.Size())
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRight:
			v.cycle(1)
		case tcell.KeyLeft:
			v.cycle(-1)
		case tcell.KeyRune:
			return v.rune(ev.Rune())
		}
	}
	return true
}

func (v *viewer) rune(r rune) bool {
	cfg := v.host.Config()
	var err error
	switch r {
	case 'q':
		return false
	case 'n':
		v.cycle(1)
	case 'p':
		v.cycle(-1)
	case ' ':
		v.paused = !v.paused
	case '+', '=':
		err = v.host.UpdateOptions(particlefx.WithSpeed(cfg.Speed + 0.25))
	case '-':
		err = v.host.UpdateOptions(particlefx.WithSpeed(max(0, cfg.Speed-0.25)))
	case ']':
		err = v.host.UpdateOptions(particlefx.WithCount(cfg.Count * 2))
	case '[':
		err = v.host.UpdateOptions(particlefx.WithCount(max(1, cfg.Count/2)))
	case 'c':
		err = v.host.UpdateOptions(particlefx.WithColor(particlefx.HSV(v.rng.Float64()*360, 0.7, 1)))
	}
	if err != nil {
		v.host.Context().ReportError(err)
	}
	return true
}

func (v *viewer) cycle(step int) {
	types := particlefx.EffectTypes
	i := slices.Index(types, v.host.Config().Type)
	next := types[(i+step+len(types))%len(types)]
	if err := v.host.SetEffect(next); err != nil {
		v.host.Context().ReportError(err)
	}
}

func (v *viewer) status() {
	cfg := v.host.Config()
	line := fmt.Sprintf(" %s  count %d  speed %.2f  color %s  [n/p effect, +/- speed, [/] count, space pause, q quit] ",
		cfg.Type, cfg.Count, cfg.Speed, cfg.Color)
	if v.paused {
		line = " PAUSED" + line
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	w, h := v.screen.Size()
	for x, r := range []rune(line) {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, style)
	}
	v.screen.Show()
}
