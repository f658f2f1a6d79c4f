// fxwindow plays particle effects in a native window.
package main

import (
	"flag"
	"runtime"
	"slices"

	"github.com/gekko3d/particlefx"
	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/gpu"
	"github.com/gekko3d/particlefx/settings"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type windowContainer struct {
	window *glfw.Window
}

func (c windowContainer) Size() (int, int) { return c.window.GetFramebufferSize() }

func main() {
	effect := flag.String("effect", "", "Effect type")
	count := flag.Int("count", 0, "Particle count")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	configPath := flag.String("config", "", "YAML effect config")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := particlefx.NewDefaultLogger("fxwindow", *debug)
	store := settings.Open("particlefx", logger)

	cfg := store.Settings().Effect
	if *configPath != "" {
		loaded, err := particlefx.LoadConfigFile(*configPath)
		if err != nil {
			logger.Errorf("%v", err)
			return
		}
		cfg = loaded
	}
	if *effect != "" {
		cfg.Type = particlefx.EffectType(*effect)
	}
	if *count > 0 {
		cfg.Count = *count
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(*width, *height, "particlefx", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	host := particlefx.NewHostBuilder().
		WithLogger(logger).
		WithConfig(cfg).
		WithRenderer(func(int, int) (core.Renderer, error) { return gpu.New(window) }).
		Build()
	if err := host.Init(windowContainer{window}); err != nil {
		logger.Errorf("%v", err)
		return
	}
	defer host.Destroy()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		host.OnResize(width, height)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		cur := host.Config()
		var err error
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyRight, glfw.KeyN:
			err = host.SetEffect(step(cur.Type, 1))
		case glfw.KeyLeft, glfw.KeyP:
			err = host.SetEffect(step(cur.Type, -1))
		case glfw.KeyEqual, glfw.KeyKPAdd:
			err = host.UpdateOptions(particlefx.WithSpeed(cur.Speed + 0.25))
		case glfw.KeyMinus, glfw.KeyKPSubtract:
			err = host.UpdateOptions(particlefx.WithSpeed(max(0, cur.Speed-0.25)))
		case glfw.KeyRightBracket:
			err = host.UpdateOptions(particlefx.WithCount(cur.Count * 2))
		case glfw.KeyLeftBracket:
			err = host.UpdateOptions(particlefx.WithCount(max(1, cur.Count/2)))
		}
		if err != nil {
			logger.Errorf("%v", err)
		}
	})

	clock := particlefx.NewFrameClock(glfwNow())
	for !window.ShouldClose() {
		glfw.PollEvents()
		host.Tick(clock.Tick(glfwNow()))
	}

	store.SetEffect(host.Config())
	if err := store.Save(); err != nil {
		logger.Errorf("%v", err)
	}
}

func step(t particlefx.EffectType, by int) particlefx.EffectType {
	types := particlefx.EffectTypes
	i := slices.Index(types, t)
	return types[(i+by+len(types))%len(types)]
}
