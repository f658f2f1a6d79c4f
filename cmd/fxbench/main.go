// fxbench runs every effect on the headless renderer and reports frame
// counts, channel uploads and leaked backend resources.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gekko3d/particlefx"
	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/headless"
)

type fixedContainer struct{ w, h int }

func (c fixedContainer) Size() (int, int) { return c.w, c.h }

func main() {
	duration := flag.Duration("duration", 2*time.Second, "Run time per effect")
	count := flag.Int("count", 1000, "Particle count")
	fps := flag.Int("fps", 60, "Target frame rate")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := particlefx.NewDefaultLogger("fxbench", *debug)
	failed := false
	for _, t := range particlefx.EffectTypes {
		if err := bench(logger, t, *count, *fps, *duration); err != nil {
			logger.Errorf("%s: %v", t, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func bench(logger particlefx.Logger, t particlefx.EffectType, count, fps int, d time.Duration) error {
	var renderer *headless.Renderer
	cfg := particlefx.DefaultConfig()
	cfg.Type = t
	cfg.Count = count

	host := particlefx.NewHostBuilder().
		WithLogger(logger).
		WithConfig(cfg).
		WithFrameRate(fps).
		WithRenderer(func(w, h int) (core.Renderer, error) {
			renderer = headless.New(w, h)
			return renderer, nil
		}).
		Build()
	if err := host.Init(fixedContainer{1280, 720}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	start := time.Now()
	if err := host.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	elapsed := time.Since(start)

	frames, uploads, instances := renderer.Frames, renderer.Uploads, len(renderer.Instances)
	// the replacement has not been rendered, so anything live belongs to t
	if err := host.SetEffect(particlefx.Rain); err != nil {
		return err
	}
	leaked := len(renderer.Live())
	host.Destroy()

	fmt.Printf("%-14s frames %5d  fps %6.1f  uploads %7d  instances %7d  leaked %d\n",
		t, frames, float64(frames)/elapsed.Seconds(), uploads, instances, leaked)
	if leaked > 0 {
		return fmt.Errorf("%d resources leaked", leaked)
	}
	return nil
}
