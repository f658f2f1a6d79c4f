package particlefx

import "math/rand"

type HostBuilder struct {
	host *Host
}

func NewHostBuilder() *HostBuilder {
	return &HostBuilder{host: &Host{
		logger:    NewNopLogger(),
		seed:      1,
		frameRate: defaultFrameRate,
		cfg:       DefaultConfig(),
	}}
}

func (b *HostBuilder) WithLogger(l Logger) *HostBuilder {
	if l != nil {
		b.host.logger = l
	}
	return b
}

// WithSeed seeds the effect random source and the noise field.
func (b *HostBuilder) WithSeed(seed int64) *HostBuilder {
	b.host.seed = seed
	return b
}

// WithRand replaces the random source. The noise field still uses the seed.
func (b *HostBuilder) WithRand(r *rand.Rand) *HostBuilder {
	b.host.rand = r
	return b
}

func (b *HostBuilder) WithRenderer(factory RendererFactory) *HostBuilder {
	b.host.factory = factory
	return b
}

func (b *HostBuilder) WithConfig(cfg Config) *HostBuilder {
	b.host.cfg = cfg
	return b
}

// WithOptions merges partial over the current config.
func (b *HostBuilder) WithOptions(partial PartialConfig) *HostBuilder {
	b.host.cfg = Merge(b.host.cfg, partial)
	return b
}

// WithErrorObserver receives disposal failures, update faults and unknown
// effect types.
func (b *HostBuilder) WithErrorObserver(fn func(error)) *HostBuilder {
	b.host.onError = fn
	return b
}

func (b *HostBuilder) WithFrameRate(fps int) *HostBuilder {
	if fps > 0 {
		b.host.frameRate = fps
	}
	return b
}

func (b *HostBuilder) Build() *Host {
	return b.host
}
