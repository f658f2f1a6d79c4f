package particlefx

import "math"

// Private simulation channels. Renderers ignore them.
const (
	channelVelocity = "velocity"
	channelLifetime = "lifetime"
	channelRotation = "rotation"
	channelBase     = "base"
	channelPhase    = "phase"
	channelRate     = "rate"
	channelBurst    = "burst"
	channelBaseSize = "baseSize"
	channelRadius   = "radius"
	channelAmp      = "amplitude"
)

// integrate moves particle i along its velocity.
func integrate(pos, vel []float32, i int, step float32) {
	o := i * 3
	pos[o] += vel[o] * step
	pos[o+1] += vel[o+1] * step
	pos[o+2] += vel[o+2] * step
}

func setRGB(colors []float32, i int, c RGB) {
	o := i * 3
	colors[o], colors[o+1], colors[o+2] = c.R, c.G, c.B
}

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
func cos32(v float32) float32 { return float32(math.Cos(float64(v))) }

// wave and swing evaluate trig on effect time without rounding it to float32.
func wave(v float64) float32  { return float32(math.Sin(v)) }
func swing(v float64) float32 { return float32(math.Cos(v)) }

// wrapAngle folds a into [0, 2π).
func wrapAngle(a float32) float32 {
	w := float32(math.Mod(float64(a), 2*math.Pi))
	if w < 0 {
		w += 2 * math.Pi
	}
	return w
}

func sqrt32(v float32) float32 { return float32(math.Sqrt(float64(v))) }
