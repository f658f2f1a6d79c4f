package particlefx

import (
	"image"
	"math"

	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/texture"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sunRadius       = 5
	sunGlowRadius   = 6
	sunSpin         = 0.2
	orbitSegments   = 128
	starCount       = 2000
	starRadiusMin   = 150
	starRadiusMax   = 200
	skyDrift        = 0.01
	moonDistance    = 2
	moonRadius      = 0.27
	moonPeriod      = 0.08
	moonRotation    = 27.3
	atmosphereScale = 1.05
)

var (
	solarCameraPosition = mgl32.Vec3{0, 30, 80}
	sunColor            = Hex(0xffdd00)
	orbitColor          = Hex(0x444444)
)

// OrbitingBody is a planet or moon. Angle and Spin are advanced every tick.
type OrbitingBody struct {
	Name           string
	Distance       float32
	Size           float32
	Period         float32
	RotationPeriod float32 // negative for retrograde spin
	Tilt           float32
	Angle          float32
	Spin           float32
	Node           *core.Node
	Moon           *OrbitingBody
}

// OrbitRate is the angular speed around the parent.
func (b *OrbitingBody) OrbitRate() float32 {
	return 0.5 / b.Period
}

// SpinRate is the signed angular speed about the body's own axis.
func (b *OrbitingBody) SpinRate() float32 {
	if b.RotationPeriod == 0 {
		return 0
	}
	rate := 2 / float32(math.Abs(float64(b.RotationPeriod)))
	if b.RotationPeriod < 0 {
		return -rate
	}
	return rate
}

func (b *OrbitingBody) advance(step float32) {
	b.Angle = wrapAngle(b.Angle + step*b.OrbitRate())
	b.Spin = wrapAngle(b.Spin + step*b.SpinRate())
	b.Node.Transform.Position = mgl32.Vec3{cos32(b.Angle) * b.Distance, 0, sin32(b.Angle) * b.Distance}
	b.Node.Transform.SetTiltSpin(b.Tilt, b.Spin)
	if b.Moon != nil {
		b.Moon.advance(step)
	}
}

type planetSpec struct {
	name           string
	distance       float32
	size           float32
	period         float32
	rotationPeriod float32
	tilt           float32
	color          RGB
	accent         RGB
	atmosphere     bool
	rings          bool
	banded         bool
}

var planetTable = []planetSpec{
	{name: "Mercury", distance: 10, size: 0.4, period: 0.24, rotationPeriod: 58.6, tilt: 0.03, color: Hex(0xaaaaaa), accent: Hex(0x888888)},
	{name: "Venus", distance: 15, size: 0.9, period: 0.62, rotationPeriod: -243, tilt: 3.1, color: Hex(0xf5deb3), accent: Hex(0xe6c9a8)},
	{name: "Earth", distance: 20, size: 1.0, period: 1.0, rotationPeriod: 1, tilt: 0.41, color: Hex(0x6b93d6), accent: Hex(0x3a8a3a), atmosphere: true},
	{name: "Mars", distance: 25, size: 0.5, period: 1.88, rotationPeriod: 1.03, tilt: 0.44, color: Hex(0xc1440e), accent: Hex(0xa13a0c)},
	{name: "Jupiter", distance: 35, size: 2.5, period: 11.86, rotationPeriod: 0.41, tilt: 0.05, color: Hex(0xd8ca9d), accent: Hex(0xa67c52), banded: true},
	{name: "Saturn", distance: 45, size: 2.2, period: 29.46, rotationPeriod: 0.44, tilt: 0.47, color: Hex(0xead6b8), accent: Hex(0xd4c4a8), rings: true, banded: true},
	{name: "Uranus", distance: 55, size: 1.8, period: 84.01, rotationPeriod: -0.72, tilt: 1.71, color: Hex(0xd1e7e7), accent: Hex(0xc1d7d7)},
	{name: "Neptune", distance: 65, size: 1.8, period: 164.8, rotationPeriod: 0.67, tilt: 0.49, color: Hex(0x5b5ddf), accent: Hex(0x4b4dcf)},
}

var saturnRings = []struct {
	inner, outer float32
	color        RGB
}{
	{1.4, 1.8, Hex(0xd4af37)},
	{1.9, 2.1, Hex(0xc4a030)},
	{2.2, 2.4, Hex(0xb49020)},
}

// solarSystemEffect is a scene of orbiting bodies rather than a particle
// cloud. Its main geometry is the starfield.
type solarSystemEffect struct {
	baseEffect
	group     *core.Node
	sun       *core.Node
	glow      *core.Material
	starfield *core.Node
	bodies    []*OrbitingBody
	sunSpin   float32
}

func newSolarSystem(ctx *Context, cfg Config) (Effect, error) {
	e := &solarSystemEffect{}
	e.kind = SolarSystem
	e.cfg = cfg
	e.root = core.NewGroup(string(SolarSystem))
	e.group = core.NewGroup("planets")
	e.root.Add(e.group)

	e.addLights()
	e.addSun()
	for _, spec := range planetTable {
		e.addPlanet(ctx, spec)
	}
	e.addStarfield(ctx)

	if ctx.Camera != nil {
		ctx.Camera.Position = solarCameraPosition
		ctx.Camera.LookAt(mgl32.Vec3{0, 0, 0})
	}
	return e, nil
}

// Bodies returns the planets in orbit order.
func (e *solarSystemEffect) Bodies() []*OrbitingBody { return e.bodies }

func (e *solarSystemEffect) addLights() {
	e.group.Add(core.NewLightNode("ambient", &core.Light{Kind: core.LightAmbient, Color: Hex(0x666666).Vec3(), Intensity: 1}))
	e.group.Add(core.NewLightNode("sunlight", &core.Light{Kind: core.LightPoint, Color: White.Vec3(), Intensity: 2, Range: 300}))

	back := core.NewLightNode("backlight", &core.Light{Kind: core.LightDirectional, Color: Hex(0x444444).Vec3(), Intensity: 1})
	back.Transform.Position = mgl32.Vec3{-1, 1, -1}
	e.group.Add(back)

	// attached to the effect root so it leaves the scene with the effect
	e.root.Add(core.NewLightNode("hemisphere", &core.Light{
		Kind:        core.LightHemisphere,
		Color:       White.Vec3(),
		GroundColor: Hex(0x444444).Vec3(),
		Intensity:   1,
	}))
}

func (e *solarSystemEffect) mesh(name string, g *core.Geometry, m *core.Material) *core.Node {
	e.resources.AddGeometry(g)
	e.resources.AddMaterial(m)
	return core.NewMesh(name, g, m)
}

func (e *solarSystemEffect) addTexture(name string, img *image.RGBA) *core.Texture {
	tex := core.NewTexture(name, img)
	e.resources.AddTexture(tex)
	return tex
}

func (e *solarSystemEffect) addSun() {
	m := core.NewMeshMaterial("sun", sunColor.Vec3())
	m.Emissive = sunColor.Vec3()
	e.sun = e.mesh("sun", core.NewSphereGeometry(sunRadius), m)

	e.glow = core.NewMeshMaterial("sun-glow", Hex(0xff6600).Vec3())
	e.glow.Emissive = Hex(0xffcc4d).Vec3()
	e.glow.Transparent = true
	e.glow.Opacity = 0.35
	e.glow.Blending = core.BlendAdditive
	e.glow.EnableTime()
	e.sun.Add(e.mesh("sun-glow", core.NewSphereGeometry(sunGlowRadius), e.glow))
	e.group.Add(e.sun)
}

func (e *solarSystemEffect) planetMap(ctx *Context, spec planetSpec) *core.Texture {
	base, accent := colorRGBA(spec.color, 1), colorRGBA(spec.accent, 1)
	if spec.banded {
		return e.addTexture(spec.name, texture.Bands(256, 128, 12, base, accent))
	}
	spots := make([][2]float32, 24)
	radii := make([]float32, len(spots))
	for i := range spots {
		spots[i] = [2]float32{ctx.randFloat(), ctx.randFloat()}
		radii[i] = ctx.randRange(0.01, 0.06)
	}
	return e.addTexture(spec.name, texture.Spots(256, 128, base, accent, spots, radii))
}

func (e *solarSystemEffect) addPlanet(ctx *Context, spec planetSpec) {
	m := core.NewMeshMaterial(spec.name, spec.color.Vec3())
	m.Map = e.planetMap(ctx, spec)
	node := e.mesh(spec.name, core.NewSphereGeometry(spec.size), m)

	body := &OrbitingBody{
		Name:           spec.name,
		Distance:       spec.distance,
		Size:           spec.size,
		Period:         spec.period,
		RotationPeriod: spec.rotationPeriod,
		Tilt:           spec.tilt,
		Angle:          ctx.randAngle(),
		Node:           node,
	}

	if spec.atmosphere {
		am := core.NewMeshMaterial(spec.name+"-atmosphere", Hex(0x88aaff).Vec3())
		am.Transparent = true
		am.Opacity = 0.2
		node.Add(e.mesh(spec.name+"-atmosphere", core.NewSphereGeometry(spec.size*atmosphereScale), am))
	}
	if spec.rings {
		for i, r := range saturnRings {
			rm := core.NewMeshMaterial(spec.name+"-ring", r.color.Vec3())
			rm.Transparent = true
			rm.Opacity = 0.7 - float32(i)*0.15
			node.Add(e.mesh(spec.name+"-ring", core.NewRingGeometry(spec.size*r.inner, spec.size*r.outer), rm))
		}
	}
	if spec.name == "Earth" {
		body.Moon = e.addMoon(ctx, node)
	}

	e.group.Add(node)
	e.addOrbit(spec)
	body.advance(0)
	e.bodies = append(e.bodies, body)
}

func (e *solarSystemEffect) addMoon(ctx *Context, parent *core.Node) *OrbitingBody {
	craters := make([][2]float32, 20)
	radii := make([]float32, len(craters))
	for i := range craters {
		craters[i] = [2]float32{ctx.randFloat(), ctx.randFloat()}
		radii[i] = ctx.randRange(0.02, 0.08)
	}
	m := core.NewMeshMaterial("Moon", Hex(0xcccccc).Vec3())
	m.Map = e.addTexture("Moon", texture.Spots(128, 128,
		colorRGBA(Hex(0xcccccc), 1), colorRGBA(Hex(0xaaaaaa), 1), craters, radii))
	node := e.mesh("Moon", core.NewSphereGeometry(moonRadius), m)
	parent.Add(node)
	return &OrbitingBody{
		Name:           "Moon",
		Distance:       moonDistance,
		Size:           moonRadius,
		Period:         moonPeriod,
		RotationPeriod: moonRotation,
		Node:           node,
	}
}

func (e *solarSystemEffect) addOrbit(spec planetSpec) {
	g := core.NewLineGeometry(orbitSegments + 1)
	pos := g.AddChannel(core.ChannelPosition, 3)
	for i := 0; i <= orbitSegments; i++ {
		a := float32(i) / orbitSegments * 2 * math.Pi
		pos.SetVec3(i, cos32(a)*spec.distance, 0, sin32(a)*spec.distance)
	}
	m := core.NewMeshMaterial(spec.name+"-orbit", orbitColor.Vec3())
	m.Transparent = true
	m.Opacity = 0.3
	e.resources.AddGeometry(g)
	e.resources.AddMaterial(m)
	e.group.Add(core.NewLine(spec.name+"-orbit", g, m))
}

func (e *solarSystemEffect) addStarfield(ctx *Context) {
	g := core.NewPointGeometry(starCount)
	pos := g.AddChannel(core.ChannelPosition, 3)
	sizes := g.AddChannel(core.ChannelSize, 1).Values
	for i := 0; i < starCount; i++ {
		r := ctx.randRange(starRadiusMin, starRadiusMax)
		theta := ctx.randAngle()
		phi := ctx.randFloat() * math.Pi
		pos.SetVec3(i, r*sin32(phi)*cos32(theta), r*sin32(phi)*sin32(theta), r*cos32(phi))
		sizes[i] = ctx.randFloat() * 1.5
	}
	m := core.NewPointsMaterial("stars", White.Vec3(), 0.7)
	m.Opacity = 0.8
	e.geometry = g
	e.material = m
	e.resources.AddGeometry(g)
	e.resources.AddMaterial(m)
	e.starfield = core.NewPoints("stars", g, m)
	e.root.Add(e.starfield)
}

func (e *solarSystemEffect) Update(ctx *Context, delta float32) {
	step := e.advance(delta)
	e.sunSpin = wrapAngle(e.sunSpin + step*sunSpin)
	e.sun.Transform.SetYaw(e.sunSpin)
	for _, b := range e.bodies {
		b.advance(step)
	}
	drift := float32(math.Mod(e.elapsed*skyDrift, 2*math.Pi))
	e.starfield.Transform.SetYaw(-drift)
	e.group.Transform.SetYaw(drift)
}
