package particlefx

import (
	"errors"
	"fmt"

	"github.com/gekko3d/particlefx/render/core"
)

// Manifest lists the sub-resources an effect or emitter owns. Release walks
// all of them even when some fail.
type Manifest struct {
	geometries []*core.Geometry
	materials  []*core.Material
	textures   []*core.Texture
}

func (m *Manifest) AddGeometry(gs ...*core.Geometry) {
	m.geometries = append(m.geometries, gs...)
}

func (m *Manifest) AddMaterial(ms ...*core.Material) {
	m.materials = append(m.materials, ms...)
}

func (m *Manifest) AddTexture(ts ...*core.Texture) {
	m.textures = append(m.textures, ts...)
}

func (m *Manifest) Geometries() []*core.Geometry { return m.geometries }
func (m *Manifest) Materials() []*core.Material  { return m.materials }
func (m *Manifest) Textures() []*core.Texture    { return m.textures }

func (m *Manifest) Len() int {
	return len(m.geometries) + len(m.materials) + len(m.textures)
}

// TimeMaterials returns the materials whose time uniform the host advances.
func (m *Manifest) TimeMaterials() []*core.Material {
	var out []*core.Material
	for _, mat := range m.materials {
		if mat.TimeDriven() {
			out = append(out, mat)
		}
	}
	return out
}

// Release frees every listed resource through the context's releaser. Each
// failure is reported to ctx and collected; the manifest is empty afterwards.
func (m *Manifest) Release(ctx *Context) error {
	var errs []error
	releaser := ctx.Releaser

	for _, mat := range m.materials {
		errs = append(errs, releaseOne(ctx, "material "+mat.Name, func() error {
			if releaser == nil {
				return nil
			}
			return releaser.ReleaseMaterial(mat)
		}, mat.Release))
	}
	for _, g := range m.geometries {
		errs = append(errs, releaseOne(ctx, fmt.Sprintf("geometry %s", g.ID), func() error {
			if releaser == nil {
				return nil
			}
			return releaser.ReleaseGeometry(g)
		}, g.Release))
	}
	for _, t := range m.textures {
		errs = append(errs, releaseOne(ctx, "texture "+t.Name, func() error {
			if releaser == nil {
				return nil
			}
			return releaser.ReleaseTexture(t)
		}, t.Release))
	}

	m.geometries, m.materials, m.textures = nil, nil, nil
	return errors.Join(errs...)
}

func releaseOne(ctx *Context, name string, backend func() error, local func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ResourceDisposalError{Resource: name, Err: fmt.Errorf("panic: %v", r)}
		}
		// the CPU copy is dropped whatever the backend said
		local()
		if err != nil {
			ctx.ReportError(err)
		}
	}()
	if berr := backend(); berr != nil {
		return &ResourceDisposalError{Resource: name, Err: berr}
	}
	return nil
}
