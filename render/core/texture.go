package core

import (
	"image"

	"github.com/google/uuid"
)

type Texture struct {
	ID       uuid.UUID
	Name     string
	Image    *image.RGBA
	released bool
}

func NewTexture(name string, img *image.RGBA) *Texture {
	return &Texture{
		ID:    uuid.New(),
		Name:  name,
		Image: img,
	}
}

func (t *Texture) Size() (width, height int) {
	if t.Image == nil {
		return 0, 0
	}
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (t *Texture) Release() {
	t.released = true
}

func (t *Texture) Released() bool {
	return t.released
}
