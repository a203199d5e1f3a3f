/*
 * Copyright (C) 2023 by Jason Figge
 */

package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"maze3d/internal/surface"
)

// TextureSink presents surfaces through a streaming SDL texture.
type TextureSink struct {
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

func NewTextureSink(renderer *sdl.Renderer, width, height int32) (*TextureSink, error) {
	// ABGR8888 is R,G,B,A in memory on little-endian hosts.
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, width, height)
	if err != nil {
		return nil, fmt.Errorf("creating frame texture: %w", err)
	}
	return &TextureSink{renderer: renderer, texture: texture}, nil
}

func (t *TextureSink) Present(s *surface.Surface) error {
	pixels, pitch, err := t.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("locking frame texture: %w", err)
	}
	s.CopyRGBA(pixels, pitch)
	t.texture.Unlock()
	return t.renderer.Copy(t.texture, nil, nil)
}

func (t *TextureSink) Destroy() {
	ErrorTrap(t.texture.Destroy())
}
