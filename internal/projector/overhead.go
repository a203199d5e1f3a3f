/*
 * Copyright (C) 2023 by Jason Figge
 */

package projector

import (
	"image/color"

	"maze3d/internal/camera"
	"maze3d/internal/caster"
	"maze3d/internal/grid"
	"maze3d/internal/surface"
	"maze3d/internal/wall"
)

var (
	overheadOpen   = surface.White
	overheadMarker = color.RGBA{R: 230, G: 41, B: 55, A: 0xff}
)

// Overhead draws the maze from above at one pixel per world unit and traces
// Rays rays across the player's field of view.
type Overhead struct {
	Grid      *grid.Grid
	BlockSize int
	Rays      int
}

func (o *Overhead) Render(s *surface.Surface, player camera.Player) {
	o.Grid.Each(func(col, row int, sym rune) {
		switch {
		case grid.IsOpen(sym) && sym != grid.Start:
			s.SetColor(overheadOpen)
		case sym == grid.Start || sym == grid.Goal:
			s.SetColor(overheadMarker)
		default:
			s.SetColor(wall.Of(sym).Minimap())
		}
		s.FillRect(col*o.BlockSize, row*o.BlockSize, o.BlockSize, o.BlockSize)
	})

	rays := o.Rays
	if rays < 1 {
		rays = 1
	}
	c := caster.New(o.Grid, o.BlockSize, s.Width(), s.Height())
	c.Trace = s
	for i := 0; i < rays; i++ {
		c.Cast(player.Pos, rayAngle(player, i, rays))
	}
}
