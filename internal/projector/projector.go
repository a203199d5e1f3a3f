/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package projector turns ray hits into the textured, shaded wall columns of
// the first-person view.
package projector

import (
	"image/color"
	"math"

	"maze3d/internal/camera"
	"maze3d/internal/caster"
	"maze3d/internal/grid"
	"maze3d/internal/surface"
	"maze3d/internal/texture"
	"maze3d/internal/wall"
)

const (
	ProjectionScale   = 100.0
	ShadeDistance     = 500.0
	MaxShade          = 0.8
	NearPlane         = 1.0
	DefaultColumnStep = 2
	goalPulse         = 0.1
)

type Projector struct {
	Grid      *grid.Grid
	Textures  *texture.Store
	BlockSize int
	// ColumnStep casts one ray every ColumnStep columns and repeats it across
	// the skipped ones. 1 casts a ray per column.
	ColumnStep  int
	MaxDistance float64
}

func New(g *grid.Grid, textures *texture.Store, blockSize int) *Projector {
	return &Projector{
		Grid:        g,
		Textures:    textures,
		BlockSize:   blockSize,
		ColumnStep:  DefaultColumnStep,
		MaxDistance: caster.DefaultMaxDistance,
	}
}

// Render draws the 3D view for player into s. It reads the grid and player only.
// Rays march across the whole maze whatever the size of s.
func (p *Projector) Render(s *surface.Surface, player camera.Player) {
	c := caster.New(p.Grid, p.BlockSize, 0, 0)
	if p.MaxDistance > 0 {
		c.MaxDistance = p.MaxDistance
	}
	step := p.ColumnStep
	if step < 1 {
		step = 1
	}
	for i := 0; i < s.Width(); i += step {
		p.column(s, c, player, i, step)
	}
}

func (p *Projector) column(s *surface.Surface, c *caster.Caster, player camera.Player, i, step int) {
	a := rayAngle(player, i, s.Width())
	hit := c.Cast(player.Pos, a)
	if hit.Distance < NearPlane {
		return
	}

	hh := float64(s.Height()) / 2
	corrected := fisheye(hit.Distance, a, player.Angle)
	top, bottom := stakeExtent(hh, stakeHeight(hh, corrected, float64(s.Height())), s.Height())

	if hit.Impact == grid.Goal {
		for y := top; y < bottom; y++ {
			s.SetColor(goalColor(y))
			p.strip(s, i, y, step)
		}
		return
	}

	tex := p.Textures.For(hit.Impact)
	u := textureU(hit.Impact, caster.HitPoint(player.Pos, a, hit.Distance), p.BlockSize)
	light := intensity(corrected)
	for y := top; y < bottom; y++ {
		v := float64(y-top) / float64(bottom-top)
		s.SetColor(shade(tex.Sample(u, v), light))
		p.strip(s, i, y, step)
	}
}

func (p *Projector) strip(s *surface.Surface, i, y, step int) {
	for x := i; x < i+step && x < s.Width(); x++ {
		s.SetPixel(x, y)
	}
}

// rayAngle spreads the field of view evenly across width columns.
func rayAngle(player camera.Player, column, width int) float64 {
	t := float64(column) / float64(width)
	return player.Angle - player.FOV/2 + player.FOV*t
}

// fisheye projects a ray length onto the view direction.
func fisheye(distance, angle, heading float64) float64 {
	return distance * math.Cos(angle-heading)
}

func stakeHeight(halfHeight, corrected, maxHeight float64) float64 {
	return math.Min(halfHeight*ProjectionScale/corrected, maxHeight)
}

func stakeExtent(halfHeight, stake float64, height int) (top, bottom int) {
	top = int(math.Max(0, halfHeight-stake/2))
	bottom = int(math.Min(float64(height), halfHeight+stake/2))
	return top, bottom
}

// textureU is the horizontal texture coordinate, in [0,1), of a wall hit.
func textureU(sym rune, hit camera.Point, blockSize int) float64 {
	axis := hit.X
	if wall.VerticalFacing(sym) {
		axis = hit.Y
	}
	b := float64(blockSize)
	u := math.Mod(axis, b) / b
	if u < 0 {
		u += 1
	}
	return u
}

func intensity(corrected float64) float64 {
	return 1 - math.Min(corrected/ShadeDistance, MaxShade)
}

func shade(c color.RGBA, light float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * light),
		G: uint8(float64(c.G) * light),
		B: uint8(float64(c.B) * light),
		A: c.A,
	}
}

// goalColor pulses down the goal wall independently of distance.
func goalColor(row int) color.RGBA {
	pulse := math.Sin(float64(row)*goalPulse)*0.5 + 0.5
	return color.RGBA{
		R: uint8(float64(wall.GoalGold.R) * pulse),
		G: uint8(float64(wall.GoalGold.G) * pulse),
		B: wall.GoalGold.B,
		A: 0xff,
	}
}
