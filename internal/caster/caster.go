/*
 * Copyright (C) 2023 by Jason Figge
 */

package caster

import (
	"image/color"
	"math"

	"maze3d/internal/camera"
	"maze3d/internal/grid"
	"maze3d/internal/surface"
)

const (
	DefaultMaxDistance = 1000.0
	StepSize           = 1.0
)

var TraceColor = color.RGBA{R: 245, G: 245, B: 245, A: 0xff}

// Intersect is the result of one ray march. Impact is grid.Open when the ray
// left the world or ran out of distance.
type Intersect struct {
	Distance float64
	Impact   rune
}

// Caster marches rays through a grid one world unit at a time.
type Caster struct {
	Grid        *grid.Grid
	BlockSize   int
	MaxDistance float64
	// World bounds. Zero means the grid's own extent.
	Width  int
	Height int
	// Trace, when set, receives every pixel the ray passes through.
	Trace *surface.Surface
}

func New(g *grid.Grid, blockSize, width, height int) *Caster {
	return &Caster{
		Grid:        g,
		BlockSize:   blockSize,
		MaxDistance: DefaultMaxDistance,
		Width:       width,
		Height:      height,
	}
}

func (c *Caster) bounds() (float64, float64) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = c.Grid.Width() * c.BlockSize
	}
	if h <= 0 {
		h = c.Grid.Height() * c.BlockSize
	}
	return float64(w), float64(h)
}

// Cast marches from origin along angle until it leaves the world, leaves the
// grid, enters a cell that is not open, or reaches MaxDistance.
func (c *Caster) Cast(origin camera.Point, angle float64) Intersect {
	width, height := c.bounds()
	cos, sin := math.Cos(angle), math.Sin(angle)
	if c.Trace != nil {
		prev := c.Trace.Color()
		c.Trace.SetColor(TraceColor)
		defer c.Trace.SetColor(prev)
	}

	for d := 0.0; d < c.MaxDistance; d += StepSize {
		x := origin.X + d*cos
		y := origin.Y + d*sin
		if x < 0 || y < 0 || x >= width || y >= height {
			return Intersect{Distance: d, Impact: grid.Open}
		}

		i := int(x) / c.BlockSize
		j := int(y) / c.BlockSize
		sym, ok := c.Grid.Cell(i, j)
		if !ok {
			return Intersect{Distance: d, Impact: grid.Open}
		}
		if !grid.IsOpen(sym) {
			return Intersect{Distance: d, Impact: sym}
		}

		if c.Trace != nil {
			c.Trace.SetPixel(int(x), int(y))
		}
	}
	return Intersect{Distance: c.MaxDistance, Impact: grid.Open}
}

// HitPoint is the world position a ray reached after distance units.
func HitPoint(origin camera.Point, angle, distance float64) camera.Point {
	return origin.Translate(angle, distance)
}
