/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package surface is the in-memory framebuffer every render pass draws into.
// Writes outside the surface, or outside the active clip rectangle, are dropped.
package surface

import (
	"image"
	"image/color"
)

var (
	Black = color.RGBA{A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Sink presents a finished surface on some display.
type Sink interface {
	Present(s *Surface) error
}

type Surface struct {
	width      int
	height     int
	pix        []color.RGBA
	background color.RGBA
	current    color.RGBA
	clip       image.Rectangle
}

func New(width, height int, background color.RGBA) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s := &Surface{
		width:      width,
		height:     height,
		pix:        make([]color.RGBA, width*height),
		background: background,
		current:    White,
		clip:       image.Rect(0, 0, width, height),
	}
	s.Clear()
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

func (s *Surface) ColorModel() color.Model { return color.RGBAModel }
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

func (s *Surface) At(x, y int) color.Color {
	return s.Pixel(x, y)
}

// Pixel returns the stored colour, or transparent black off the surface.
func (s *Surface) Pixel(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return color.RGBA{}
	}
	return s.pix[y*s.width+x]
}

func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = s.background
	}
}

func (s *Surface) SetColor(c color.RGBA)      { s.current = c }
func (s *Surface) Color() color.RGBA          { return s.current }
func (s *Surface) SetBackground(c color.RGBA) { s.background = c }
func (s *Surface) Background() color.RGBA     { return s.background }

// SetClip restricts writes to r intersected with the surface bounds.
func (s *Surface) SetClip(r image.Rectangle) {
	s.clip = r.Intersect(s.Bounds())
}

func (s *Surface) ResetClip() {
	s.clip = s.Bounds()
}

// SetPixel writes the current colour at (x, y). Translucent colours are
// composited over what is already there.
func (s *Surface) SetPixel(x, y int) {
	if !image.Pt(x, y).In(s.clip) {
		return
	}
	i := y*s.width + x
	if s.current.A == 0xff {
		s.pix[i] = s.current
		return
	}
	s.pix[i] = blend(s.current, s.pix[i])
}

func blend(src, dst color.RGBA) color.RGBA {
	a := uint32(src.A)
	na := 0xff - a
	return color.RGBA{
		R: uint8((uint32(src.R)*a + uint32(dst.R)*na) / 0xff),
		G: uint8((uint32(src.G)*a + uint32(dst.G)*na) / 0xff),
		B: uint8((uint32(src.B)*a + uint32(dst.B)*na) / 0xff),
		A: uint8(a + uint32(dst.A)*na/0xff),
	}
}

func (s *Surface) FillRect(x, y, w, h int) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.clip)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			s.SetPixel(px, py)
		}
	}
}

func (s *Surface) FillCircle(cx, cy, radius int) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				s.SetPixel(cx+x, cy+y)
			}
		}
	}
}

// Line draws a Bresenham line including both end points.
func (s *Surface) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		s.SetPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// CopyRGBA writes the surface as packed RGBA bytes into dst, starting a new
// row every pitch bytes. pitch must be at least 4*Width.
func (s *Surface) CopyRGBA(dst []byte, pitch int) {
	for y := 0; y < s.height; y++ {
		row := dst[y*pitch:]
		for x, c := range s.pix[y*s.width : (y+1)*s.width] {
			o := x * 4
			row[o] = c.R
			row[o+1] = c.G
			row[o+2] = c.B
			row[o+3] = c.A
		}
	}
}

// Present hands the surface to a display sink.
func (s *Surface) Present(sink Sink) error {
	return sink.Present(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
