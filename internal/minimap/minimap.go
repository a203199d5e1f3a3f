/*
 * Copyright (C) 2023 by Jason Figge
 */

package minimap

import (
	"image"
	"image/color"
	"math"

	"maze3d/internal/camera"
	"maze3d/internal/grid"
	"maze3d/internal/surface"
	"maze3d/internal/wall"
)

const (
	DefaultSize   = 210
	Padding       = 20
	DefaultScale  = 3.2
	ConeLength    = 50.0
	PlayerRadius  = 4
	HeadingLength = 15.0
	BorderWidth   = 2
	minCellSize   = 2
)

var (
	Background  = color.RGBA{A: 180}
	ConeColor   = color.RGBA{R: 0xff, G: 0xff, A: 100}
	PlayerColor = color.RGBA{R: 230, G: 41, B: 55, A: 0xff}
)

// Minimap draws a top-down view of the maze into a square corner of the screen.
// World coordinates are divided by Scale and centred inside the square.
type Minimap struct {
	Size      int
	OffsetX   int
	OffsetY   int
	Scale     float64
	BlockSize int
}

func New(blockSize int) *Minimap {
	return &Minimap{
		Size:      DefaultSize,
		OffsetX:   Padding,
		OffsetY:   Padding,
		Scale:     DefaultScale,
		BlockSize: blockSize,
	}
}

func (m *Minimap) Bounds() image.Rectangle {
	return image.Rect(m.OffsetX, m.OffsetY, m.OffsetX+m.Size, m.OffsetY+m.Size)
}

// Render overlays the minimap. It is meant to run after the 3D pass.
func (m *Minimap) Render(s *surface.Surface, g *grid.Grid, player camera.Player) {
	s.SetClip(m.Bounds())
	m.drawBackground(s)
	m.drawMaze(s, g)
	m.drawFovCone(s, g, player)
	m.drawPlayer(s, g, player)
	s.ResetClip()
	m.drawBorder(s)
}

// Project maps a world position onto the screen.
func (m *Minimap) Project(g *grid.Grid, p camera.Point) (x, y float64) {
	cx, cy := m.centerOffset(g)
	return float64(m.OffsetX) + cx + p.X/m.Scale, float64(m.OffsetY) + cy + p.Y/m.Scale
}

func (m *Minimap) centerOffset(g *grid.Grid) (float64, float64) {
	width := float64(g.Width() * m.BlockSize)
	height := float64(g.Height() * m.BlockSize)
	return (float64(m.Size) - width/m.Scale) / 2, (float64(m.Size) - height/m.Scale) / 2
}

func (m *Minimap) CellSize() int {
	size := int(float64(m.BlockSize) / m.Scale)
	if size < minCellSize {
		return minCellSize
	}
	return size
}

func (m *Minimap) InBounds(x, y int) bool {
	return image.Pt(x, y).In(m.Bounds())
}

func (m *Minimap) drawBackground(s *surface.Surface) {
	s.SetColor(Background)
	s.FillRect(m.OffsetX, m.OffsetY, m.Size, m.Size)
}

func (m *Minimap) drawMaze(s *surface.Surface, g *grid.Grid) {
	size := m.CellSize()
	g.Each(func(col, row int, sym rune) {
		kind := wall.Of(sym)
		if !kind.IsWall() {
			return
		}
		x, y := m.Project(g, camera.Point{X: float64(col * m.BlockSize), Y: float64(row * m.BlockSize)})
		if !m.InBounds(int(x), int(y)) {
			return
		}
		s.SetColor(kind.Minimap())
		s.FillRect(int(x), int(y), size, size)
	})
}

func (m *Minimap) drawFovCone(s *surface.Surface, g *grid.Grid, player camera.Player) {
	x, y := m.Project(g, player.Pos)
	if !m.InBounds(int(x), int(y)) {
		return
	}
	s.SetColor(ConeColor)
	for _, a := range []float64{player.Angle - player.FOV/2, player.Angle + player.FOV/2} {
		s.Line(int(x), int(y), int(x+ConeLength*math.Cos(a)), int(y+ConeLength*math.Sin(a)))
	}
}

func (m *Minimap) drawPlayer(s *surface.Surface, g *grid.Grid, player camera.Player) {
	fx, fy := m.Project(g, player.Pos)
	x, y := int(fx), int(fy)
	if !m.InBounds(x, y) {
		return
	}
	s.SetColor(PlayerColor)
	s.FillCircle(x, y, PlayerRadius)

	s.SetColor(surface.White)
	s.Line(x, y, int(float64(x)+HeadingLength*math.Cos(player.Angle)), int(float64(y)+HeadingLength*math.Sin(player.Angle)))
}

func (m *Minimap) drawBorder(s *surface.Surface) {
	s.SetColor(surface.White)
	x, y := m.OffsetX-1, m.OffsetY-1
	s.FillRect(x, y, m.Size+BorderWidth, BorderWidth)
	s.FillRect(x, m.OffsetY+m.Size-1, m.Size+BorderWidth, BorderWidth)
	s.FillRect(x, y, BorderWidth, m.Size+BorderWidth)
	s.FillRect(m.OffsetX+m.Size-1, y, BorderWidth, m.Size+BorderWidth)
}
