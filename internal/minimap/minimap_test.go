/*
 * Copyright (C) 2023 by Jason Figge
 */

package minimap

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"maze3d/internal/camera"
	"maze3d/internal/grid"
	"maze3d/internal/surface"
	"maze3d/internal/wall"
)

const block = 64

var boxed = grid.MustParse(
	"#####",
	"#p  #",
	"#  *#",
	"#  g#",
	"#####",
)

func player(col, row int, angle float64) camera.Player {
	return camera.Player{
		Pos:   camera.Point{X: float64(col*block + block/2), Y: float64(row*block + block/2)},
		Angle: angle,
		FOV:   camera.DefaultFOV,
	}
}

func TestProjectCentresGrid(t *testing.T) {
	m := New(block)
	// 5 cells * 64 / 3.2 = 100 px, centred in 210 px
	x, y := m.Project(boxed, camera.Point{})
	if x != 75 || y != 75 {
		t.Errorf("Expected grid origin at (75,75), got (%v,%v)", x, y)
	}
	if m.CellSize() != 20 {
		t.Errorf("Expected cell size 20, got %d", m.CellSize())
	}
	m.Scale = 100
	if m.CellSize() != minCellSize {
		t.Errorf("Expected minimum cell size, got %d", m.CellSize())
	}
}

func TestRenderLayers(t *testing.T) {
	s := surface.New(400, 300, surface.White)
	m := New(block)
	m.Render(s, boxed, player(1, 1, 0))

	checks := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"background", 30, 30, color.RGBA{R: 75, G: 75, B: 75, A: 0xff}},
		{"stone wall", 80, 80, wall.KindStone.Minimap()},
		{"metal wall", 75 + 3*20 + 5, 75 + 2*20 + 5, wall.KindMetal.Minimap()},
		{"goal", 75 + 3*20 + 5, 75 + 3*20 + 5, wall.KindGoal.Minimap()},
		{"player", 102, 105, PlayerColor},
		{"heading", 115, 105, surface.White},
		{"top border", 100, 19, surface.White},
		{"left border", 19, 100, surface.White},
		{"bottom border", 100, 230, surface.White},
		{"right border", 230, 100, surface.White},
		{"outside", 300, 100, surface.White},
	}
	for _, c := range checks {
		if got := s.Pixel(c.x, c.y); got != c.want {
			t.Errorf("%s: Pixel(%d,%d) = %v, want %v", c.name, c.x, c.y, got, c.want)
		}
	}
}

func TestFovConeEdges(t *testing.T) {
	s := surface.New(400, 300, surface.Black)
	m := New(block)
	p := player(2, 2, math.Pi/2)
	m.Render(s, boxed, p)

	px, py := m.Project(boxed, p.Pos)
	for _, a := range []float64{p.Angle - p.FOV/2, p.Angle + p.FOV/2} {
		ex := int(px + 40*math.Cos(a))
		ey := int(py + 40*math.Sin(a))
		found := false
		for dy := -1; dy <= 1 && !found; dy++ {
			for dx := -1; dx <= 1 && !found; dx++ {
				c := s.Pixel(ex+dx, ey+dy)
				found = c.R > c.B && c.G > c.B
			}
		}
		if !found {
			t.Errorf("Expected yellow cone edge near (%d,%d) for angle %v", ex, ey, a)
		}
	}
}

func TestOversizedGridStaysInsideMinimap(t *testing.T) {
	rows := make([]string, 40)
	for i := range rows {
		rows[i] = strings.Repeat("#", 40)
	}
	rows[20] = "#p" + strings.Repeat(" ", 37) + "#"
	g := grid.MustParse(rows...)

	s := surface.New(600, 600, surface.Black)
	m := New(block)
	m.Render(s, g, player(1, 20, 0))

	allowed := image.Rect(m.OffsetX-1, m.OffsetY-1, m.OffsetX+m.Size+1, m.OffsetY+m.Size+1)
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if !image.Pt(x, y).In(allowed) && s.Pixel(x, y) != surface.Black {
				t.Fatalf("Pixel (%d,%d) outside the minimap was written: %v", x, y, s.Pixel(x, y))
			}
		}
	}
}

func TestPlayerOutsideMinimapIsSkipped(t *testing.T) {
	s := surface.New(400, 300, surface.Black)
	m := New(block)
	p := camera.Player{Pos: camera.Point{X: 5000, Y: 5000}, FOV: camera.DefaultFOV}
	m.Render(s, grid.MustParse("#####", "#p  #", "#####"), p)
	inner := m.Bounds().Inset(BorderWidth)
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			if c := s.Pixel(x, y); c == PlayerColor || c == surface.White || c.B < c.R {
				t.Fatalf("Expected no player or cone drawn, got %v at (%d,%d)", c, x, y)
			}
		}
	}
}
