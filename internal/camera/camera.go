/*
 * Copyright (C) 2023 by Jason Figge
 */

package camera

import (
	"math"

	"maze3d/internal/grid"
)

const (
	DefaultAngle  = math.Pi / 3
	DefaultFOV    = math.Pi / 3
	MoveSpeed     = 3.0
	RotationSpeed = math.Pi / 60
)

// Point is a position in world units. One grid cell spans BlockSize units.
type Point struct {
	X, Y float64
}

// Translate moves length units along angle. Angle 0 points along +X and
// angles grow towards +Y.
func (p Point) Translate(angle, length float64) Point {
	return Point{
		X: p.X + length*math.Cos(angle),
		Y: p.Y + length*math.Sin(angle),
	}
}

// Cell resolves the grid cell containing p. ok is false for negative coordinates.
func (p Point) Cell(blockSize int) (col, row int, ok bool) {
	if p.X < 0 || p.Y < 0 {
		return 0, 0, false
	}
	return int(p.X) / blockSize, int(p.Y) / blockSize, true
}

type Player struct {
	Pos   Point
	Angle float64
	FOV   float64
}

// Spawn places a player in the middle of the grid's start cell.
func Spawn(g *grid.Grid, blockSize int) (Player, bool) {
	col, row, ok := g.Find(grid.Start)
	if !ok {
		return Player{}, false
	}
	return Player{
		Pos: Point{
			X: float64(col*blockSize + blockSize/2),
			Y: float64(row*blockSize + blockSize/2),
		},
		Angle: DefaultAngle,
		FOV:   DefaultFOV,
	}, true
}

func (p *Player) Rotate(clockwise bool) {
	if clockwise {
		p.Angle += RotationSpeed
	} else {
		p.Angle -= RotationSpeed
	}
}

func (p *Player) Forward(g *grid.Grid, blockSize int) bool {
	return p.move(g, blockSize, p.Pos.Translate(p.Angle, MoveSpeed))
}

func (p *Player) Backwards(g *grid.Grid, blockSize int) bool {
	return p.move(g, blockSize, p.Pos.Translate(p.Angle+math.Pi, MoveSpeed))
}

// Strafe side-steps perpendicular to the heading.
func (p *Player) Strafe(g *grid.Grid, blockSize int, left bool) bool {
	offset := math.Pi / 2
	if left {
		offset = -offset
	}
	return p.move(g, blockSize, p.Pos.Translate(p.Angle+offset, MoveSpeed))
}

func (p *Player) move(g *grid.Grid, blockSize int, pt Point) bool {
	if !Passable(g, blockSize, pt) {
		return false
	}
	p.Pos = pt
	return true
}

// AtGoal reports whether the player stands on the goal cell.
func (p Player) AtGoal(g *grid.Grid, blockSize int) bool {
	col, row, ok := p.Pos.Cell(blockSize)
	if !ok {
		return false
	}
	sym, ok := g.Cell(col, row)
	return ok && sym == grid.Goal
}

// Passable is the single-point occupancy check used for movement.
func Passable(g *grid.Grid, blockSize int, pt Point) bool {
	col, row, ok := pt.Cell(blockSize)
	if !ok {
		return false
	}
	sym, ok := g.Cell(col, row)
	return ok && grid.IsPassable(sym)
}
