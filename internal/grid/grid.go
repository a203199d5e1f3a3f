/*
 * Copyright (C) 2023 by Jason Figge
 */

package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Cell symbols with a fixed meaning. Every other symbol is a wall.
const (
	Open  = ' '
	Start = 'p'
	Goal  = 'g'
)

var (
	ErrEmpty          = errors.New("maze is empty")
	ErrNotRectangular = errors.New("maze rows differ in length")
	ErrNoStart        = errors.New("maze has no start marker")
)

// Grid is an immutable rectangular maze. Rows run top to bottom, columns left to right.
type Grid struct {
	cells  [][]rune
	width  int
	height int
}

// New copies rows into a validated Grid.
func New(rows [][]rune) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	g := &Grid{
		cells:  make([][]rune, len(rows)),
		width:  len(rows[0]),
		height: len(rows),
	}
	start := false
	for j, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", j, len(row), g.width, ErrNotRectangular)
		}
		g.cells[j] = append([]rune(nil), row...)
		for _, sym := range row {
			if sym == Start {
				start = true
			}
		}
	}
	if !start {
		return nil, ErrNoStart
	}
	return g, nil
}

// Parse reads one row per line. Trailing blank lines are ignored.
func Parse(r io.Reader) (*Grid, error) {
	var rows [][]rune
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, []rune(strings.TrimRight(scanner.Text(), "\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading maze: %w", err)
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return New(rows)
}

// Load parses the maze file at path.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening maze: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// MustParse builds a grid from literal rows and panics when they are malformed.
func MustParse(rows ...string) *Grid {
	g, err := Parse(strings.NewReader(strings.Join(rows, "\n")))
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.width && row < g.height
}

// Cell returns the symbol at (col, row); ok is false outside the grid.
func (g *Grid) Cell(col, row int) (sym rune, ok bool) {
	if !g.InBounds(col, row) {
		return Open, false
	}
	return g.cells[row][col], true
}

// Find returns the first cell holding sym in row-major order.
func (g *Grid) Find(sym rune) (col, row int, ok bool) {
	for j, cells := range g.cells {
		for i, s := range cells {
			if s == sym {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Each visits every cell in row-major order.
func (g *Grid) Each(fn func(col, row int, sym rune)) {
	for j, cells := range g.cells {
		for i, s := range cells {
			fn(i, j, s)
		}
	}
}

// IsOpen reports whether a ray passes through sym.
func IsOpen(sym rune) bool {
	return sym == Open || sym == Start
}

// IsPassable reports whether the player may stand on sym.
func IsPassable(sym rune) bool {
	return IsOpen(sym) || sym == Goal
}
