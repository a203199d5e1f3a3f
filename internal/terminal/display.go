/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package terminal shows surfaces on a text terminal, two pixels per cell,
// and reads player input from the keyboard.
package terminal

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"maze3d/internal/surface"
)

const halfBlock = '▀'

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorBlack)

// Display is a surface.Sink. The last terminal row holds a status line.
type Display struct {
	screen tcell.Screen
	status string
}

func New(screen tcell.Screen) *Display {
	return &Display{screen: screen}
}

func (d *Display) SetStatus(status string) {
	d.status = status
}

func (d *Display) Present(s *surface.Surface) error {
	cols, rows := d.screen.Size()
	view := rows - 1
	if view < 1 {
		view = rows
	}
	for row := 0; row < view; row++ {
		for col := 0; col < cols; col++ {
			top := sample(s, col, 2*row, cols, 2*view)
			bottom := sample(s, col, 2*row+1, cols, 2*view)
			d.screen.SetContent(col, row, halfBlock, nil, tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom)))
		}
	}
	if view < rows {
		d.drawStatus(cols, view)
	}
	d.screen.Show()
	return nil
}

func (d *Display) drawStatus(cols, row int) {
	text := []rune(d.status)
	for col := 0; col < cols; col++ {
		ch := ' '
		if col < len(text) {
			ch = text[col]
		}
		d.screen.SetContent(col, row, ch, nil, statusStyle)
	}
}

// sample picks the surface pixel under cell position (x, y) of a cols*rows grid.
func sample(s *surface.Surface, x, y, cols, rows int) color.RGBA {
	return s.Pixel(x*s.Width()/cols, y*s.Height()/rows)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
