/*
 * Copyright (C) 2023 by Jason Figge
 */

package texture

import (
	"image/color"
	"math"
	"math/rand"

	"maze3d/internal/wall"
)

// Generate builds a procedural store so the renderer runs without asset files.
func Generate(size int) *Store {
	if size < 8 {
		size = 8
	}
	s, err := NewStore(map[wall.Texture]*Texture{
		wall.TextureBrick: brick(size),
		wall.TextureStone: stone(size),
		wall.TextureMetal: metal(size),
	})
	if err != nil {
		// sizes are equal by construction
		panic(err)
	}
	return s
}

func fill(size int, fn func(x, y int) color.RGBA) *Texture {
	t := &Texture{size: size, pix: make([]color.RGBA, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t.pix[y*size+x] = fn(x, y)
		}
	}
	return t
}

func brick(size int) *Texture {
	rows := size / 8
	mortar := color.RGBA{R: 170, G: 165, B: 150, A: 0xff}
	return fill(size, func(x, y int) color.RGBA {
		row := y / rows
		shift := 0
		if row%2 == 1 {
			shift = size / 4
		}
		if y%rows == 0 || (x+shift)%(size/2) == 0 {
			return mortar
		}
		tone := uint8(20 * ((x + shift) / (size / 2) % 2))
		return color.RGBA{R: 160 + tone, G: 60, B: 45, A: 0xff}
	})
}

func stone(size int) *Texture {
	rnd := rand.New(rand.NewSource(int64(size)))
	return fill(size, func(x, y int) color.RGBA {
		v := uint8(90 + rnd.Intn(50))
		return color.RGBA{R: v, G: v, B: v + 10, A: 0xff}
	})
}

func metal(size int) *Texture {
	step := size / 4
	return fill(size, func(x, y int) color.RGBA {
		dx := x%step - step/2
		dy := y%step - step/2
		if dx*dx+dy*dy <= 2 {
			return color.RGBA{R: 70, G: 75, B: 80, A: 0xff}
		}
		v := uint8(140 + 40*math.Sin(float64(x)/float64(size)*math.Pi))
		return color.RGBA{R: v, G: v + 5, B: v + 15, A: 0xff}
	})
}
