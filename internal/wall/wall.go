/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package wall maps maze cell symbols to the way they are drawn. Both the 3D
// projector and the minimap look wall styles up here.
package wall

import (
	"image/color"

	"maze3d/internal/grid"
)

type Kind uint8

const (
	KindNone Kind = iota
	KindBrick
	KindStone
	KindMetal
	KindGoal
	KindUnknown
)

type Texture uint8

const (
	TextureBrick Texture = iota
	TextureStone
	TextureMetal
	TextureCount
)

var (
	Blue     = color.RGBA{R: 0, G: 121, B: 241, A: 255}
	DarkGray = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	Gray     = color.RGBA{R: 130, G: 130, B: 130, A: 255}
	Gold     = color.RGBA{R: 255, G: 203, B: 0, A: 255}
	GoalGold = color.RGBA{R: 255, G: 215, B: 0, A: 255}
)

type Style struct {
	Texture Texture
	Minimap color.RGBA
}

var styles = [...]Style{
	KindNone:    {Texture: TextureBrick, Minimap: color.RGBA{}},
	KindBrick:   {Texture: TextureBrick, Minimap: Blue},
	KindStone:   {Texture: TextureStone, Minimap: DarkGray},
	KindMetal:   {Texture: TextureMetal, Minimap: Gray},
	KindGoal:    {Texture: TextureBrick, Minimap: Gold},
	KindUnknown: {Texture: TextureBrick, Minimap: Blue},
}

// Of classifies a cell symbol.
func Of(sym rune) Kind {
	switch sym {
	case grid.Open, grid.Start:
		return KindNone
	case '+', '-', '|':
		return KindBrick
	case '#':
		return KindStone
	case '*':
		return KindMetal
	case grid.Goal:
		return KindGoal
	default:
		return KindUnknown
	}
}

func (k Kind) Style() Style {
	if int(k) >= len(styles) {
		return styles[KindUnknown]
	}
	return styles[k]
}

func (k Kind) Texture() Texture { return k.Style().Texture }
func (k Kind) Minimap() color.RGBA { return k.Style().Minimap }
func (k Kind) IsWall() bool { return k != KindNone }

// VerticalFacing reports whether the texture of sym wraps along the world Y axis.
func VerticalFacing(sym rune) bool {
	return sym == '|'
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBrick:
		return "brick"
	case KindStone:
		return "stone"
	case KindMetal:
		return "metal"
	case KindGoal:
		return "goal"
	default:
		return "unknown"
	}
}

func (t Texture) String() string {
	switch t {
	case TextureBrick:
		return "brick"
	case TextureStone:
		return "stone"
	case TextureMetal:
		return "metal"
	default:
		return "unknown"
	}
}
