/*
 * Copyright (C) 2023 by Jason Figge
 */

package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"maze3d/internal/wall"
)

var (
	ErrNotSquare    = errors.New("texture is not square")
	ErrSizeMismatch = errors.New("textures differ in size")
	ErrNoDefault    = errors.New("default texture missing")
)

// Default is used for any wall category without a texture of its own.
const Default = wall.TextureBrick

// Texture is a square array of pixels stored row by row.
type Texture struct {
	size int
	pix  []color.RGBA
}

func New(size int, pix []color.RGBA) (*Texture, error) {
	if size <= 0 || len(pix) != size*size {
		return nil, fmt.Errorf("%d pixels for size %d: %w", len(pix), size, ErrNotSquare)
	}
	return &Texture{size: size, pix: append([]color.RGBA(nil), pix...)}, nil
}

// FromImage copies a decoded square image.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() || b.Dx() == 0 {
		return nil, fmt.Errorf("%dx%d: %w", b.Dx(), b.Dy(), ErrNotSquare)
	}
	t := &Texture{size: b.Dx(), pix: make([]color.RGBA, b.Dx()*b.Dy())}
	for y := 0; y < t.size; y++ {
		for x := 0; x < t.size; x++ {
			t.pix[y*t.size+x] = color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
		}
	}
	return t, nil
}

func (t *Texture) Size() int { return t.size }

// At returns the pixel at (x, y) with both coordinates clamped into [0, size-1].
func (t *Texture) At(x, y int) color.RGBA {
	return t.pix[Index(x, y, t.size)]
}

// Sample maps normalised (u, v) onto the texture.
func (t *Texture) Sample(u, v float64) color.RGBA {
	return t.At(int(u*float64(t.size)), int(v*float64(t.size)))
}

// Index clamps (x, y) and returns the offset into a size*size array.
func Index(x, y, size int) int {
	return clamp(y, size)*size + clamp(x, size)
}

func clamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v > size-1 {
		return size - 1
	}
	return v
}

// Store holds one texture per wall category. All textures share one size.
type Store struct {
	size     int
	textures [wall.TextureCount]*Texture
}

// NewStore requires the default texture; other categories fall back to it.
func NewStore(textures map[wall.Texture]*Texture) (*Store, error) {
	def, ok := textures[Default]
	if !ok || def == nil {
		return nil, ErrNoDefault
	}
	s := &Store{size: def.Size()}
	for id := wall.Texture(0); id < wall.TextureCount; id++ {
		t, ok := textures[id]
		if !ok || t == nil {
			t = def
		}
		if t.Size() != s.size {
			return nil, fmt.Errorf("%v is %d, %v is %d: %w", id, t.Size(), Default, s.size, ErrSizeMismatch)
		}
		s.textures[id] = t
	}
	return s, nil
}

func (s *Store) Size() int { return s.size }

func (s *Store) Get(id wall.Texture) *Texture {
	if id >= wall.TextureCount {
		return s.textures[Default]
	}
	return s.textures[id]
}

// For selects the texture drawn for a cell symbol.
func (s *Store) For(sym rune) *Texture {
	return s.Get(wall.Of(sym).Texture())
}

// LoadDir decodes brick.png, stone.png and metal.png from dir. Missing files
// other than brick.png fall back to the default texture.
func LoadDir(dir string) (*Store, error) {
	textures := map[wall.Texture]*Texture{}
	for id := wall.Texture(0); id < wall.TextureCount; id++ {
		path := filepath.Join(dir, id.String()+".png")
		t, err := loadFile(path)
		if errors.Is(err, os.ErrNotExist) && id != Default {
			continue
		}
		if err != nil {
			return nil, err
		}
		textures[id] = t
	}
	return NewStore(textures)
}

func loadFile(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	t, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
