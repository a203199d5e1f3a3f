/*
 * Copyright (C) 2023 by Jason Figge
 */

package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"maze3d/internal/wall"
)

func solid(size int, c color.RGBA) *Texture {
	return fill(size, func(int, int) color.RGBA { return c })
}

func TestIndexAlwaysInRange(t *testing.T) {
	for _, size := range []int{1, 2, 7, 64} {
		for _, x := range []int{-1000, -1, 0, size / 2, size - 1, size, size * 3} {
			for _, y := range []int{-5, 0, size - 1, size, 1 << 20} {
				i := Index(x, y, size)
				if i < 0 || i >= size*size {
					t.Fatalf("Index(%d,%d,%d) = %d outside [0,%d)", x, y, size, i, size*size)
				}
			}
		}
	}
}

func TestSampleClamps(t *testing.T) {
	tex := fill(4, func(x, y int) color.RGBA { return color.RGBA{R: uint8(x), G: uint8(y), A: 0xff} })
	tests := []struct {
		u, v float64
		x, y uint8
	}{
		{0, 0, 0, 0},
		{0.5, 0.25, 2, 1},
		{0.999, 0.999, 3, 3},
		{1, 1, 3, 3},
		{-0.5, 2, 0, 3},
	}
	for _, tt := range tests {
		got := tex.Sample(tt.u, tt.v)
		if got.R != tt.x || got.G != tt.y {
			t.Errorf("Sample(%v,%v) = (%d,%d), want (%d,%d)", tt.u, tt.v, got.R, got.G, tt.x, tt.y)
		}
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	if _, err := New(3, make([]color.RGBA, 8)); !errors.Is(err, ErrNotSquare) {
		t.Errorf("Expected ErrNotSquare, got %v", err)
	}
	if _, err := FromImage(image.NewRGBA(image.Rect(0, 0, 4, 2))); !errors.Is(err, ErrNotSquare) {
		t.Errorf("Expected ErrNotSquare for 4x2 image, got %v", err)
	}
}

func TestStoreFallsBackToDefault(t *testing.T) {
	brickTex := solid(4, color.RGBA{R: 1, A: 0xff})
	stoneTex := solid(4, color.RGBA{R: 2, A: 0xff})
	s, err := NewStore(map[wall.Texture]*Texture{
		wall.TextureBrick: brickTex,
		wall.TextureStone: stoneTex,
	})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if s.For('#') != stoneTex {
		t.Error("Expected stone texture for '#'")
	}
	for _, sym := range "*+-|?g" {
		if s.For(sym) != brickTex {
			t.Errorf("Expected default texture for %q", sym)
		}
	}
	if s.Get(wall.TextureCount+3) != brickTex {
		t.Error("Expected default texture for unknown id")
	}
}

func TestStoreRejectsMixedSizes(t *testing.T) {
	_, err := NewStore(map[wall.Texture]*Texture{
		wall.TextureBrick: solid(4, color.RGBA{}),
		wall.TextureMetal: solid(8, color.RGBA{}),
	})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Expected ErrSizeMismatch, got %v", err)
	}
	if _, err := NewStore(nil); !errors.Is(err, ErrNoDefault) {
		t.Errorf("Expected ErrNoDefault, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	s := Generate(64)
	if s.Size() != 64 {
		t.Fatalf("Expected size 64, got %d", s.Size())
	}
	if s.Get(wall.TextureBrick) == s.Get(wall.TextureStone) || s.Get(wall.TextureStone) == s.Get(wall.TextureMetal) {
		t.Error("Expected distinct textures per category")
	}
	if Generate(2).Size() != 8 {
		t.Error("Expected tiny sizes to be raised to 8")
	}
}

func writePNG(t *testing.T, path string, size int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	img.Set(1, 0, color.RGBA{G: 0xff, A: 0xff})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "brick.png"), 16)
	writePNG(t, filepath.Join(dir, "metal.png"), 16)

	s, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if s.Size() != 16 {
		t.Errorf("Expected size 16, got %d", s.Size())
	}
	if got := s.Get(wall.TextureMetal).At(1, 0); got.G != 0xff {
		t.Errorf("Expected green pixel at (1,0), got %v", got)
	}
	if s.Get(wall.TextureStone) != s.Get(wall.TextureBrick) {
		t.Error("Expected missing stone.png to fall back to brick")
	}

	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Error("Expected error when brick.png is missing")
	}
}
